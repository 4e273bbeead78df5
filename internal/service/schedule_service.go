package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtrack/config"
	"classtrack/internal/dto"
	"classtrack/internal/model"
	"classtrack/internal/repository"
	pkgerrors "classtrack/pkg/errors"
)

// ── 日程模块业务错误 ──

var (
	ErrEntryNotFound     = errors.New("日程条目不存在")
	ErrInvalidDay        = errors.New("无效的星期名")
	ErrDateRequired      = errors.New("单次日程必须提供日期")
	ErrInvalidDateFormat = errors.New("日期格式无效")
)

// ScheduleService 日程条目业务接口
//
// 写入语义：所有字段一次性提交，不存在部分构造的条目；
// 编辑时切换重复模式会把另一个变体字段置空（date/day 恰好一个非空）。
type ScheduleService interface {
	Create(ctx context.Context, userID string, req *dto.SaveEntryRequest) (*dto.EntryResponse, error)
	Get(ctx context.Context, userID, entryID string) (*dto.EntryResponse, error)
	List(ctx context.Context, userID string) ([]dto.EntryResponse, error)
	Update(ctx context.Context, userID, entryID string, req *dto.SaveEntryRequest) (*dto.EntryResponse, error)
	Delete(ctx context.Context, userID, entryID string) error
	Clear(ctx context.Context, userID string) error
}

type scheduleService struct {
	repo          *repository.Repository
	defaultWindow int
	logger        *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:          repo,
		defaultWindow: cfg.Reminder.DefaultWindowMinutes,
		logger:        logger,
	}
}

func (s *scheduleService) Create(ctx context.Context, userID string, req *dto.SaveEntryRequest) (*dto.EntryResponse, error) {
	entry := model.ScheduleEntry{UserID: userID}
	if err := s.applyRequest(&entry, req); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Create(ctx, &entry); err != nil {
		s.logger.Error("创建日程条目失败", zap.Error(err))
		return nil, err
	}

	resp := toEntryResponse(&entry)
	return &resp, nil
}

func (s *scheduleService) Get(ctx context.Context, userID, entryID string) (*dto.EntryResponse, error) {
	entry, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	resp := toEntryResponse(entry)
	return &resp, nil
}

func (s *scheduleService) List(ctx context.Context, userID string) ([]dto.EntryResponse, error) {
	entries, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询日程条目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toEntryResponse(&entries[i]))
	}
	return result, nil
}

func (s *scheduleService) Update(ctx context.Context, userID, entryID string, req *dto.SaveEntryRequest) (*dto.EntryResponse, error) {
	entry, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.applyRequest(entry, req); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Update(ctx, entry); err != nil {
		s.logger.Error("更新日程条目失败", zap.Error(err))
		return nil, err
	}

	resp := toEntryResponse(entry)
	return &resp, nil
}

func (s *scheduleService) Delete(ctx context.Context, userID, entryID string) error {
	if err := s.repo.Schedule.Delete(ctx, entryID, userID); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("删除日程条目失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *scheduleService) Clear(ctx context.Context, userID string) error {
	if err := s.repo.Schedule.DeleteByUser(ctx, userID); err != nil {
		s.logger.Error("清空日程条目失败", zap.Error(err))
		return err
	}
	return nil
}

// getOwned 按归属查询条目，未命中映射为业务错误
func (s *scheduleService) getOwned(ctx context.Context, userID, entryID string) (*model.ScheduleEntry, error) {
	entry, err := s.repo.Schedule.GetByIDAndUser(ctx, entryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("查询日程条目失败", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// applyRequest 校验请求并整体写入条目字段
// 切换重复模式时置空另一个变体字段，保证 date/day 恰好一个非空
func (s *scheduleService) applyRequest(entry *model.ScheduleEntry, req *dto.SaveEntryRequest) error {
	switch req.Recurrence {
	case model.RecurrenceNone:
		if req.Date == "" {
			return ErrDateRequired
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return ErrInvalidDateFormat
		}
		entry.Date = &date
		entry.Day = nil
	case model.RecurrenceWeekly:
		if !IsValidWeekday(req.Day) {
			return ErrInvalidDay
		}
		day := req.Day
		entry.Day = &day
		entry.Date = nil
	}

	entry.Recurrence = req.Recurrence
	entry.Time = req.Time
	entry.Course = req.Course
	entry.Venue = req.Venue
	entry.ReminderEnabled = req.ReminderEnabled
	entry.ReminderMinutesBefore = req.ReminderMinutesBefore
	if entry.ReminderMinutesBefore <= 0 {
		entry.ReminderMinutesBefore = s.defaultWindow
	}
	return nil
}

// toEntryResponse 构造条目响应；展示时间解析失败时回退原始字符串
func toEntryResponse(entry *model.ScheduleEntry) dto.EntryResponse {
	resp := dto.EntryResponse{
		ID:                    entry.EntryID,
		Recurrence:            entry.Recurrence,
		Day:                   entry.Day,
		Time:                  entry.Time,
		DisplayTime:           NormalizeClockTime(entry.Time).String(),
		Course:                entry.Course,
		Venue:                 entry.Venue,
		ReminderEnabled:       entry.ReminderEnabled,
		ReminderMinutesBefore: entry.ReminderMinutesBefore,
		CreatedAt:             entry.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:             entry.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if entry.Date != nil {
		d := entry.Date.Format("2006-01-02")
		resp.Date = &d
	}
	return resp
}
