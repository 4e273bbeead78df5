package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"classtrack/internal/dto"
	"classtrack/internal/model"
	"classtrack/internal/repository"
)

// DashboardService 仪表盘与提醒业务接口
//
// 仪表盘与 /reminders 共用同一套发生时刻推导与提醒判定（occurrence.go），
// 不各自重复实现。now 由调用方传入，每个请求取一次墙钟。
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string, now time.Time) (*dto.DashboardResponse, error)
	ListDueReminders(ctx context.Context, userID string, now time.Time) ([]dto.ReminderResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID string, now time.Time) (*dto.DashboardResponse, error) {
	entries, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询日程条目失败", zap.Error(err))
		return nil, err
	}

	resp := dto.DashboardResponse{
		Today:       now.Weekday().String(),
		Date:        now.Format("2006-01-02"),
		TodayEvents: make([]dto.EntryResponse, 0),
		Reminders:   make([]dto.ReminderResponse, 0),
	}

	for i := range entries {
		entry := &entries[i]
		occ := ResolveOccurrence(entry, now)
		if !occ.OccursToday {
			continue
		}
		resp.TodayEvents = append(resp.TodayEvents, toEntryResponse(entry))

		if reminder, ok := dueReminder(entry, occ, now); ok {
			resp.Reminders = append(resp.Reminders, reminder)
		}
	}

	return &resp, nil
}

func (s *dashboardService) ListDueReminders(ctx context.Context, userID string, now time.Time) ([]dto.ReminderResponse, error) {
	entries, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询日程条目失败", zap.Error(err))
		return nil, err
	}

	reminders := make([]dto.ReminderResponse, 0)
	for i := range entries {
		entry := &entries[i]
		occ := ResolveOccurrence(entry, now)
		if !occ.OccursToday {
			continue
		}
		if reminder, ok := dueReminder(entry, occ, now); ok {
			reminders = append(reminders, reminder)
		}
	}
	return reminders, nil
}

// dueReminder 对单个条目执行提醒判定
// 时间解析失败（occ.At 为 nil）属于软失败，静默跳过该条目
func dueReminder(entry *model.ScheduleEntry, occ Occurrence, now time.Time) (dto.ReminderResponse, bool) {
	fire, left := EvaluateReminder(occ.At, now, entry.ReminderEnabled, entry.ReminderMinutesBefore)
	if !fire {
		return dto.ReminderResponse{}, false
	}
	return dto.ReminderResponse{
		Course:      entry.Course,
		Time:        entry.Time,
		Venue:       entry.Venue,
		MinutesLeft: left,
	}, true
}
