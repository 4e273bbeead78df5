package repository

import (
	"context"

	"gorm.io/gorm"

	"classtrack/internal/model"
	pkgerrors "classtrack/pkg/errors"
)

// WeekdayCount 按星期聚合的条目数
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// ScheduleEntryRepository 日程条目数据访问接口
type ScheduleEntryRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*model.ScheduleEntry, error)
	ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	Delete(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
	Count(ctx context.Context) (int64, error)
	BusiestWeekday(ctx context.Context) (*WeekdayCount, error)
}

// scheduleEntryRepo ScheduleEntryRepository 的 GORM 实现
type scheduleEntryRepo struct {
	db *gorm.DB
}

// NewScheduleEntryRepo 创建 ScheduleEntryRepository 实例
func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleEntryRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("entry_id = ? AND user_id = ?", id, userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleEntryRepo) ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day ASC, time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	// Save 写入全部字段，保证切换重复模式时另一个变体字段被置空
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *scheduleEntryRepo) Delete(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).
		Where("entry_id = ? AND user_id = ?", id, userID).
		Delete(&model.ScheduleEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (r *scheduleEntryRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.ScheduleEntry{}).Error
}

func (r *scheduleEntryRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.ScheduleEntry{}).Count(&total).Error
	return total, err
}

func (r *scheduleEntryRepo) BusiestWeekday(ctx context.Context) (*WeekdayCount, error) {
	var rows []WeekdayCount
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Select("day, COUNT(*) AS count").
		Where("recurrence = ?", model.RecurrenceWeekly).
		Group("day").
		Order("count DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil // 无每周条目时不视为错误
	}
	return &rows[0], nil
}
