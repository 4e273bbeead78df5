package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"classtrack/internal/dto"
	"classtrack/internal/model"
	"classtrack/internal/repository"
)

// defaultEventDuration ICS 导出时单个事件的默认时长
const defaultEventDuration = time.Hour

// CalendarService 日历订阅业务接口
//
// JSON 订阅项：每周条目展开为当前月份内全部匹配日期，单次条目恰好一项；
// 时间解析失败的条目按原始字符串展示（可能渲染出错误的时间，但不中断整批计算）。
// ICS 导出：无法解析出具体时刻的条目没有合法的 DTSTART，跳过。
type CalendarService interface {
	ListEvents(ctx context.Context, userID string, now time.Time) ([]dto.CalendarEventResponse, error)
	ExportICS(ctx context.Context, userID string, now time.Time) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) ListEvents(ctx context.Context, userID string, now time.Time) ([]dto.CalendarEventResponse, error) {
	entries, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询日程条目失败", zap.Error(err))
		return nil, err
	}

	events := make([]dto.CalendarEventResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		clock := NormalizeClockTime(entry.Time)
		for _, date := range expandEntryDates(entry, now) {
			events = append(events, dto.CalendarEventResponse{
				Title: entry.Course + " @ " + entry.Venue,
				Start: date.Format(layoutDate) + "T" + clock.String(),
			})
		}
	}
	return events, nil
}

func (s *calendarService) ExportICS(ctx context.Context, userID string, now time.Time) (string, error) {
	entries, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询日程条目失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//classtrack//calendar//EN")

	for i := range entries {
		entry := &entries[i]
		for _, date := range expandEntryDates(entry, now) {
			start := ParseEventTime(date, entry.Time)
			if start == nil {
				// 无法解析的时间没有合法 DTSTART，跳过该项
				s.logger.Debug("时间解析失败，ICS 导出跳过",
					zap.String("entry_id", entry.EntryID),
					zap.String("time", entry.Time),
				)
				continue
			}

			ev := cal.AddEvent(fmt.Sprintf("%s-%s@classtrack", entry.EntryID, date.Format("20060102")))
			ev.SetDtStampTime(now)
			ev.SetStartAt(*start)
			ev.SetEndAt(start.Add(defaultEventDuration))
			ev.SetSummary(entry.Course + " @ " + entry.Venue)
			if entry.Venue != "" {
				ev.SetLocation(entry.Venue)
			}
		}
	}

	return cal.Serialize(), nil
}

// expandEntryDates 枚举条目在当前月份内的发生日期
// 每周条目按星期名展开；单次条目恰好一个日期；未知星期名得到空结果
func expandEntryDates(entry *model.ScheduleEntry, now time.Time) []time.Time {
	switch entry.Recurrence {
	case model.RecurrenceWeekly:
		if entry.Day == nil {
			return nil
		}
		return WeekdayDatesInMonth(*entry.Day, now)
	case model.RecurrenceNone:
		if entry.Date == nil {
			return nil
		}
		return []time.Time{*entry.Date}
	}
	return nil
}
