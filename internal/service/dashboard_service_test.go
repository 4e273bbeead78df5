package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"classtrack/internal/model"
)

func setupTestDashboardService() (DashboardService, *mockScheduleRepo) {
	repo, _, scheduleRepo := newTestRepos()
	svc := NewDashboardService(repo, zap.NewNop())
	return svc, scheduleRepo
}

func seedWeekly(repo *mockScheduleRepo, userID, day, clock string, enabled bool, window int) {
	d := day
	_ = repo.Create(context.Background(), &model.ScheduleEntry{
		UserID:                userID,
		Recurrence:            model.RecurrenceWeekly,
		Day:                   &d,
		Time:                  clock,
		Course:                "算法设计",
		Venue:                 "A-101",
		ReminderEnabled:       enabled,
		ReminderMinutesBefore: window,
	})
}

func seedOneOff(t *testing.T, repo *mockScheduleRepo, userID, date, clock string, enabled bool, window int) {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("测试日期解析失败: %v", err)
	}
	_ = repo.Create(context.Background(), &model.ScheduleEntry{
		UserID:                userID,
		Recurrence:            model.RecurrenceNone,
		Date:                  &d,
		Time:                  clock,
		Course:                "期中考试",
		Venue:                 "B-202",
		ReminderEnabled:       enabled,
		ReminderMinutesBefore: window,
	})
}

func TestDashboard_TodayEventsAndReminders(t *testing.T) {
	svc, repo := setupTestDashboardService()
	// 2024-03-04 是星期一，08:55
	now := mustTime(t, "2024-03-04 08:55")

	seedWeekly(repo, "user-1", "Monday", "9:00am", true, 10)  // 今天发生且提醒到期（剩 5 分钟）
	seedWeekly(repo, "user-1", "Monday", "20:00", true, 10)   // 今天发生但未到窗口
	seedWeekly(repo, "user-1", "Tuesday", "9:00am", true, 10) // 今天不发生
	seedOneOff(t, repo, "user-1", "2024-03-04", "10:00", false, 10) // 今天发生，提醒关闭

	resp, err := svc.GetDashboard(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("GetDashboard 失败: %v", err)
	}

	if resp.Today != "Monday" || resp.Date != "2024-03-04" {
		t.Errorf("today=%s date=%s，期望 Monday / 2024-03-04", resp.Today, resp.Date)
	}
	if len(resp.TodayEvents) != 3 {
		t.Errorf("期望今日事件 3 条，实际 %d 条", len(resp.TodayEvents))
	}
	if len(resp.Reminders) != 1 {
		t.Fatalf("期望到期提醒 1 条，实际 %d 条", len(resp.Reminders))
	}

	r := resp.Reminders[0]
	if r.Course != "算法设计" || r.Venue != "A-101" || r.MinutesLeft != 5 {
		t.Errorf("提醒内容异常: %+v", r)
	}
	if r.Time != "9:00am" {
		t.Errorf("提醒中的时间应为原始录入串，实际=%q", r.Time)
	}
}

func TestDashboard_RemindersEndpointConsistent(t *testing.T) {
	// 仪表盘与 /reminders 共用同一判定，结果必须一致
	svc, repo := setupTestDashboardService()
	now := mustTime(t, "2024-03-04 08:55")

	seedWeekly(repo, "user-1", "Monday", "9:00am", true, 10)

	dash, err := svc.GetDashboard(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("GetDashboard 失败: %v", err)
	}
	list, err := svc.ListDueReminders(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("ListDueReminders 失败: %v", err)
	}

	if len(dash.Reminders) != len(list) {
		t.Fatalf("两个入口的提醒数量不一致: %d vs %d", len(dash.Reminders), len(list))
	}
	if list[0] != dash.Reminders[0] {
		t.Errorf("两个入口的提醒内容不一致: %+v vs %+v", list[0], dash.Reminders[0])
	}
}

func TestDashboard_UnparsableTimeSkipped(t *testing.T) {
	svc, repo := setupTestDashboardService()
	now := mustTime(t, "2024-03-04 08:55")

	// 时间串无法解析：仍计入今日事件，但静默跳过提醒
	seedWeekly(repo, "user-1", "Monday", "9am", true, 10)

	resp, err := svc.GetDashboard(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("GetDashboard 失败: %v", err)
	}
	if len(resp.TodayEvents) != 1 {
		t.Errorf("期望今日事件 1 条，实际 %d 条", len(resp.TodayEvents))
	}
	if len(resp.Reminders) != 0 {
		t.Errorf("解析失败的条目不应产生提醒，实际 %d 条", len(resp.Reminders))
	}
}

func TestDashboard_PastDateNeverFires(t *testing.T) {
	// 规格场景：2024-03-01 的单次条目在 2024-03-02 评估，任何窗口都不触发
	svc, repo := setupTestDashboardService()
	now := mustTime(t, "2024-03-02 13:55")

	seedOneOff(t, repo, "user-1", "2024-03-01", "14:00", true, 1440)

	list, err := svc.ListDueReminders(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("ListDueReminders 失败: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("日期不符不应有提醒，实际 %d 条", len(list))
	}
}
