package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classtrack/internal/model"
)

func setupTestAdminService() (AdminService, *mockUserRepo, *mockScheduleRepo) {
	repo, userRepo, scheduleRepo := newTestRepos()
	svc := NewAdminService(repo, zap.NewNop())
	return svc, userRepo, scheduleRepo
}

func TestAdminService_Stats(t *testing.T) {
	svc, userRepo, scheduleRepo := setupTestAdminService()
	ctx := context.Background()

	_ = userRepo.Create(ctx, &model.User{Username: "alice"})
	_ = userRepo.Create(ctx, &model.User{Username: "bob"})

	seedWeekly(scheduleRepo, "user-1", "Monday", "9:00", false, 10)
	seedWeekly(scheduleRepo, "user-1", "Monday", "14:00", false, 10)
	seedWeekly(scheduleRepo, "user-2", "Friday", "9:00", false, 10)
	seedOneOff(t, scheduleRepo, "user-2", "2024-03-01", "9:00", false, 10)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats 失败: %v", err)
	}
	if stats.TotalUsers != 2 {
		t.Errorf("TotalUsers=%d，期望 2", stats.TotalUsers)
	}
	if stats.TotalEntries != 4 {
		t.Errorf("TotalEntries=%d，期望 4", stats.TotalEntries)
	}
	if stats.BusiestDay == nil || stats.BusiestDay.Day != "Monday" || stats.BusiestDay.Count != 2 {
		t.Errorf("BusiestDay=%+v，期望 Monday/2", stats.BusiestDay)
	}
}

func TestAdminService_Stats_NoWeeklyEntries(t *testing.T) {
	svc, _, scheduleRepo := setupTestAdminService()
	ctx := context.Background()

	seedOneOff(t, scheduleRepo, "user-1", "2024-03-01", "9:00", false, 10)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats 失败: %v", err)
	}
	if stats.BusiestDay != nil {
		t.Errorf("无每周条目时 BusiestDay 应为空，实际=%+v", stats.BusiestDay)
	}
}

func TestAdminService_SetAdmin(t *testing.T) {
	svc, userRepo, _ := setupTestAdminService()
	ctx := context.Background()

	u := &model.User{Username: "alice"}
	_ = userRepo.Create(ctx, u)

	if err := svc.SetAdmin(ctx, u.UserID, true); err != nil {
		t.Fatalf("SetAdmin 失败: %v", err)
	}
	if !userRepo.users[u.UserID].IsAdmin {
		t.Error("授权后 IsAdmin 应为 true")
	}

	if err := svc.SetAdmin(ctx, u.UserID, false); err != nil {
		t.Fatalf("SetAdmin 失败: %v", err)
	}
	if userRepo.users[u.UserID].IsAdmin {
		t.Error("撤销后 IsAdmin 应为 false")
	}

	if err := svc.SetAdmin(ctx, "nobody", true); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}

func TestAdminService_ExportStats(t *testing.T) {
	svc, userRepo, scheduleRepo := setupTestAdminService()
	ctx := context.Background()

	_ = userRepo.Create(ctx, &model.User{Username: "alice", IsAdmin: true})
	seedWeekly(scheduleRepo, "user-1", "Monday", "9:00", false, 10)

	buf, filename, err := svc.ExportStats(ctx)
	if err != nil {
		t.Fatalf("ExportStats 失败: %v", err)
	}
	if filename == "" {
		t.Error("建议文件名不应为空")
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("总览", "B2"); got != "1" {
		t.Errorf("用户总数=%q，期望 1", got)
	}
	if got, _ := f.GetCellValue("用户", "B2"); got != "alice" {
		t.Errorf("用户表首行=%q，期望 alice", got)
	}
}
