package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classtrack/internal/dto"
	"classtrack/internal/repository"
	pkgerrors "classtrack/pkg/errors"
)

// ErrExportGenerateFail 生成分析报表失败
var ErrExportGenerateFail = errors.New("生成分析报表失败")

// AdminService 管理面板业务接口
type AdminService interface {
	// Stats 全局统计：用户总数、日程总数、最繁忙星期
	Stats(ctx context.Context) (*dto.AdminStatsResponse, error)
	// ListUsers 用户管理列表
	ListUsers(ctx context.Context, offset, limit int) ([]dto.AdminUserResponse, int64, error)
	// SetAdmin 授予/撤销管理员
	SetAdmin(ctx context.Context, targetUserID string, isAdmin bool) error
	// ExportStats 导出分析报表为 Excel
	ExportStats(ctx context.Context) (*bytes.Buffer, string, error)
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

func (s *adminService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	totalUsers, err := s.repo.User.Count(ctx)
	if err != nil {
		s.logger.Error("统计用户总数失败", zap.Error(err))
		return nil, err
	}

	totalEntries, err := s.repo.Schedule.Count(ctx)
	if err != nil {
		s.logger.Error("统计日程总数失败", zap.Error(err))
		return nil, err
	}

	busiest, err := s.repo.Schedule.BusiestWeekday(ctx)
	if err != nil {
		s.logger.Error("统计最繁忙星期失败", zap.Error(err))
		return nil, err
	}

	resp := dto.AdminStatsResponse{
		TotalUsers:   totalUsers,
		TotalEntries: totalEntries,
	}
	if busiest != nil {
		resp.BusiestDay = &dto.BusiestDayStat{Day: busiest.Day, Count: busiest.Count}
	}
	return &resp, nil
}

func (s *adminService) ListUsers(ctx context.Context, offset, limit int) ([]dto.AdminUserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, offset, limit)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.AdminUserResponse{
			ID:       u.UserID,
			Username: u.Username,
			IsAdmin:  u.IsAdmin,
		})
	}
	return result, total, nil
}

func (s *adminService) SetAdmin(ctx context.Context, targetUserID string, isAdmin bool) error {
	if err := s.repo.User.SetAdmin(ctx, targetUserID, isAdmin); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("更新管理员标记失败", zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// ExportStats — 导出分析报表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "总览"：用户总数、日程总数、最繁忙星期
//   - Sheet "用户"：ID / 用户名 / 是否管理员
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *adminService) ExportStats(ctx context.Context) (*bytes.Buffer, string, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, "", err
	}

	// 用户清单不分页导出（管理面板规模下可接受）
	users, _, err := s.repo.User.List(ctx, 0, 10000)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// ── Sheet 总览 ──
	overview := "总览"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	busiest := "-"
	if stats.BusiestDay != nil {
		busiest = fmt.Sprintf("%s (%d)", stats.BusiestDay.Day, stats.BusiestDay.Count)
	}
	rows := [][]interface{}{
		{"指标", "数值"},
		{"用户总数", stats.TotalUsers},
		{"日程总数", stats.TotalEntries},
		{"最繁忙星期", busiest},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(overview, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	// ── Sheet 用户 ──
	userSheet := "用户"
	if _, err := f.NewSheet(userSheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	header := []interface{}{"ID", "用户名", "管理员"}
	if err := f.SetSheetRow(userSheet, "A1", &header); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	for i, u := range users {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{u.UserID, u.Username, u.IsAdmin}
		if err := f.SetSheetRow(userSheet, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 缓冲失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("classtrack-stats-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
