package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"classtrack/internal/service"
	"classtrack/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Dashboard 今日视图：今天发生的条目 + 到期提醒
// GET /api/v1/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.GetDashboard(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Reminders 到期提醒轮询端点
// GET /api/v1/reminders
// 前端定时轮询，窗口内重复返回同一提醒（无已通知状态）
func (h *DashboardHandler) Reminders(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.ListDueReminders(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
