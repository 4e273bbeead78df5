package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"classtrack/internal/service"
	"classtrack/pkg/response"
)

// CalendarHandler 日历模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Events 当前月份的日历事件 JSON 数据源
// GET /api/v1/calendar/events
func (h *CalendarHandler) Events(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.calendarSvc.ListEvents(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ExportICS 导出当前月份的 .ics 日历订阅文件
// GET /api/v1/calendar/export.ics
func (h *CalendarHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	out, err := h.calendarSvc.ExportICS(c.Request.Context(), userID, now)
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("classtrack-%s.ics", now.Format("200601"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(out))
}
