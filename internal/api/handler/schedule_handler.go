package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtrack/internal/dto"
	"classtrack/internal/service"
	"classtrack/pkg/response"
)

// ScheduleHandler 日程模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Create 新增日程条目
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	response.Created(c, result)
}

// Get 查询单条日程条目
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// List 查询当前用户的全部日程条目
// GET /api/v1/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Update 编辑日程条目
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除日程条目
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Clear 清空当前用户的全部日程条目
// DELETE /api/v1/schedules
func (h *ScheduleHandler) Clear(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Clear(c.Request.Context(), userID); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// writeScheduleError 日程模块业务错误到 HTTP 响应的映射
func (h *ScheduleHandler) writeScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 20001, "日程条目不存在")
	case errors.Is(err, service.ErrInvalidDay):
		response.BadRequest(c, 20002, "无效的星期名")
	case errors.Is(err, service.ErrDateRequired):
		response.BadRequest(c, 20003, "单次日程必须提供日期")
	case errors.Is(err, service.ErrInvalidDateFormat):
		response.BadRequest(c, 20004, "日期格式无效")
	default:
		response.InternalError(c)
	}
}
