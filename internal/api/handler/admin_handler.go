package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"classtrack/internal/dto"
	"classtrack/internal/service"
	"classtrack/pkg/response"
)

// AdminHandler 管理面板 HTTP 处理器
// 所有路由均挂在 AdminOnly 中间件之后
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// Stats 全局统计
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	result, err := h.adminSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListUsers 用户管理列表（分页）
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}

	users, total, err := h.adminSvc.ListUsers(c.Request.Context(), page.GetOffset(), page.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, page.GetPage(), page.GetPageSize())
}

// Promote 授予管理员权限
// PUT /api/v1/admin/users/:id/promote
func (h *AdminHandler) Promote(c *gin.Context) {
	h.setAdmin(c, true)
}

// Demote 撤销管理员权限
// PUT /api/v1/admin/users/:id/demote
func (h *AdminHandler) Demote(c *gin.Context) {
	h.setAdmin(c, false)
}

func (h *AdminHandler) setAdmin(c *gin.Context, isAdmin bool) {
	if err := h.adminSvc.SetAdmin(c.Request.Context(), c.Param("id"), isAdmin); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 30001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ExportStats 导出分析报表为 Excel
// GET /api/v1/admin/stats/export
func (h *AdminHandler) ExportStats(c *gin.Context) {
	buf, filename, err := h.adminSvc.ExportStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
