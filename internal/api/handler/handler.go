package handler

import "classtrack/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Schedule  *ScheduleHandler
	Dashboard *DashboardHandler
	Calendar  *CalendarHandler
	Admin     *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Schedule:  NewScheduleHandler(svc.Schedule),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Calendar:  NewCalendarHandler(svc.Calendar),
		Admin:     NewAdminHandler(svc.Admin),
	}
}
