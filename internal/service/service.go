package service

import (
	"go.uber.org/zap"

	"classtrack/config"
	"classtrack/internal/repository"
	"classtrack/pkg/jwt"
	"classtrack/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Schedule  ScheduleService
	Dashboard DashboardService
	Calendar  CalendarService
	Admin     AdminService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:      NewUserService(repo, logger),
		Schedule:  NewScheduleService(cfg, repo, logger),
		Dashboard: NewDashboardService(repo, logger),
		Calendar:  NewCalendarService(repo, logger),
		Admin:     NewAdminService(repo, logger),
	}
}
