package dto

// ── 管理模块 DTO ──

// AdminStatsResponse 管理面板统计响应
type AdminStatsResponse struct {
	TotalUsers   int64           `json:"total_users"`
	TotalEntries int64           `json:"total_entries"`
	BusiestDay   *BusiestDayStat `json:"busiest_day,omitempty"` // 无每周条目时为空
}

// BusiestDayStat 最繁忙星期统计
type BusiestDayStat struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// AdminUserResponse 用户管理列表项
type AdminUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
