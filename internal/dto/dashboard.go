package dto

// ── 仪表盘/提醒模块 DTO ──

// DashboardResponse 仪表盘响应
type DashboardResponse struct {
	Today       string             `json:"today"`   // 今天的星期名，如 "Monday"
	Date        string             `json:"date"`    // YYYY-MM-DD
	TodayEvents []EntryResponse    `json:"today_events"`
	Reminders   []ReminderResponse `json:"reminders"`
}

// ReminderResponse 到期提醒响应（幂等轮询，每次全量重算）
type ReminderResponse struct {
	Course      string `json:"course"`
	Time        string `json:"time"` // 原始录入字符串，与源数据一致
	Venue       string `json:"venue"`
	MinutesLeft int    `json:"minutes_left"`
}
