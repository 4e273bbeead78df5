package dto

// ── 日程模块 DTO ──

// SaveEntryRequest 创建/编辑日程条目请求
// recurrence=none 时 date 必填，recurrence=weekly 时 day 必填。
// 所有字段单次写入，不存在部分构造的条目。
type SaveEntryRequest struct {
	Recurrence            string `json:"recurrence"              binding:"required,oneof=none weekly"`
	Date                  string `json:"date"                    binding:"omitempty,datetime=2006-01-02"`
	Day                   string `json:"day"                     binding:"omitempty"`
	Time                  string `json:"time"                    binding:"required,max=20"`
	Course                string `json:"course"                  binding:"required,max=200"`
	Venue                 string `json:"venue"                   binding:"omitempty,max=200"`
	ReminderEnabled       bool   `json:"reminder_enabled"`
	ReminderMinutesBefore int    `json:"reminder_minutes_before" binding:"omitempty,min=1,max=1440"`
}

// ── 响应 ──

// EntryResponse 日程条目响应
type EntryResponse struct {
	ID                    string  `json:"id"`
	Recurrence            string  `json:"recurrence"`
	Date                  *string `json:"date,omitempty"`
	Day                   *string `json:"day,omitempty"`
	Time                  string  `json:"time"`         // 原始录入字符串
	DisplayTime           string  `json:"display_time"` // 规范化 24 小时制；解析失败时回退原始串
	Course                string  `json:"course"`
	Venue                 string  `json:"venue"`
	ReminderEnabled       bool    `json:"reminder_enabled"`
	ReminderMinutesBefore int     `json:"reminder_minutes_before"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}
