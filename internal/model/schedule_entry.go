package model

import "time"

// 重复模式取值
const (
	RecurrenceNone   = "none"   // 单次：date 必填，day 为空
	RecurrenceWeekly = "weekly" // 每周：day 必填，date 为空
)

// ScheduleEntry 日程条目表 — 对应 schedule_entries
//
// 不变式：date 与 day 恰好只有一个非空，由 recurrence 决定。
// time 为宽松格式的时间字符串（可能带无空格的 am/pm 后缀，或已是 24 小时制），
// 解析失败时按原样展示、跳过提醒计算。
type ScheduleEntry struct {
	EntryID               string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	UserID                string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Recurrence            string     `gorm:"type:varchar(10);not null;default:'none'"       json:"recurrence"`
	Date                  *time.Time `gorm:"type:date"                                      json:"date,omitempty"`
	Day                   *string    `gorm:"type:varchar(10)"                               json:"day,omitempty"`
	Time                  string     `gorm:"type:varchar(20);not null"                      json:"time"`
	Course                string     `gorm:"type:varchar(200);not null"                     json:"course"`
	Venue                 string     `gorm:"type:varchar(200);not null;default:''"          json:"venue"`
	ReminderEnabled       bool       `gorm:"not null;default:false"                         json:"reminder_enabled"`
	ReminderMinutesBefore int        `gorm:"type:smallint;not null;default:10"              json:"reminder_minutes_before"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }
