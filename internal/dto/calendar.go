package dto

// ── 日历模块 DTO ──

// CalendarEventResponse 日历订阅项
// start 为 YYYY-MM-DDTHH:MM；时间解析失败时 HH:MM 部分回退为原始字符串
type CalendarEventResponse struct {
	Title string `json:"title"` // "<course> @ <venue>"
	Start string `json:"start"`
}
