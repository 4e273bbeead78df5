package service

import (
	"regexp"
	"time"

	"classtrack/internal/model"
)

// ── 时间解析与发生时刻推导 ──────────────────────────────────
//
// 职责：把宽松格式的时间字符串与重复规则映射为具体的"下一次发生"时刻，
// 并判定提醒是否到期。
//
// 设计决策：
//   - 全部为纯函数，now 显式传入，测试无需 mock 墙钟
//   - 解析失败用 ClockTime.Parsed=false 显式表达，调用方无法误把失败当成功
//   - 解析失败属于软失败：展示层回退原始字符串，提醒计算静默跳过该条目
// ─────────────────────────────────────────────────────────────

const (
	layoutDate = "2006-01-02"
	layout24h  = "15:04"

	// 12 小时制需要两个布局：Go 的 "PM" 布局只接受大写标记，"pm" 布局只接受小写
	layout12hUpper = "3:04 PM"
	layout12hLower = "3:04 pm"
)

// clockLayouts 时间字符串的候选布局，按优先级依次尝试
var clockLayouts = []string{layout24h, layout12hUpper, layout12hLower}

// meridiemPattern 匹配紧贴数字结尾的 am/pm 标记
var meridiemPattern = regexp.MustCompile(`(\d)(am|pm|AM|PM)$`)

// CleanTimeString 在紧贴数字的 am/pm 标记前补一个空格
func CleanTimeString(s string) string {
	return meridiemPattern.ReplaceAllString(s, "$1 $2")
}

// ClockTime 时间字符串规范化结果
// Parsed 为 false 时 Canonical 无意义，展示需回退 Raw
type ClockTime struct {
	Raw       string
	Canonical string // 24 小时制 HH:MM，补零
	Parsed    bool
}

// String 返回规范化结果；解析失败时按原样返回输入
func (t ClockTime) String() string {
	if t.Parsed {
		return t.Canonical
	}
	return t.Raw
}

// NormalizeClockTime 将宽松格式的时间字符串规范化为 24 小时制
// 先按 24 小时制解析，失败再按 12 小时制（大小写 am/pm 均接受）解析，
// 全部失败时返回 Parsed=false 的结果，绝不报错
func NormalizeClockTime(s string) ClockTime {
	cleaned := CleanTimeString(s)
	for _, layout := range clockLayouts {
		if ts, err := time.Parse(layout, cleaned); err == nil {
			return ClockTime{Raw: s, Canonical: ts.Format(layout24h), Parsed: true}
		}
	}
	return ClockTime{Raw: s}
}

// ParseEventTime 将日期与宽松时间字符串合并解析为具体时刻
// 解析失败返回 nil（调用方静默跳过，不向用户抛错）
func ParseEventTime(date time.Time, clock string) *time.Time {
	cleaned := CleanTimeString(clock)
	base := date.Format(layoutDate) + " " + cleaned
	for _, layout := range clockLayouts {
		if ts, err := time.ParseInLocation(layoutDate+" "+layout, base, date.Location()); err == nil {
			return &ts
		}
	}
	return nil
}

// Occurrence 条目在"今天"的一次具体发生
type Occurrence struct {
	OccursToday bool
	At          *time.Time // 时间串无法解析时为 nil
}

// ResolveOccurrence 判定条目今天是否发生并推导其具体时刻
//   - recurrence=none：date 等于今天才发生
//   - recurrence=weekly：day 等于今天的星期名才发生
func ResolveOccurrence(entry *model.ScheduleEntry, now time.Time) Occurrence {
	switch entry.Recurrence {
	case model.RecurrenceNone:
		if entry.Date == nil || !sameDate(*entry.Date, now) {
			return Occurrence{}
		}
	case model.RecurrenceWeekly:
		if entry.Day == nil || *entry.Day != now.Weekday().String() {
			return Occurrence{}
		}
	default:
		return Occurrence{}
	}
	return Occurrence{OccursToday: true, At: ParseEventTime(now, entry.Time)}
}

// EvaluateReminder 判定提醒是否到期
// 触发条件：提醒开启、发生时刻已知、0 < 剩余分钟 <= 提前窗口
// 返回值第二项为向下取整的剩余分钟数
// 无已通知状态，窗口内的每次轮询都会重复触发（幂等轮询模型）
func EvaluateReminder(at *time.Time, now time.Time, enabled bool, windowMinutes int) (bool, int) {
	if !enabled || at == nil {
		return false, 0
	}
	delta := at.Sub(now).Minutes()
	if delta <= 0 || delta > float64(windowMinutes) {
		return false, 0
	}
	return true, int(delta)
}

// canonicalWeekdays 英文星期全名 → time.Weekday
var canonicalWeekdays = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// IsValidWeekday 判定是否为规范英文星期名
func IsValidWeekday(day string) bool {
	_, ok := canonicalWeekdays[day]
	return ok
}

// WeekdayDatesInMonth 枚举 ref 所在月份中星期名为 day 的全部日期（升序）
// 未知星期名返回空切片，不报错
func WeekdayDatesInMonth(day string, ref time.Time) []time.Time {
	wd, ok := canonicalWeekdays[day]
	if !ok {
		return nil
	}

	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())

	var dates []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == wd {
			dates = append(dates, d)
		}
	}
	return dates
}

// sameDate 判定两个时刻是否落在同一个日历日
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
