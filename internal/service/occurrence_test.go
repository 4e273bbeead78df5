package service

import (
	"testing"
	"time"

	"classtrack/internal/model"
)

// mustTime 构造测试时刻
func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("测试时刻解析失败: %v", err)
	}
	return ts
}

// ── CleanTimeString / NormalizeClockTime ──

func TestCleanTimeString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9am", "9 am"},
		{"9:00pm", "9:00 pm"},
		{"9:00PM", "9:00 PM"},
		{"9:00 am", "9:00 am"}, // 已有空格不变
		{"09:00", "09:00"},     // 无标记不变
		{"amnesia", "amnesia"}, // 标记前不是数字不变
	}
	for _, c := range cases {
		if got := CleanTimeString(c.in); got != c.want {
			t.Errorf("CleanTimeString(%q)=%q，期望 %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeClockTime_24HourIdentity(t *testing.T) {
	// 合法 24 小时制输入规范化后不变
	for _, in := range []string{"00:00", "09:00", "14:30", "23:59"} {
		got := NormalizeClockTime(in)
		if !got.Parsed || got.Canonical != in {
			t.Errorf("NormalizeClockTime(%q)=%+v，期望恒等", in, got)
		}
	}
}

func TestNormalizeClockTime_12Hour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9:00 am", "09:00"},
		{"9:00am", "09:00"}, // 无空格变体结果一致
		{"9:00 AM", "09:00"},
		{"9:00 pm", "21:00"},
		{"12:00 am", "00:00"},
		{"12:30 pm", "12:30"},
		{"9:05", "09:05"}, // 无标记按 24 小时制
	}
	for _, c := range cases {
		got := NormalizeClockTime(c.in)
		if !got.Parsed || got.Canonical != c.want {
			t.Errorf("NormalizeClockTime(%q)=%+v，期望 %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeClockTime_MalformedPassThrough(t *testing.T) {
	// 畸形输入原样透传且不 panic；裸 "9am"（缺分钟）也属于畸形输入
	for _, in := range []string{"9am", "noonish", "25:99", "", "9:am"} {
		got := NormalizeClockTime(in)
		if got.Parsed {
			t.Errorf("NormalizeClockTime(%q) 不应解析成功", in)
		}
		if got.String() != in {
			t.Errorf("NormalizeClockTime(%q).String()=%q，期望原样返回", in, got.String())
		}
	}
}

// ── ParseEventTime ──

func TestParseEventTime(t *testing.T) {
	day := mustTime(t, "2024-03-04 00:00")

	at := ParseEventTime(day, "9:00am")
	if at == nil {
		t.Fatal("ParseEventTime 不应返回 nil")
	}
	if got := at.Format("2006-01-02 15:04"); got != "2024-03-04 09:00" {
		t.Errorf("ParseEventTime=%q，期望 2024-03-04 09:00", got)
	}

	// 小写 pm 标记同样可解析
	at = ParseEventTime(day, "4:30 pm")
	if at == nil {
		t.Fatal("ParseEventTime 不应返回 nil")
	}
	if got := at.Format("2006-01-02 15:04"); got != "2024-03-04 16:30" {
		t.Errorf("ParseEventTime=%q，期望 2024-03-04 16:30", got)
	}

	if at := ParseEventTime(day, "9am"); at != nil {
		t.Errorf("缺分钟的输入应解析失败，实际=%v", at)
	}
}

// ── ResolveOccurrence ──

func weeklyEntry(day, clock string) *model.ScheduleEntry {
	return &model.ScheduleEntry{
		Recurrence: model.RecurrenceWeekly,
		Day:        &day,
		Time:       clock,
	}
}

func oneOffEntry(t *testing.T, date, clock string) *model.ScheduleEntry {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("测试日期解析失败: %v", err)
	}
	return &model.ScheduleEntry{
		Recurrence: model.RecurrenceNone,
		Date:       &d,
		Time:       clock,
	}
}

func TestResolveOccurrence_WeeklyMatch(t *testing.T) {
	// 2024-03-04 是星期一
	now := mustTime(t, "2024-03-04 08:00")

	occ := ResolveOccurrence(weeklyEntry("Monday", "9:00am"), now)
	if !occ.OccursToday {
		t.Fatal("周一条目在周一应发生")
	}
	if occ.At == nil || occ.At.Format("15:04") != "09:00" {
		t.Errorf("发生时刻=%v，期望 09:00", occ.At)
	}

	if occ := ResolveOccurrence(weeklyEntry("Tuesday", "9:00am"), now); occ.OccursToday {
		t.Error("周二条目在周一不应发生")
	}
}

func TestResolveOccurrence_OneOff(t *testing.T) {
	now := mustTime(t, "2024-03-01 10:00")

	if occ := ResolveOccurrence(oneOffEntry(t, "2024-03-01", "14:00"), now); !occ.OccursToday {
		t.Error("日期相符的单次条目应发生")
	}

	// 日期不符则永不发生（规格场景：2024-03-02 评估 2024-03-01 的条目）
	later := mustTime(t, "2024-03-02 13:55")
	occ := ResolveOccurrence(oneOffEntry(t, "2024-03-01", "14:00"), later)
	if occ.OccursToday || occ.At != nil {
		t.Errorf("日期不符不应发生，实际=%+v", occ)
	}
}

func TestResolveOccurrence_UnparsableTime(t *testing.T) {
	now := mustTime(t, "2024-03-04 08:00")

	occ := ResolveOccurrence(weeklyEntry("Monday", "9am"), now)
	if !occ.OccursToday {
		t.Error("时间解析失败不影响今天是否发生的判定")
	}
	if occ.At != nil {
		t.Errorf("时间解析失败时发生时刻应为 nil，实际=%v", occ.At)
	}
}

// ── EvaluateReminder ──

func TestEvaluateReminder_WindowBoundaries(t *testing.T) {
	now := mustTime(t, "2024-03-04 09:00")
	window := 10

	cases := []struct {
		name     string
		at       string
		wantFire bool
		wantLeft int
	}{
		{"窗口内", "2024-03-04 09:05", true, 5},
		{"恰好等于窗口", "2024-03-04 09:10", true, 10},
		{"超出窗口一分钟", "2024-03-04 09:11", false, 0},
		{"恰好当下 delta=0", "2024-03-04 09:00", false, 0},
		{"已过期", "2024-03-04 08:55", false, 0},
	}
	for _, c := range cases {
		at := mustTime(t, c.at)
		fire, left := EvaluateReminder(&at, now, true, window)
		if fire != c.wantFire || left != c.wantLeft {
			t.Errorf("%s: EvaluateReminder=(%v,%d)，期望 (%v,%d)", c.name, fire, left, c.wantFire, c.wantLeft)
		}
	}
}

func TestEvaluateReminder_DisabledOrUnknown(t *testing.T) {
	now := mustTime(t, "2024-03-04 09:00")
	at := mustTime(t, "2024-03-04 09:05")

	if fire, _ := EvaluateReminder(&at, now, false, 10); fire {
		t.Error("提醒未开启不应触发")
	}
	if fire, _ := EvaluateReminder(nil, now, true, 10); fire {
		t.Error("发生时刻未知不应触发")
	}
}

func TestEvaluateReminder_SpecScenario(t *testing.T) {
	// 规格场景：周一 08:55 评估 {weekly, Monday, 9am→9:00am, 窗口 10}
	now := mustTime(t, "2024-03-04 08:55")

	occ := ResolveOccurrence(weeklyEntry("Monday", "9:00am"), now)
	fire, left := EvaluateReminder(occ.At, now, true, 10)
	if !fire || left != 5 {
		t.Errorf("期望触发且剩余 5 分钟，实际=(%v,%d)", fire, left)
	}

	// 周一 08:30：delta=30 > 10，不触发
	early := mustTime(t, "2024-03-04 08:30")
	occ = ResolveOccurrence(weeklyEntry("Monday", "9:00am"), early)
	if fire, _ := EvaluateReminder(occ.At, early, true, 10); fire {
		t.Error("delta=30 超出窗口不应触发")
	}
}

// ── WeekdayDatesInMonth ──

func TestWeekdayDatesInMonth(t *testing.T) {
	// 2024 年 3 月有 4 个星期一：4、11、18、25
	ref := mustTime(t, "2024-03-15 12:00")

	dates := WeekdayDatesInMonth("Monday", ref)
	if len(dates) != 4 {
		t.Fatalf("期望 4 个星期一，实际 %d 个", len(dates))
	}
	want := []string{"2024-03-04", "2024-03-11", "2024-03-18", "2024-03-25"}
	for i, d := range dates {
		if got := d.Format("2006-01-02"); got != want[i] {
			t.Errorf("第 %d 个日期=%s，期望 %s", i, got, want[i])
		}
		if i > 0 {
			if diff := d.Sub(dates[i-1]); diff != 7*24*time.Hour {
				t.Errorf("相邻日期间隔=%v，期望 7 天", diff)
			}
		}
	}

	// 2024 年 3 月有 5 个星期五
	if got := len(WeekdayDatesInMonth("Friday", ref)); got != 5 {
		t.Errorf("期望 5 个星期五，实际 %d 个", got)
	}
}

func TestWeekdayDatesInMonth_UnknownDay(t *testing.T) {
	ref := mustTime(t, "2024-03-15 12:00")
	for _, day := range []string{"Funday", "monday", ""} {
		if got := WeekdayDatesInMonth(day, ref); len(got) != 0 {
			t.Errorf("未知星期名 %q 应返回空结果，实际 %d 个", day, len(got))
		}
	}
}
