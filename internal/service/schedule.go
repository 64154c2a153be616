package service

import (
	"Airwave/internal/model"
	"regexp"
	"strconv"
	"strings"
)

// 排播时间模型：HH:MM:SS 转为当天分钟数 [0,1440)，秒参与格式校验但不参与重叠计算。
// start > end 视为跨午夜节目，整段归属于起始日。

const minutesPerDay = 1440

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9]):([0-5][0-9])$`)

var dayNames = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// minuteOfDay 解析 HH:MM:SS 为分钟数
func minuteOfDay(t string) (int, error) {
	m := timePattern.FindStringSubmatch(t)
	if m == nil {
		return 0, validationf("time %q must match HH:MM:SS", t)
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return hh*60 + mm, nil
}

// parseDay 接受 0-6 的整数或大小写不敏感的英文星期名
func parseDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	if d, err := strconv.Atoi(s); err == nil {
		if d < 0 || d > 6 {
			return 0, validationf("day %d out of range [0..6]", d)
		}
		return d, nil
	}
	if d, ok := dayNames[strings.ToLower(s)]; ok {
		return d, nil
	}
	return 0, validationf("unknown day %q", s)
}

// validateDays 非空、范围内、无重复
func validateDays(days []int) error {
	if len(days) == 0 {
		return validationf("days must not be empty")
	}
	seen := make(map[int]struct{}, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return validationf("day %d out of range [0..6]", d)
		}
		if _, dup := seen[d]; dup {
			return validationf("duplicate day %d", d)
		}
		seen[d] = struct{}{}
	}
	return nil
}

// window 一个节目在一天内的播出区间
type window struct {
	startM int
	endM   int
}

func newWindow(start, end string) (window, error) {
	s, err := minuteOfDay(start)
	if err != nil {
		return window{}, err
	}
	e, err := minuteOfDay(end)
	if err != nil {
		return window{}, err
	}
	if s == e {
		return window{}, validationf("startTime and endTime must differ")
	}
	return window{startM: s, endM: e}, nil
}

func (w window) overnight() bool {
	return w.startM >= w.endM
}

// spans 展开为半开区间；跨午夜拆为 [start,1440) ∪ [0,end)
func (w window) spans() [][2]int {
	if w.overnight() {
		return [][2]int{{w.startM, minutesPerDay}, {0, w.endM}}
	}
	return [][2]int{{w.startM, w.endM}}
}

// windowsOverlap 半开区间两两相交测试
func windowsOverlap(a, b window) bool {
	for _, sa := range a.spans() {
		for _, sb := range b.spans() {
			if sa[0] < sb[1] && sb[0] < sa[1] {
				return true
			}
		}
	}
	return false
}

// sharedDays 两个星期集合的交集，升序
func sharedDays(a, b []int) []int {
	set := make(map[int]struct{}, len(a))
	for _, d := range a {
		set[d] = struct{}{}
	}
	var out []int
	for d := 0; d <= 6; d++ {
		if _, ok := set[d]; !ok {
			continue
		}
		for _, bd := range b {
			if bd == d {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// programsConflict 同一电台两个节目的冲突判定：星期集合相交且时间窗重叠。
// 跨午夜节目整段归属起始日，其延伸到次日凌晨的尾段不参与次日节目的判定。
func programsConflict(a, b *model.Program) (bool, []int) {
	days := sharedDays(a.Days, b.Days)
	if len(days) == 0 {
		return false, nil
	}

	wa, err := newWindow(a.StartTime, a.EndTime)
	if err != nil {
		return false, nil
	}
	wb, err := newWindow(b.StartTime, b.EndTime)
	if err != nil {
		return false, nil
	}

	if windowsOverlap(wa, wb) {
		return true, days
	}
	return false, nil
}

// airingAt 节目在 (day, minute) 时刻是否在播。
// 跨午夜节目的凌晨尾段仍按起始日判定。
func airingAt(p *model.Program, day, minute int) bool {
	if !p.IsActive {
		return false
	}

	onDay := false
	for _, d := range p.Days {
		if d == day {
			onDay = true
			break
		}
	}
	if !onDay {
		return false
	}

	w, err := newWindow(p.StartTime, p.EndTime)
	if err != nil {
		return false
	}

	if w.overnight() {
		return minute >= w.startM || minute <= w.endM
	}
	return minute >= w.startM && minute <= w.endM
}

// minDay 星期集合中最小的一天，用于按电台排序
func minDay(days []int) int {
	min := 7
	for _, d := range days {
		if d < min {
			min = d
		}
	}
	return min
}
