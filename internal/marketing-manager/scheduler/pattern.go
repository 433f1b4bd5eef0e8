package scheduler

import (
	"strconv"
	"strings"
	"time"
)

// TriggerKind tags the normalized recurrence variant a schedule pattern
// parses to.
type TriggerKind int

const (
	TriggerDaily TriggerKind = iota
	TriggerWeekly
	TriggerMonthly
	TriggerInterval
)

// Trigger is the parsed form of a schedule pattern.
//
// Supported patterns (case-insensitive, whitespace-tolerant):
//   - "daily"                      every day at 09:00
//   - "weekly"                     every Monday at 09:00
//   - "monthly"                    once a calendar month
//   - "every N hours"              fixed interval
//   - "every N minutes"            fixed interval
//   - "daily at HH:MM"             every day at the given time
//   - "<weekday> at HH:MM"         every given weekday at the given time
//
// Anything else falls back to daily at 09:00; ParseSchedulePattern never
// fails, it only reports whether the input was recognized.
type Trigger struct {
	Kind    TriggerKind
	Hour    int
	Minute  int
	Weekday time.Weekday  // TriggerWeekly only
	Every   time.Duration // TriggerInterval only
}

const (
	defaultHour   = 9
	defaultMinute = 0
)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func defaultTrigger() Trigger {
	return Trigger{Kind: TriggerDaily, Hour: defaultHour, Minute: defaultMinute}
}

// ParseSchedulePattern parses a human-readable schedule pattern into a
// Trigger. The returned bool reports whether the pattern was recognized;
// unrecognized input yields the daily-09:00 default so a stored task can
// always be re-armed.
func ParseSchedulePattern(raw string) (Trigger, bool) {
	pattern := strings.ToLower(strings.TrimSpace(raw))
	pattern = strings.Join(strings.Fields(pattern), " ")

	switch pattern {
	case "daily":
		return defaultTrigger(), true
	case "weekly":
		return Trigger{Kind: TriggerWeekly, Weekday: time.Monday, Hour: defaultHour, Minute: defaultMinute}, true
	case "monthly":
		return Trigger{Kind: TriggerMonthly, Hour: defaultHour, Minute: defaultMinute}, true
	}

	if strings.HasPrefix(pattern, "every ") {
		fields := strings.Fields(pattern)
		if len(fields) == 3 {
			n, err := strconv.Atoi(fields[1])
			if err == nil && n > 0 {
				switch fields[2] {
				case "hours", "hour":
					return Trigger{Kind: TriggerInterval, Every: time.Duration(n) * time.Hour}, true
				case "minutes", "minute":
					return Trigger{Kind: TriggerInterval, Every: time.Duration(n) * time.Minute}, true
				}
			}
		}
		return defaultTrigger(), false
	}

	if fields := strings.Fields(pattern); len(fields) == 3 && fields[1] == "at" {
		hour, minute, ok := parseHHMM(fields[2])
		if ok {
			if fields[0] == "daily" {
				return Trigger{Kind: TriggerDaily, Hour: hour, Minute: minute}, true
			}
			if wd, known := weekdayNames[fields[0]]; known {
				return Trigger{Kind: TriggerWeekly, Weekday: wd, Hour: hour, Minute: minute}, true
			}
		}
		return defaultTrigger(), false
	}

	return defaultTrigger(), false
}

func parseHHMM(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// EstimateNextRun gives a best-effort next-run time for display purposes.
// It is informational only and may diverge from the armed trigger's actual
// fire time (the armed job is authoritative once it reports NextRun).
func EstimateNextRun(raw string, now time.Time) time.Time {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "daily":
		next := time.Date(now.Year(), now.Month(), now.Day(), defaultHour, defaultMinute, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	case "weekly":
		days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		next := now.AddDate(0, 0, days)
		return time.Date(next.Year(), next.Month(), next.Day(), defaultHour, defaultMinute, 0, 0, now.Location())
	case "monthly":
		first := time.Date(now.Year(), now.Month(), 1, defaultHour, defaultMinute, 0, 0, now.Location())
		return first.AddDate(0, 1, 0)
	default:
		return now.Add(time.Hour)
	}
}
