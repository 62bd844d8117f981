package model

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority accepts the three priorities case-insensitively.
// An empty string yields the default, Medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("unknown priority %q: %w", s, ErrInvalidInput)
}

type Category string

const (
	CategoryAll      Category = "All" // filter only, never stored on a task
	CategoryPersonal Category = "Personal"
	CategoryWork     Category = "Work"
	CategoryStudy    Category = "Study"
	CategoryHealth   Category = "Health"
	CategoryFinance  Category = "Finance"
	CategoryOther    Category = "Other"
)

// Categories is the ordered set a task may be filed under.
var Categories = []Category{
	CategoryPersonal,
	CategoryWork,
	CategoryStudy,
	CategoryHealth,
	CategoryFinance,
	CategoryOther,
}

// ParseCategory normalizes s to one of Categories. An empty string yields Personal.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryPersonal, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q: %w", s, ErrInvalidInput)
}

// ParseCategoryFilter is ParseCategory plus the All pseudo-category.
func ParseCategoryFilter(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, nil
	}
	return ParseCategory(s)
}

type Task struct {
	ID             int64    `json:"id"`   // unix millis at creation
	Text           string   `json:"text"` // required
	Completed      bool     `json:"completed"`
	DeadlineTime   string   `json:"deadlineTime,omitempty"` // yyyy-mm-ddThh:mm
	Priority       Priority `json:"priority"`
	Category       Category `json:"category"`
	AlarmTime      string   `json:"alarmTime,omitempty"` // yyyy-mm-ddThh:mm
	AlarmTriggered bool     `json:"alarmTriggered"`
	CreatedAt      string   `json:"createdAt"` // RFC 3339
}

// HasAlarm reports whether the task takes part in alarm scheduling at all.
func (t Task) HasAlarm() bool {
	return t.AlarmTime != ""
}

// AlarmDue reports whether the alarm is pending and its time has come.
func (t Task) AlarmDue(now time.Time) (bool, error) {
	if !t.HasAlarm() || t.AlarmTriggered {
		return false, nil
	}
	at, err := ParseDateTime(t.AlarmTime, now.Location())
	if err != nil {
		return false, err
	}
	return !now.Before(at), nil
}

// Rank orders High before Medium before Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}
