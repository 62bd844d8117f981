package util

import (
	"sort"
	"strings"
	"time"

	"github.com/nakachan-ing/zentasks/internal/model"
)

func FullTextSearch(tasks []model.Task, query string) []model.Task {
	if query == "" {
		return tasks
	}

	query = strings.ToLower(query) // 大文字小文字を無視
	filteredTasks := []model.Task{}

	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Text), query) {
			filteredTasks = append(filteredTasks, task)
		}
	}

	return filteredTasks
}

// FilterByDeadline keeps tasks whose deadline date falls in [fromDate, toDate].
// With both bounds empty every task passes; otherwise tasks without a deadline are dropped.
func FilterByDeadline(tasks []model.Task, fromDate, toDate string) []model.Task {
	if fromDate == "" && toDate == "" {
		return tasks
	}

	filteredTasks := []model.Task{}
	for _, task := range tasks {
		if task.DeadlineTime == "" {
			continue
		}
		if IsWithinDateRange(task.DeadlineTime, fromDate, toDate) {
			filteredTasks = append(filteredTasks, task)
		}
	}
	return filteredTasks
}

// SortByPriority orders High before Medium before Low, keeping insertion order
// within a priority.
func SortByPriority(tasks []model.Task) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})
	return sorted
}

// 日付が指定範囲内かチェック
func IsWithinDateRange(dateTime string, fromDate, toDate string) bool {
	date := dateTime
	if i := strings.IndexAny(dateTime, "T "); i >= 0 {
		date = dateTime[:i]
	}

	// 日付が空の場合はフィルターしない
	if fromDate == "" && toDate == "" {
		return true
	}

	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}

	// `from` の指定がある場合
	if fromDate != "" {
		fromTime, err := time.Parse("2006-01-02", fromDate)
		if err == nil && t.Before(fromTime) {
			return false
		}
	}

	// `to` の指定がある場合
	if toDate != "" {
		toTime, err := time.Parse("2006-01-02", toDate)
		if err == nil && t.After(toTime) {
			return false
		}
	}

	return true
}

// ParseMonth reads "2006-01". An empty string means the month of now.
func ParseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
