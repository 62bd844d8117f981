/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nakachan-ing/zentasks/internal/model"
)

const (
	accentColor = "#F8B936"
	lightInk    = "#521903"
	darkInk     = "#FFFFFF"
)

func headingStyle(theme model.Theme) lipgloss.Style {
	ink := lightInk
	if theme == model.ThemeDark {
		ink = darkInk
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ink))
}

// renderProgress draws the bar and the rounded percentage under it.
func renderProgress(label string, pct float64, theme model.Theme) string {
	bar := progress.New(progress.WithSolidFill(accentColor), progress.WithWidth(40), progress.WithoutPercentage())
	var s strings.Builder
	s.WriteString(headingStyle(theme).Render(label) + "\n")
	s.WriteString(bar.ViewAs(pct/100) + "\n")
	s.WriteString(fmt.Sprintf("%d%% completed\n", int(math.Round(pct))))
	return s.String()
}

func priorityColored(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return text.FgHiRed.Sprintf("%s", p)
	case model.PriorityMedium:
		return text.FgHiYellow.Sprintf("%s", p)
	case model.PriorityLow:
		return text.FgHiGreen.Sprintf("%s", p)
	default:
		return string(p)
	}
}

func alarmCell(t model.Task) string {
	switch {
	case !t.HasAlarm():
		return ""
	case t.AlarmTriggered:
		return text.Faint.Sprintf("🔕 %s", displayDateTime(t.AlarmTime))
	default:
		return "⏰ " + displayDateTime(t.AlarmTime)
	}
}

func displayDateTime(s string) string {
	return strings.Replace(s, "T", " ", 1)
}

func newTable(theme model.Theme) table.Writer {
	t := table.NewWriter()
	if theme == model.ThemeDark {
		t.SetStyle(table.StyleColoredDark)
	} else {
		t.SetStyle(table.StyleDouble)
	}
	t.Style().Options.SeparateRows = false
	return t
}
