package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

var (
	bold    = color.New(color.Bold)
	title   = color.New(color.Bold, color.Underline)
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)

	// heatmap shades, index = intensity
	shades = []*color.Color{
		color.New(color.Faint, color.FgWhite),
		color.New(color.FgGreen, color.Faint),
		color.New(color.FgGreen),
		color.New(color.FgHiGreen),
		color.New(color.FgHiGreen, color.Bold),
	}
)

const weekHeader = "Su Mo Tu We Th Fr Sa"

func check(done bool) string {
	if done {
		return success.Sprint("[x]")
	}
	return faint.Sprint("[ ]")
}

func bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return success.Sprint(strings.Repeat("█", filled)) + faint.Sprint(strings.Repeat("░", width-filled))
}

func printHabits(w io.Writer, day domain.DayKey, habits []domain.Habit, stats domain.CompletionStats) {
	title.Fprintf(w, "Habits for %s\n", day)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, h := range habits {
		tbl.AddRow(check(h.Completed), h.Icon+" "+h.Name, faint.Sprint(h.ID), h.Topic)
	}
	fmt.Fprintln(w, tbl)

	fmt.Fprintf(w, "\n%s %d/%d (%d%%)\n", bar(stats.Percentage, 20), stats.CompletedCount, stats.Total, stats.Percentage)
}

func printWeekly(w io.Writer, wp *domain.WeeklyProgress) {
	title.Fprintf(w, "Week %s .. %s\n", wp.StartDate, wp.EndDate)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range wp.Days {
		if b == nil {
			continue
		}
		weekday := b.Date.Weekday().String()[:3]
		tbl.AddRow(weekday, b.Date, fmt.Sprintf("%d/%d", b.CompletedCount, b.Total), shade(b.Intensity, "■"))
	}
	fmt.Fprintln(w, tbl)

	fmt.Fprintf(w, "\n%s %d%%  completed %d  remaining %d  active days %d/7\n",
		bar(wp.Percentage, 20), wp.Percentage, wp.TotalCompleted, wp.Remaining, wp.ActiveDays)
}

func shade(intensity int, s string) string {
	if intensity < 0 {
		intensity = 0
	}
	if intensity >= len(shades) {
		intensity = len(shades) - 1
	}
	return shades[intensity].Sprint(s)
}

// printHeatmap draws the window as weekday rows, oldest column first.
func printHeatmap(w io.Writer, hs *domain.HeatmapSummary) {
	title.Fprintf(w, "Activity %s .. %s\n", hs.StartDate, hs.EndDate)

	if len(hs.Days) > 0 && hs.Days[0] != nil {
		lead := int(hs.Days[0].Date.Weekday())
		rows := make([][]string, 7)
		for i := 0; i < lead; i++ {
			rows[i] = append(rows[i], " ")
		}
		for i, b := range hs.Days {
			if b == nil {
				continue
			}
			row := (lead + i) % 7
			rows[row] = append(rows[row], shade(b.Intensity, "■"))
		}
		names := strings.Fields(weekHeader)
		for i, r := range rows {
			fmt.Fprintf(w, "%s %s\n", faint.Sprint(names[i]), strings.Join(r, " "))
		}
	}

	fmt.Fprintf(w, "\nactive %d/%d days  current streak %s  longest %d\n",
		hs.ActiveDays, hs.TotalDays, bold.Sprintf("%d", hs.CurrentStreak), hs.LongestStreak)
}

func printCalendar(w io.Writer, cal *domain.CalendarMonth, today domain.DayKey) {
	header := fmt.Sprintf("%s %d", time.Month(cal.Month), cal.Year)
	mid := (len(weekHeader) - len(header)) / 2
	if mid < 0 {
		mid = 0
	}
	title.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), header)
	faint.Fprintln(w, weekHeader)

	for i, b := range cal.Days {
		if b == nil {
			fmt.Fprint(w, "   ")
		} else {
			cell := fmt.Sprintf("%2d", b.Date.Time(nil).Day())
			if b.Date == today {
				cell = color.New(color.Underline, color.Bold).Sprint(cell)
			} else {
				cell = shade(b.Intensity, cell)
			}
			fmt.Fprint(w, cell+" ")
		}
		if (i+1)%7 == 0 {
			fmt.Fprintln(w)
		}
	}
	if len(cal.Days)%7 != 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\nactive %d days  current streak %d\n", cal.ActiveDays, cal.CurrentStreak)
}

func printGoals(w io.Writer, s *domain.GoalSummary) {
	title.Fprintln(w, "Goals")

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	for _, g := range s.Goals {
		tbl.AddRow(g.Icon+" "+g.Title, bar(g.Percent(), 15), fmt.Sprintf("%d/%d", g.Progress, g.Target), faint.Sprint(g.ID))
	}
	fmt.Fprintln(w, tbl)

	fmt.Fprintf(w, "\noverall %d%%  mission %d days from %s  %s days remaining\n",
		s.OverallProgress, s.Mission.TotalDays, s.Mission.StartDate, bold.Sprintf("%d", s.DaysRemaining))
}

func printLearning(w io.Writer, log *domain.LearningLog) {
	title.Fprintf(w, "Learning log (%s) - %d entries\n", log.Domain, log.Total)

	if len(log.Days) == 0 {
		faint.Fprintln(w, " none")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, day := range log.Days {
		for i, e := range day.Entries {
			date := ""
			if i == 0 {
				date = day.Date.String()
			}
			tbl.AddRow(date, warn.Sprint(e.Domain), e.Topic)
		}
	}
	fmt.Fprintln(w, tbl)
}

func printQuote(w io.Writer, q domain.Quote) {
	fmt.Fprintf(w, "%s %s\n", q.Emoji, bold.Sprintf("%q", q.Text))
	faint.Fprintf(w, "   - %s\n", q.Author)
}
