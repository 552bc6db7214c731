package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/ganzhi"
)

var (
	headStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	selfStyle  = cellStyle.Bold(true)
)

// Text renders res as a human-readable chart: a header, the four pillars
// table, the tallies and, when present, the luck timeline and annual
// snapshot.
func Text(res *chart.Result, lang Lang) string {
	rows := lang.rows()
	var b strings.Builder

	m := res.Moment
	leap := ""
	if m.Leap {
		leap = "闰"
	}
	fmt.Fprintf(&b, "%s %04d-%s%02d-%02d %02d:%02d  %s  %s %s\n",
		headStyle.Render(lang.calendar(m.Calendar)),
		m.Year, leap, m.Month, m.Day, m.Hour, m.Minute,
		lang.gender(res.Gender),
		labelStyle.Render(rows.zodiac), lang.zodiac(res.Chart.Year().Pillar.Branch))
	if m.Calendar == chart.Solar {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(rows.lunar), lunarDate(res.Lunar))
	}
	b.WriteString("\n")
	b.WriteString(pillarsTable(res.Chart, lang))
	b.WriteString("\n\n")

	tally := make([]string, 0, len(ganzhi.Elements))
	for _, e := range ganzhi.Elements {
		tally = append(tally, lang.element(e)+strconv.Itoa(res.Elements.Count(e)))
	}
	line := strings.Join(tally, " ")
	if missing := res.Elements.Missing(); len(missing) > 0 {
		line += "  " + rows.missing + " " + strings.Join(elementNames(lang, missing), "")
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(rows.tally), line)
	fmt.Fprintf(&b, "%s %s%d %s%d\n", labelStyle.Render(rows.polarity),
		lang.polarity(ganzhi.Yang), res.Polarities.Yang,
		lang.polarity(ganzhi.Yin), res.Polarities.Yin)
	fmt.Fprintf(&b, "%s %s%s\n", labelStyle.Render(rows.void), res.Void[0], res.Void[1])
	fmt.Fprintf(&b, "%s %d/%d/%d (%d)\n", labelStyle.Render(rows.onset),
		res.Onset.Years, res.Onset.Months, res.Onset.Days, res.OnsetYear)

	if res.Luck != nil {
		b.WriteString("\n")
		b.WriteString(LuckText(*res.Luck, lang))
	}

	if a := res.Annual; a != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %d %s %s  %s %d",
			headStyle.Render(rows.annual), a.Year, a.Pillar.Pillar,
			lang.relationship(a.Pillar.Relationship), rows.age, a.Age)
		if a.Luck != nil {
			fmt.Fprintf(&b, "  %s %s", rows.pillar, a.Luck.Pillar)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func lunarDate(d chart.LunarDate) string {
	leap := ""
	if d.Leap {
		leap = "闰"
	}
	return fmt.Sprintf("%d-%s%d-%d", d.Year, leap, d.Month, d.Day)
}

func pillarsTable(c chart.Chart, lang Lang) string {
	rows := lang.rows()
	headers := []string{""}
	for _, pos := range chart.Positions {
		headers = append(headers, lang.position(pos))
	}
	var (
		rel    = []string{rows.relationship}
		names  = []string{rows.ganzhi}
		stem   = []string{rows.stem}
		branch = []string{rows.branch}
		hidden = []string{rows.hidden}
		naYin  = []string{rows.naYin}
	)
	for _, pos := range chart.Positions {
		ap := c.Pillar(pos)
		rel = append(rel, lang.relationship(ap.Relationship))
		names = append(names, ap.Pillar.String())
		stem = append(stem, ap.Pillar.Stem.String()+lang.element(ap.StemElement))
		branch = append(branch, ap.Pillar.Branch.String()+lang.element(ap.BranchElement))
		hs := make([]string, 0, len(ap.Hidden))
		for _, h := range ap.Hidden {
			hs = append(hs, h.Stem.String()+lang.relationship(h.Relationship))
		}
		hidden = append(hidden, strings.Join(hs, " "))
		naYin = append(naYin, ap.NaYin.Name)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rel, names, stem, branch, hidden, naYin).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cellStyle.Bold(true)
			case col == 0:
				return cellStyle.Faint(true)
			case row <= 1 && col == int(chart.DayPosition)+1:
				return selfStyle
			}
			return cellStyle
		})
	return t.String()
}

// LuckText renders the luck timeline with its direction.
func LuckText(tl chart.Timeline, lang Lang) string {
	rows := lang.rows()
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headStyle.Render(rows.pillar), lang.direction(tl.Direction))
	if len(tl.Pillars) > 0 {
		b.WriteString(luckTable(tl, lang))
		b.WriteString("\n")
	}
	return b.String()
}

func luckTable(tl chart.Timeline, lang Lang) string {
	rows := lang.rows()
	ages := []string{rows.age}
	years := []string{rows.years}
	pillars := []string{rows.pillar}
	gods := []string{rows.relationship}
	for _, lp := range tl.Pillars {
		ages = append(ages, fmt.Sprintf("%d-%d", lp.StartAge, lp.EndAge))
		years = append(years, fmt.Sprintf("%d-%d", lp.StartYear, lp.EndYear))
		pillars = append(pillars, lp.Pillar.String())
		gods = append(gods, lang.relationship(lp.Relationship))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Rows(ages, years, pillars, gods).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return cellStyle.Faint(true)
			}
			return cellStyle
		})
	return t.String()
}
