package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// Cycle renders the sixty-pillar cycle with each pillar's index, na-yin and
// void branches, six decades per row group.
func Cycle(lang Lang) string {
	headers := []string{"#", "pillar", "na yin", "void"}
	if lang != English {
		headers = []string{"序", "干支", "纳音", "空亡"}
	}
	rows := make([][]string, 0, ganzhi.CycleLength)
	for i, p := range ganzhi.Cycle() {
		ny := p.NaYin()
		void := p.Void()
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.String(),
			ny.Name + " " + lang.element(ny.Element),
			void[0].String() + void[1].String(),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cellStyle.Bold(true)
			case row%10 == 0:
				return cellStyle.Underline(true)
			}
			return cellStyle
		}).
		String()
}
