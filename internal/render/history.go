package render

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goodsign/monday"

	"github.com/papapumpkin/bazi/internal/archive"
)

// History renders saved records as a table, newest first as given.
func History(recs []archive.Record, lang Lang) string {
	headers := []string{"id", "name", "moment", "pillars", "saved"}
	if lang != English {
		headers = []string{"编号", "姓名", "时间", "四柱", "保存于"}
	}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			shortID(r.ID),
			r.Name,
			fmt.Sprintf("%s %s", r.Moment, lang.gender(r.Gender)),
			r.Pillars,
			lang.timestamp(r.CreatedAt),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true)
			}
			return cellStyle
		}).
		String()
}

// timestamp formats t in its own location with localized month names.
func (l Lang) timestamp(t time.Time) string {
	if l == English {
		return monday.Format(t, "Jan 2, 2006 15:04", monday.LocaleEnUS)
	}
	return monday.Format(t, "2006年1月2日 15:04", monday.LocaleZhCN)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
