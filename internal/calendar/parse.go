package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/papapumpkin/bazi/internal/chart"
)

// ErrUnparseableMoment is returned when a birth moment string matches no
// known layout.
var ErrUnparseableMoment = errors.New("unparseable birth moment")

// fieldPattern matches "YYYY-MM-DD[ HH:MM[:SS]]" with -, / or . separators.
// A leap marker (闰 or L) may prefix the month of a lunar date. The fields are
// taken as written so that nonexistent days reach the resolver and are
// reported as unavailable rather than unparseable.
var fieldPattern = regexp.MustCompile(
	`^(\d{1,4})[-/.](闰|[Ll])?(\d{1,2})[-/.](\d{1,2})(?:[ T](\d{1,2}):(\d{1,2})(?::(\d{1,2}))?)?$`)

// ParseMoment parses s as a birth moment on the given calendar. Solar moments
// in any layout dateparse understands are accepted and converted into loc;
// lunar moments must use the numeric field layout.
func ParseMoment(s string, kind chart.CalendarKind, loc *time.Location) (chart.Moment, error) {
	s = strings.TrimSpace(s)
	if m, ok := parseFields(s, kind); ok {
		if m.Leap && kind != chart.Lunar {
			return chart.Moment{}, fmt.Errorf("%w: %q: leap marker on a solar date", ErrUnparseableMoment, s)
		}
		return m, nil
	}
	if kind == chart.Lunar {
		return chart.Moment{}, fmt.Errorf("%w: %q: lunar dates must be written YYYY-MM-DD [HH:MM]", ErrUnparseableMoment, s)
	}

	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(s, loc, dateparse.PreferMonthFirst(false))
	if err != nil {
		return chart.Moment{}, fmt.Errorf("%w: %q: %v", ErrUnparseableMoment, s, err)
	}
	return FromTime(t.In(loc)), nil
}

// FromTime returns the solar moment with t's wall-clock fields.
func FromTime(t time.Time) chart.Moment {
	return chart.Moment{
		Calendar: chart.Solar,
		Year:     t.Year(),
		Month:    int(t.Month()),
		Day:      t.Day(),
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		Second:   t.Second(),
	}
}

func parseFields(s string, kind chart.CalendarKind) (chart.Moment, bool) {
	match := fieldPattern.FindStringSubmatch(s)
	if match == nil {
		return chart.Moment{}, false
	}
	num := func(i int) int {
		if match[i] == "" {
			return 0
		}
		n, _ := strconv.Atoi(match[i])
		return n
	}
	return chart.Moment{
		Calendar: kind,
		Year:     num(1),
		Leap:     match[2] != "",
		Month:    num(3),
		Day:      num(4),
		Hour:     num(5),
		Minute:   num(6),
		Second:   num(7),
	}, true
}
