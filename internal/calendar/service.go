// Package calendar resolves birth moments into raw sexagenary pillars. It is
// the chart engine's calendar conversion service, backed by lunar-go for the
// solar-term month boundaries and the lunar calendar.
package calendar

import (
	"context"
	"fmt"

	"github.com/6tail/lunar-go/SolarUtil"
	lunar "github.com/6tail/lunar-go/calendar"

	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// Supported year range for birth moments.
const (
	MinYear = 1
	MaxYear = 9998
)

// Day-boundary sects for the late zi hour (23:00–24:00).
const (
	// SectNextDay assigns the late zi hour to the following day's pillar.
	SectNextDay = 1
	// SectSameDay keeps the late zi hour on the current day's pillar.
	SectSameDay = 2
)

// Service implements chart.Resolver. The zero value uses SectSameDay.
type Service struct {
	Sect int
}

// NewService returns a Service using the given sect. Any value other than
// SectNextDay selects SectSameDay.
func NewService(sect int) *Service {
	if sect != SectNextDay {
		sect = SectSameDay
	}
	return &Service{Sect: sect}
}

var _ chart.Resolver = (*Service)(nil)

// Resolve converts m into four pillars, the luck onset offset and the lunar
// date. Moments that do not exist on their calendar return an error wrapping
// chart.ErrChartUnavailable.
func (s *Service) Resolve(ctx context.Context, m chart.Moment, g chart.Gender) (raw chart.Raw, err error) {
	if err := ctx.Err(); err != nil {
		return chart.Raw{}, err
	}
	if err := Validate(m); err != nil {
		return chart.Raw{}, err
	}

	// lunar-go panics on dates outside its tables.
	defer func() {
		if r := recover(); r != nil {
			raw = chart.Raw{}
			err = fmt.Errorf("%w: %s: %v", chart.ErrChartUnavailable, m, r)
		}
	}()

	var l *lunar.Lunar
	switch m.Calendar {
	case chart.Lunar:
		l = lunar.NewLunar(m.Year, lunarMonthNumber(m), m.Day, m.Hour, m.Minute, m.Second)
	default:
		l = lunar.NewSolar(m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second).GetLunar()
	}

	ec := l.GetEightChar()
	sect := s.Sect
	if sect != SectNextDay {
		sect = SectSameDay
	}
	ec.SetSect(sect)

	pillars := [4]string{ec.GetYear(), ec.GetMonth(), ec.GetDay(), ec.GetTime()}
	var parsed [4]ganzhi.Pillar
	for i, name := range pillars {
		p, err := ganzhi.ParsePillar(name)
		if err != nil {
			return chart.Raw{}, fmt.Errorf("calendar: %s pillar %q: %w", chart.Positions[i], name, chart.ErrInvalidPillar)
		}
		parsed[i] = p
	}

	yun := ec.GetYun(genderCode(g))
	month := l.GetMonth()
	return chart.Raw{
		Year:  parsed[chart.YearPosition],
		Month: parsed[chart.MonthPosition],
		Day:   parsed[chart.DayPosition],
		Hour:  parsed[chart.HourPosition],
		Onset: chart.OnsetAge{
			Years:  yun.GetStartYear(),
			Months: yun.GetStartMonth(),
			Days:   yun.GetStartDay(),
		},
		OnsetYear: yun.GetStartSolar().GetYear(),
		SolarYear: l.GetSolar().GetYear(),
		Lunar: chart.LunarDate{
			Year:  l.GetYear(),
			Month: abs(month),
			Day:   l.GetDay(),
			Leap:  month < 0,
		},
	}, nil
}

// Validate reports whether m names a moment that exists on its calendar.
// Failures wrap chart.ErrChartUnavailable.
func Validate(m chart.Moment) error {
	unavailable := func(reason string) error {
		return fmt.Errorf("%w: %s: %s", chart.ErrChartUnavailable, m, reason)
	}
	if m.Year < MinYear || m.Year > MaxYear {
		return unavailable(fmt.Sprintf("year outside %d–%d", MinYear, MaxYear))
	}
	if m.Hour < 0 || m.Hour > 23 || m.Minute < 0 || m.Minute > 59 || m.Second < 0 || m.Second > 59 {
		return unavailable("no such time of day")
	}

	switch m.Calendar {
	case chart.Lunar:
		if m.Month < 1 || m.Month > 12 {
			return unavailable("no such lunar month")
		}
		lm := lunar.NewLunarYear(m.Year).GetMonth(lunarMonthNumber(m))
		if lm == nil {
			if m.Leap {
				return unavailable("year has no such leap month")
			}
			return unavailable("no such lunar month")
		}
		if m.Day < 1 || m.Day > lm.GetDayCount() {
			return unavailable(fmt.Sprintf("lunar month has %d days", lm.GetDayCount()))
		}
	case chart.Solar:
		if m.Leap {
			return unavailable("leap months exist only on the lunar calendar")
		}
		if m.Month < 1 || m.Month > 12 {
			return unavailable("no such month")
		}
		// Years before 1600 follow the Julian leap rule, as lunar-go does.
		days := SolarUtil.GetDaysOfMonth(m.Year, m.Month)
		if m.Year == 1582 && m.Month == 10 {
			days = 31
		}
		if m.Day < 1 || m.Day > days {
			return unavailable("no such day")
		}
		// Dropped at the Julian to Gregorian switch.
		if m.Year == 1582 && m.Month == 10 && m.Day >= 5 && m.Day <= 14 {
			return unavailable("day skipped by the Gregorian reform")
		}
	default:
		return unavailable(fmt.Sprintf("unknown calendar %d", m.Calendar))
	}
	return nil
}

// lunarMonthNumber encodes leap months as negative numbers, as lunar-go does.
func lunarMonthNumber(m chart.Moment) int {
	if m.Leap {
		return -m.Month
	}
	return m.Month
}

func genderCode(g chart.Gender) int {
	if g == chart.Female {
		return 0
	}
	return 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
