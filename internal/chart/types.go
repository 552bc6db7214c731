// Package chart derives a Four Pillars chart from the raw pillars supplied by
// a calendar service: it annotates each pillar against the day master, tallies
// the five elements, and sequences the ten-year luck pillars.
//
// Every function in this package is pure. The only suspension point is the
// Resolver call made by Assembler.Build.
package chart

import (
	"context"
	"fmt"
	"strings"

	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// Gender selects the luck-pillar direction together with the year stem's
// polarity.
type Gender uint8

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// ParseGender accepts "male"/"female" (or m/f, 男/女), case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "男":
		return Male, nil
	case "female", "f", "女":
		return Female, nil
	}
	return 0, fmt.Errorf("chart: unknown gender %q", s)
}

// CalendarKind says which calendar a Moment is expressed in.
type CalendarKind uint8

const (
	Solar CalendarKind = iota
	Lunar
)

func (k CalendarKind) String() string {
	if k == Lunar {
		return "lunar"
	}
	return "solar"
}

// ParseCalendarKind accepts "solar" or "lunar".
func ParseCalendarKind(s string) (CalendarKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solar", "gregorian":
		return Solar, nil
	case "lunar":
		return Lunar, nil
	}
	return 0, fmt.Errorf("chart: unknown calendar %q", s)
}

// Moment is a birth moment as wall-clock fields in the birth time zone.
// For lunar moments Month is the lunar month number and Leap marks the
// intercalary month of that number.
type Moment struct {
	Calendar CalendarKind
	Year     int
	Month    int
	Day      int
	Hour     int
	Minute   int
	Second   int
	Leap     bool
}

func (m Moment) String() string {
	leap := ""
	if m.Leap {
		leap = "闰"
	}
	return fmt.Sprintf("%s %04d-%s%02d-%02d %02d:%02d:%02d",
		m.Calendar, m.Year, leap, m.Month, m.Day, m.Hour, m.Minute, m.Second)
}

// OnsetAge is the offset from birth to the first luck pillar.
type OnsetAge struct {
	Years  int
	Months int
	Days   int
}

// LunarDate is the lunar calendar date of the birth moment.
type LunarDate struct {
	Year  int
	Month int
	Day   int
	Leap  bool
}

// Raw is what a calendar service returns for a birth moment: four pillars,
// the luck onset offset, and the moment on both calendars.
type Raw struct {
	Year  ganzhi.Pillar
	Month ganzhi.Pillar
	Day   ganzhi.Pillar
	Hour  ganzhi.Pillar

	Onset OnsetAge
	// OnsetYear is the Gregorian year in which the first luck pillar begins.
	OnsetYear int

	// SolarYear is the Gregorian birth year.
	SolarYear int
	Lunar     LunarDate
}

// Resolver is the calendar conversion service. Implementations return an
// error wrapping ErrChartUnavailable when the moment cannot be resolved, and
// must only return pillars that lie on the sixty-cycle.
type Resolver interface {
	Resolve(ctx context.Context, m Moment, g Gender) (Raw, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, m Moment, g Gender) (Raw, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, m Moment, g Gender) (Raw, error) {
	return f(ctx, m, g)
}

// Position identifies a pillar within a chart.
type Position uint8

const (
	YearPosition Position = iota
	MonthPosition
	DayPosition
	HourPosition
)

var positionNames = [4]string{"year", "month", "day", "hour"}

func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return fmt.Sprintf("Position(%d)", uint8(p))
}

// Positions lists the four positions in chart order.
var Positions = [4]Position{YearPosition, MonthPosition, DayPosition, HourPosition}
