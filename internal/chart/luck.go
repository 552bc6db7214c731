package chart

import (
	"fmt"

	"github.com/papapumpkin/bazi/internal/ganzhi"
)

const (
	// DefaultHorizonAge is the age at which the luck timeline ends.
	DefaultHorizonAge = 90
	// MaxLuckPillars bounds the length of every timeline, whatever the onset
	// age and horizon.
	MaxLuckPillars = 12
	// BandYears is the span of one luck pillar.
	BandYears = 10
)

// Direction is the sense in which luck pillars walk the sixty-cycle away
// from the month pillar.
type Direction int8

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// DirectionFor returns Forward for a yang-year male or a yin-year female and
// Backward otherwise.
func DirectionFor(g Gender, yearStem ganzhi.Polarity) Direction {
	if (g == Male) == (yearStem == ganzhi.Yang) {
		return Forward
	}
	return Backward
}

// LuckPillar is one ten-year band of the timeline. Ages and years are
// half-open: [StartAge, EndAge), [StartYear, EndYear).
type LuckPillar struct {
	AnnotatedPillar
	StartAge  int
	EndAge    int
	StartYear int
	EndYear   int
}

// Timeline is the ordered luck-pillar sequence. Its bands tile
// [onset, horizon) with no gaps or overlaps.
type Timeline struct {
	Direction Direction
	Pillars   []LuckPillar
}

// LuckRequest carries the inputs of Sequence.
type LuckRequest struct {
	// DayMaster annotates each luck pillar.
	DayMaster ganzhi.Stem
	Month     ganzhi.Pillar
	// YearPolarity is the polarity of the year pillar's stem.
	YearPolarity ganzhi.Polarity
	Gender       Gender
	// OnsetAge is the start age of the first band, supplied by the calendar
	// service. It must not be negative.
	OnsetAge int
	// HorizonAge ends the timeline; zero means DefaultHorizonAge.
	HorizonAge int
	// OnsetYear is the calendar year in which the first band begins, as
	// reported by the calendar service. Zero falls back to BirthYear+OnsetAge.
	OnsetYear int
	BirthYear int
}

// Sequence walks the sixty-cycle from the month pillar and emits one luck
// pillar per decade, starting at the onset age. A band whose start age
// reaches the horizon is not emitted, the last band ends at the horizon, and
// at most MaxLuckPillars are emitted.
func Sequence(req LuckRequest) (Timeline, error) {
	if !req.Month.Valid() {
		return Timeline{}, fmt.Errorf("month pillar: %w: %s", ErrInvalidPillar, req.Month)
	}
	if req.OnsetAge < 0 {
		return Timeline{}, fmt.Errorf("%w: negative luck onset age %d", ErrChartUnavailable, req.OnsetAge)
	}
	horizon := req.HorizonAge
	if horizon <= 0 {
		horizon = DefaultHorizonAge
	}

	onsetYear := req.OnsetYear
	if onsetYear == 0 {
		onsetYear = req.BirthYear + req.OnsetAge
	}

	dir := DirectionFor(req.Gender, req.YearPolarity)
	tl := Timeline{Direction: dir}
	for i := 1; i <= MaxLuckPillars; i++ {
		start := req.OnsetAge + (i-1)*BandYears
		if start >= horizon {
			break
		}
		end := min(start+BandYears, horizon)

		ap, err := Annotate(req.DayMaster, req.Month.Step(i*int(dir)))
		if err != nil {
			return Timeline{}, err
		}
		tl.Pillars = append(tl.Pillars, LuckPillar{
			AnnotatedPillar: ap,
			StartAge:        start,
			EndAge:          end,
			StartYear:       onsetYear + (start - req.OnsetAge),
			EndYear:         onsetYear + (end - req.OnsetAge),
		})
	}
	return tl, nil
}

// At returns the luck pillar whose age band contains age.
func (tl Timeline) At(age int) (LuckPillar, bool) {
	for _, lp := range tl.Pillars {
		if age >= lp.StartAge && age < lp.EndAge {
			return lp, true
		}
	}
	return LuckPillar{}, false
}

// ForYear returns the luck pillar whose year band contains year.
func (tl Timeline) ForYear(year int) (LuckPillar, bool) {
	for _, lp := range tl.Pillars {
		if year >= lp.StartYear && year < lp.EndYear {
			return lp, true
		}
	}
	return LuckPillar{}, false
}
