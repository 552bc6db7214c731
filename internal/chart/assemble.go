package chart

import (
	"context"
	"fmt"

	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// Request describes one chart to build.
type Request struct {
	Moment Moment
	Gender Gender
	// Luck requests the luck-pillar timeline.
	Luck bool
	// HorizonAge overrides the assembler's horizon when positive.
	HorizonAge int
	// ReferenceYear, when non-zero, adds an annual snapshot for that
	// Gregorian year.
	ReferenceYear int
}

// Annual is the snapshot of one calendar year against the chart.
type Annual struct {
	Year int
	// Age is the whole-year age reached during Year.
	Age    int
	Pillar AnnotatedPillar
	// Luck is the luck pillar covering Year, if the timeline was built and
	// covers it.
	Luck *LuckPillar
}

// Result is the assembled chart with its derived attributes.
type Result struct {
	Moment     Moment
	Gender     Gender
	Chart      Chart
	Zodiac     string
	Elements   ElementTally
	Polarities PolarityTally
	Void       [2]ganzhi.Branch
	Lunar      LunarDate
	SolarYear  int
	Onset      OnsetAge
	OnsetYear  int
	Luck       *Timeline
	Annual     *Annual
}

// Assembler builds charts using a calendar Resolver. It holds no mutable
// state and is safe for concurrent use.
type Assembler struct {
	resolver   Resolver
	horizonAge int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithHorizonAge sets the default timeline horizon.
func WithHorizonAge(age int) Option {
	return func(a *Assembler) { a.horizonAge = age }
}

// NewAssembler returns an Assembler that resolves moments through r.
func NewAssembler(r Resolver, opts ...Option) *Assembler {
	a := &Assembler{resolver: r, horizonAge: DefaultHorizonAge}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build resolves the request's moment and assembles the chart. It returns an
// error wrapping ErrChartUnavailable when the moment cannot be resolved and
// ErrInvalidPillar when the resolver breaks its contract. Identical requests
// produce identical results.
func (a *Assembler) Build(ctx context.Context, req Request) (*Result, error) {
	raw, err := a.resolver.Resolve(ctx, req.Moment, req.Gender)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", req.Moment, err)
	}

	c, err := NewChart(raw.Year, raw.Month, raw.Day, raw.Hour)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Moment:     req.Moment,
		Gender:     req.Gender,
		Chart:      c,
		Zodiac:     c.Zodiac(),
		Elements:   Tally(c),
		Polarities: TallyPolarity(c),
		Void:       c.Void(),
		Lunar:      raw.Lunar,
		SolarYear:  raw.SolarYear,
		Onset:      raw.Onset,
		OnsetYear:  raw.OnsetYear,
	}

	if req.Luck {
		horizon := a.horizonAge
		if req.HorizonAge > 0 {
			horizon = req.HorizonAge
		}
		tl, err := Sequence(LuckRequest{
			DayMaster:    c.DayMaster(),
			Month:        raw.Month,
			YearPolarity: raw.Year.Stem.Polarity(),
			Gender:       req.Gender,
			OnsetAge:     raw.Onset.Years,
			HorizonAge:   horizon,
			OnsetYear:    raw.OnsetYear,
			BirthYear:    raw.SolarYear,
		})
		if err != nil {
			return nil, err
		}
		res.Luck = &tl
	}

	if req.ReferenceYear != 0 {
		annual, err := annualSnapshot(res, req.ReferenceYear)
		if err != nil {
			return nil, err
		}
		res.Annual = annual
	}
	return res, nil
}

func annualSnapshot(res *Result, year int) (*Annual, error) {
	ap, err := Annotate(res.Chart.DayMaster(), ganzhi.YearPillar(year))
	if err != nil {
		return nil, err
	}
	out := &Annual{Year: year, Age: year - res.SolarYear, Pillar: ap}
	if res.Luck != nil {
		if lp, ok := res.Luck.ForYear(year); ok {
			out.Luck = &lp
		}
	}
	return out, nil
}
