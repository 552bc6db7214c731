package chart

import (
	"fmt"

	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// Chart is the four annotated pillars in Year, Month, Day, Hour order.
type Chart struct {
	Pillars [4]AnnotatedPillar
}

// NewChart annotates four raw pillars. The day pillar's stem becomes the day
// master for every annotation.
func NewChart(year, month, day, hour ganzhi.Pillar) (Chart, error) {
	var c Chart
	dayAnnotated, err := AnnotateDay(day)
	if err != nil {
		return Chart{}, fmt.Errorf("%s pillar: %w", DayPosition, err)
	}
	c.Pillars[DayPosition] = dayAnnotated

	raw := [4]ganzhi.Pillar{year, month, day, hour}
	for _, pos := range []Position{YearPosition, MonthPosition, HourPosition} {
		ap, err := Annotate(day.Stem, raw[pos])
		if err != nil {
			return Chart{}, fmt.Errorf("%s pillar: %w", pos, err)
		}
		c.Pillars[pos] = ap
	}
	return c, nil
}

// Pillar returns the annotated pillar at pos.
func (c Chart) Pillar(pos Position) AnnotatedPillar { return c.Pillars[pos] }

// Year returns the year pillar.
func (c Chart) Year() AnnotatedPillar { return c.Pillars[YearPosition] }

// Month returns the month pillar.
func (c Chart) Month() AnnotatedPillar { return c.Pillars[MonthPosition] }

// Day returns the day pillar.
func (c Chart) Day() AnnotatedPillar { return c.Pillars[DayPosition] }

// Hour returns the hour pillar.
func (c Chart) Hour() AnnotatedPillar { return c.Pillars[HourPosition] }

// DayMaster returns the day pillar's stem.
func (c Chart) DayMaster() ganzhi.Stem { return c.Pillars[DayPosition].Pillar.Stem }

// Zodiac returns the animal of the year pillar's branch.
func (c Chart) Zodiac() string { return c.Year().Pillar.Branch.Zodiac() }

// Void returns the empty branches of the day pillar's decade.
func (c Chart) Void() [2]ganzhi.Branch { return c.Day().Pillar.Void() }

// String lists the four pillars separated by spaces, e.g. "丙子 癸巳 甲辰 壬申".
func (c Chart) String() string {
	return fmt.Sprintf("%s %s %s %s", c.Year().Pillar, c.Month().Pillar, c.Day().Pillar, c.Hour().Pillar)
}
