package render

import (
	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// View is the serializable form of a chart result. JSON, TOML and YAML
// output and the published JSON Schema are all derived from it.
type View struct {
	Moment    string        `json:"moment" toml:"moment" yaml:"moment" jsonschema:"description=Birth moment as entered"`
	Calendar  string        `json:"calendar" toml:"calendar" yaml:"calendar"`
	Gender    string        `json:"gender" toml:"gender" yaml:"gender"`
	Lunar     LunarView     `json:"lunar" toml:"lunar" yaml:"lunar"`
	DayMaster string        `json:"day_master" toml:"day_master" yaml:"day_master" jsonschema:"description=Stem of the day pillar"`
	Zodiac    string        `json:"zodiac" toml:"zodiac" yaml:"zodiac"`
	Pillars   []PillarView  `json:"pillars" toml:"pillars" yaml:"pillars" jsonschema:"minItems=4,maxItems=4"`
	Elements  []CountView   `json:"elements" toml:"elements" yaml:"elements" jsonschema:"description=Surface element tally; counts sum to 8"`
	Missing   []string      `json:"missing_elements" toml:"missing_elements" yaml:"missing_elements"`
	Dominant  []string      `json:"dominant_elements" toml:"dominant_elements" yaml:"dominant_elements"`
	Polarity  PolarityView  `json:"polarity" toml:"polarity" yaml:"polarity"`
	Void      []string      `json:"void_branches" toml:"void_branches" yaml:"void_branches"`
	Onset     OnsetView     `json:"onset" toml:"onset" yaml:"onset"`
	Luck      *TimelineView `json:"luck,omitempty" toml:"luck,omitempty" yaml:"luck,omitempty"`
	Annual    *AnnualView   `json:"annual,omitempty" toml:"annual,omitempty" yaml:"annual,omitempty"`
}

// LunarView is the lunar birth date.
type LunarView struct {
	Year  int  `json:"year" toml:"year" yaml:"year"`
	Month int  `json:"month" toml:"month" yaml:"month"`
	Day   int  `json:"day" toml:"day" yaml:"day"`
	Leap  bool `json:"leap" toml:"leap" yaml:"leap"`
}

// PillarView is one annotated pillar.
type PillarView struct {
	Position      string       `json:"position,omitempty" toml:"position,omitempty" yaml:"position,omitempty"`
	Name          string       `json:"name" toml:"name" yaml:"name"`
	Stem          string       `json:"stem" toml:"stem" yaml:"stem"`
	Branch        string       `json:"branch" toml:"branch" yaml:"branch"`
	StemElement   string       `json:"stem_element" toml:"stem_element" yaml:"stem_element"`
	BranchElement string       `json:"branch_element" toml:"branch_element" yaml:"branch_element"`
	Polarity      string       `json:"polarity" toml:"polarity" yaml:"polarity"`
	Relationship  string       `json:"relationship" toml:"relationship" yaml:"relationship"`
	NaYin         string       `json:"na_yin" toml:"na_yin" yaml:"na_yin"`
	NaYinElement  string       `json:"na_yin_element" toml:"na_yin_element" yaml:"na_yin_element"`
	Hidden        []HiddenView `json:"hidden_stems" toml:"hidden_stems" yaml:"hidden_stems" jsonschema:"minItems=1,maxItems=3"`
}

// HiddenView is one hidden stem of a branch.
type HiddenView struct {
	Stem         string `json:"stem" toml:"stem" yaml:"stem"`
	Element      string `json:"element" toml:"element" yaml:"element"`
	Relationship string `json:"relationship" toml:"relationship" yaml:"relationship"`
	Rank         int    `json:"rank" toml:"rank" yaml:"rank"`
}

// CountView is the count of one element.
type CountView struct {
	Element string `json:"element" toml:"element" yaml:"element"`
	Count   int    `json:"count" toml:"count" yaml:"count"`
}

// PolarityView counts yang and yin symbols.
type PolarityView struct {
	Yang int `json:"yang" toml:"yang" yaml:"yang"`
	Yin  int `json:"yin" toml:"yin" yaml:"yin"`
}

// OnsetView is the age, and calendar year, at which the first luck pillar begins.
type OnsetView struct {
	Years  int `json:"years" toml:"years" yaml:"years"`
	Months int `json:"months" toml:"months" yaml:"months"`
	Days   int `json:"days" toml:"days" yaml:"days"`
	Year   int `json:"year" toml:"year" yaml:"year"`
}

// TimelineView is the luck-pillar sequence.
type TimelineView struct {
	Direction string     `json:"direction" toml:"direction" yaml:"direction"`
	Pillars   []LuckView `json:"pillars" toml:"pillars" yaml:"pillars" jsonschema:"maxItems=12"`
}

// LuckView is one luck pillar with its half-open age and year bands.
type LuckView struct {
	Pillar    PillarView `json:"pillar" toml:"pillar" yaml:"pillar"`
	StartAge  int        `json:"start_age" toml:"start_age" yaml:"start_age"`
	EndAge    int        `json:"end_age" toml:"end_age" yaml:"end_age"`
	StartYear int        `json:"start_year" toml:"start_year" yaml:"start_year"`
	EndYear   int        `json:"end_year" toml:"end_year" yaml:"end_year"`
}

// AnnualView is the snapshot of one calendar year.
type AnnualView struct {
	Year   int        `json:"year" toml:"year" yaml:"year"`
	Age    int        `json:"age" toml:"age" yaml:"age"`
	Pillar PillarView `json:"pillar" toml:"pillar" yaml:"pillar"`
	Luck   *LuckView  `json:"luck,omitempty" toml:"luck,omitempty" yaml:"luck,omitempty"`
}

// NewView converts res into its serializable form with labels in lang.
func NewView(res *chart.Result, lang Lang) View {
	v := View{
		Moment:    res.Moment.String(),
		Calendar:  lang.calendar(res.Moment.Calendar),
		Gender:    lang.gender(res.Gender),
		Lunar:     LunarView{Year: res.Lunar.Year, Month: res.Lunar.Month, Day: res.Lunar.Day, Leap: res.Lunar.Leap},
		DayMaster: res.Chart.DayMaster().String(),
		Zodiac:    lang.zodiac(res.Chart.Year().Pillar.Branch),
		Pillars:   make([]PillarView, 0, len(res.Chart.Pillars)),
		Elements:  make([]CountView, 0, len(ganzhi.Elements)),
		Missing:   elementNames(lang, res.Elements.Missing()),
		Dominant:  elementNames(lang, res.Elements.Dominant()),
		Polarity:  PolarityView{Yang: res.Polarities.Yang, Yin: res.Polarities.Yin},
		Void:      []string{res.Void[0].String(), res.Void[1].String()},
		Onset: OnsetView{
			Years:  res.Onset.Years,
			Months: res.Onset.Months,
			Days:   res.Onset.Days,
			Year:   res.OnsetYear,
		},
	}
	for _, pos := range chart.Positions {
		pv := pillarView(lang, res.Chart.Pillar(pos))
		pv.Position = lang.position(pos)
		v.Pillars = append(v.Pillars, pv)
	}
	for _, e := range ganzhi.Elements {
		v.Elements = append(v.Elements, CountView{Element: lang.element(e), Count: res.Elements.Count(e)})
	}
	if res.Luck != nil {
		tl := &TimelineView{
			Direction: lang.direction(res.Luck.Direction),
			Pillars:   make([]LuckView, 0, len(res.Luck.Pillars)),
		}
		for _, lp := range res.Luck.Pillars {
			tl.Pillars = append(tl.Pillars, luckView(lang, lp))
		}
		v.Luck = tl
	}
	if res.Annual != nil {
		av := &AnnualView{
			Year:   res.Annual.Year,
			Age:    res.Annual.Age,
			Pillar: pillarView(lang, res.Annual.Pillar),
		}
		if res.Annual.Luck != nil {
			lv := luckView(lang, *res.Annual.Luck)
			av.Luck = &lv
		}
		v.Annual = av
	}
	return v
}

func pillarView(lang Lang, ap chart.AnnotatedPillar) PillarView {
	nayin := ap.NaYin
	pv := PillarView{
		Name:          ap.Pillar.String(),
		Stem:          ap.Pillar.Stem.String(),
		Branch:        ap.Pillar.Branch.String(),
		StemElement:   lang.element(ap.StemElement),
		BranchElement: lang.element(ap.BranchElement),
		Polarity:      lang.polarity(ap.StemPolarity),
		Relationship:  lang.relationship(ap.Relationship),
		NaYin:         nayin.Name,
		NaYinElement:  lang.element(nayin.Element),
		Hidden:        make([]HiddenView, 0, len(ap.Hidden)),
	}
	for _, h := range ap.Hidden {
		pv.Hidden = append(pv.Hidden, HiddenView{
			Stem:         h.Stem.String(),
			Element:      lang.element(h.Element),
			Relationship: lang.relationship(h.Relationship),
			Rank:         h.Rank,
		})
	}
	return pv
}

func luckView(lang Lang, lp chart.LuckPillar) LuckView {
	return LuckView{
		Pillar:    pillarView(lang, lp.AnnotatedPillar),
		StartAge:  lp.StartAge,
		EndAge:    lp.EndAge,
		StartYear: lp.StartYear,
		EndYear:   lp.EndYear,
	}
}

// elementNames never returns nil so that JSON renders an empty list.
func elementNames(lang Lang, es []ganzhi.Element) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, lang.element(e))
	}
	return out
}
