// Package render turns an assembled chart into text, JSON or TOML output,
// with labels in Chinese or English.
package render

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// Lang selects the label set.
type Lang string

const (
	Chinese Lang = "zh"
	English Lang = "en"
)

var supported = []language.Tag{language.Chinese, language.English}

var matcher = language.NewMatcher(supported)

// ParseLang matches a language name or Accept-Language list against the
// supported label sets. Unsupported languages fall back to Chinese.
func ParseLang(s string) (Lang, error) {
	if s == "" {
		return Chinese, nil
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil {
		return "", fmt.Errorf("render: language %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Chinese, nil
	}
	if supported[idx] == language.English {
		return English, nil
	}
	return Chinese, nil
}

type labelSet struct {
	elements      [5]string
	polarities    [2]string
	relationships [11]string
	zodiac        [12]string
	positions     [4]string
	genders       [2]string
	directions    map[chart.Direction]string
	calendars     [2]string
	rows          rowLabels
}

type rowLabels struct {
	relationship string
	ganzhi       string
	stem         string
	branch       string
	hidden       string
	naYin        string
	age          string
	years        string
	pillar       string
	tally        string
	polarity     string
	missing      string
	void         string
	onset        string
	annual       string
	zodiac       string
	lunar        string
}

var labels = map[Lang]labelSet{
	Chinese: {
		elements:      [5]string{"木", "火", "土", "金", "水"},
		polarities:    [2]string{"阳", "阴"},
		relationships: [11]string{"日主", "比肩", "劫财", "食神", "伤官", "偏财", "正财", "七杀", "正官", "偏印", "正印"},
		zodiac:        [12]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"},
		positions:     [4]string{"年柱", "月柱", "日柱", "时柱"},
		genders:       [2]string{"男", "女"},
		directions:    map[chart.Direction]string{chart.Forward: "顺行", chart.Backward: "逆行"},
		calendars:     [2]string{"公历", "农历"},
		rows: rowLabels{
			relationship: "十神", ganzhi: "干支", stem: "天干", branch: "地支", hidden: "藏干", naYin: "纳音",
			age: "年龄", years: "年份", pillar: "大运",
			tally: "五行", polarity: "阴阳", missing: "缺", void: "空亡",
			onset: "起运", annual: "流年", zodiac: "生肖", lunar: "农历",
		},
	},
	English: {
		elements:   [5]string{"Wood", "Fire", "Earth", "Metal", "Water"},
		polarities: [2]string{"Yang", "Yin"},
		relationships: [11]string{
			"Day Master", "Companion", "Rob Wealth", "Eating God", "Hurting Officer",
			"Indirect Wealth", "Direct Wealth", "Seven Killings", "Direct Officer",
			"Indirect Resource", "Direct Resource",
		},
		zodiac: [12]string{
			"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
			"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
		},
		positions:  [4]string{"Year", "Month", "Day", "Hour"},
		genders:    [2]string{"male", "female"},
		directions: map[chart.Direction]string{chart.Forward: "forward", chart.Backward: "backward"},
		calendars:  [2]string{"solar", "lunar"},
		rows: rowLabels{
			relationship: "Ten God", ganzhi: "Pillar", stem: "Stem", branch: "Branch", hidden: "Hidden", naYin: "Na Yin",
			age: "Age", years: "Years", pillar: "Luck",
			tally: "Elements", polarity: "Polarity", missing: "missing", void: "Void",
			onset: "Onset", annual: "Year", zodiac: "Zodiac", lunar: "Lunar",
		},
	},
}

func (l Lang) set() labelSet {
	if s, ok := labels[l]; ok {
		return s
	}
	return labels[Chinese]
}

func (l Lang) element(e ganzhi.Element) string { return l.set().elements[e] }
func (l Lang) polarity(p ganzhi.Polarity) string { return l.set().polarities[p] }
func (l Lang) relationship(r ganzhi.Relationship) string { return l.set().relationships[r] }
func (l Lang) zodiac(b ganzhi.Branch) string { return l.set().zodiac[b] }
func (l Lang) position(p chart.Position) string { return l.set().positions[p] }
func (l Lang) gender(g chart.Gender) string { return l.set().genders[g] }
func (l Lang) direction(d chart.Direction) string { return l.set().directions[d] }
func (l Lang) calendar(k chart.CalendarKind) string { return l.set().calendars[k] }
func (l Lang) rows() rowLabels { return l.set().rows }
