package ganzhi

import "testing"

func TestStemAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stem     Stem
		name     string
		element  Element
		polarity Polarity
	}{
		{Jia, "甲", Wood, Yang},
		{Yi, "乙", Wood, Yin},
		{Bing, "丙", Fire, Yang},
		{Ding, "丁", Fire, Yin},
		{Wu, "戊", Earth, Yang},
		{Ji, "己", Earth, Yin},
		{Geng, "庚", Metal, Yang},
		{Xin, "辛", Metal, Yin},
		{Ren, "壬", Water, Yang},
		{Gui, "癸", Water, Yin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.stem.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.stem.Element(); got != tt.element {
				t.Errorf("Element() = %s, want %s", got, tt.element)
			}
			if got := tt.stem.Polarity(); got != tt.polarity {
				t.Errorf("Polarity() = %s, want %s", got, tt.polarity)
			}
			parsed, err := ParseStem(tt.name)
			if err != nil || parsed != tt.stem {
				t.Errorf("ParseStem(%q) = %v, %v", tt.name, parsed, err)
			}
		})
	}
}

func TestBranchAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		branch  Branch
		name    string
		element Element
		zodiac  string
	}{
		{Rat, "子", Water, "鼠"},
		{Ox, "丑", Earth, "牛"},
		{Tiger, "寅", Wood, "虎"},
		{Rabbit, "卯", Wood, "兔"},
		{Dragon, "辰", Earth, "龙"},
		{Snake, "巳", Fire, "蛇"},
		{Horse, "午", Fire, "马"},
		{Goat, "未", Earth, "羊"},
		{Monkey, "申", Metal, "猴"},
		{Rooster, "酉", Metal, "鸡"},
		{Dog, "戌", Earth, "狗"},
		{Pig, "亥", Water, "猪"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.branch.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.branch.Element(); got != tt.element {
				t.Errorf("Element() = %s, want %s", got, tt.element)
			}
			if got := tt.branch.Zodiac(); got != tt.zodiac {
				t.Errorf("Zodiac() = %q, want %q", got, tt.zodiac)
			}
		})
	}
}

func TestElementCycles(t *testing.T) {
	t.Parallel()

	generates := map[Element]Element{Wood: Fire, Fire: Earth, Earth: Metal, Metal: Water, Water: Wood}
	controls := map[Element]Element{Wood: Earth, Earth: Water, Water: Fire, Fire: Metal, Metal: Wood}
	for _, e := range Elements {
		if got := e.Generates(); got != generates[e] {
			t.Errorf("%s.Generates() = %s, want %s", e, got, generates[e])
		}
		if got := e.Controls(); got != controls[e] {
			t.Errorf("%s.Controls() = %s, want %s", e, got, controls[e])
		}
	}
}

func TestParseUnknownSymbols(t *testing.T) {
	t.Parallel()
	if _, err := ParseStem("子"); err == nil {
		t.Error("ParseStem(子) succeeded, want error")
	}
	if _, err := ParseBranch("甲"); err == nil {
		t.Error("ParseBranch(甲) succeeded, want error")
	}
}

func TestCheckTables(t *testing.T) {
	t.Parallel()
	if err := CheckTables(); err != nil {
		t.Fatalf("CheckTables: %v", err)
	}
}
