// Package ganzhi holds the fixed sexagenary cycle tables: the ten Heavenly
// Stems, the twelve Earthly Branches, their elements and polarities, the
// hidden stems of each branch, the sixty-pillar cycle with its sound-element
// (na-yin) labels, and the ten-fold relationship between two stems.
//
// Every table is a package-level value built at init and never mutated, so
// all functions here are safe for concurrent use.
package ganzhi

import "fmt"

// Element is one of the five phases, ordered along the generation cycle
// (wood → fire → earth → metal → water → wood).
type Element uint8

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Elements lists the five phases in generation order.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var elementNames = [5]string{"木", "火", "土", "金", "水"}

func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return fmt.Sprintf("Element(%d)", uint8(e))
}

// Generates returns the element e produces in the generation cycle.
func (e Element) Generates() Element { return (e + 1) % 5 }

// Controls returns the element e overcomes in the control cycle
// (wood → earth → water → fire → metal → wood).
func (e Element) Controls() Element { return (e + 2) % 5 }

// Polarity is yang or yin.
type Polarity uint8

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yang {
		return "阳"
	}
	return "阴"
}

// Stem is a Heavenly Stem, indexed 0–9 from 甲.
type Stem uint8

const (
	Jia Stem = iota
	Yi
	Bing
	Ding
	Wu
	Ji
	Geng
	Xin
	Ren
	Gui
)

// StemCount is the length of the stem cycle.
const StemCount = 10

var stemNames = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s < StemCount }

func (s Stem) String() string {
	if s.Valid() {
		return stemNames[s]
	}
	return fmt.Sprintf("Stem(%d)", uint8(s))
}

// Element returns the stem's phase. Stems pair up per element, yang first.
func (s Stem) Element() Element { return Element(s / 2) }

// Polarity returns yang for even-indexed stems and yin for odd ones.
func (s Stem) Polarity() Polarity { return Polarity(s % 2) }

// Branch is an Earthly Branch, indexed 0–11 from 子.
type Branch uint8

// Branch constants are named after their zodiac animal.
const (
	Rat Branch = iota // 子
	Ox                // 丑
	Tiger             // 寅
	Rabbit            // 卯
	Dragon            // 辰
	Snake             // 巳
	Horse             // 午
	Goat              // 未
	Monkey            // 申
	Rooster           // 酉
	Dog               // 戌
	Pig               // 亥
)

// BranchCount is the length of the branch cycle.
const BranchCount = 12

var branchNames = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchElements = [BranchCount]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

var zodiacNames = [BranchCount]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b < BranchCount }

func (b Branch) String() string {
	if b.Valid() {
		return branchNames[b]
	}
	return fmt.Sprintf("Branch(%d)", uint8(b))
}

// Element returns the branch's phase.
func (b Branch) Element() Element { return branchElements[b] }

// Polarity follows the branch index parity, matching the stem it pairs with.
func (b Branch) Polarity() Polarity { return Polarity(b % 2) }

// Zodiac returns the animal associated with the branch.
func (b Branch) Zodiac() string { return zodiacNames[b] }

// ParseStem returns the stem written as s.
func ParseStem(s string) (Stem, error) {
	for i, name := range stemNames {
		if name == s {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("ganzhi: unknown stem %q", s)
}

// ParseBranch returns the branch written as s.
func ParseBranch(s string) (Branch, error) {
	for i, name := range branchNames {
		if name == s {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("ganzhi: unknown branch %q", s)
}
