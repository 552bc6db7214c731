package chart

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/bazi/internal/ganzhi"
)

func mustPillar(t *testing.T, s string) ganzhi.Pillar {
	t.Helper()
	p, err := ganzhi.ParsePillar(s)
	if err != nil {
		t.Fatalf("ParsePillar(%q): %v", s, err)
	}
	return p
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	got, err := Annotate(ganzhi.Jia, mustPillar(t, "癸巳"))
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	want := AnnotatedPillar{
		Pillar:        mustPillar(t, "癸巳"),
		StemElement:   ganzhi.Water,
		BranchElement: ganzhi.Fire,
		StemPolarity:  ganzhi.Yin,
		Relationship:  ganzhi.DirectResource,
		NaYin:         ganzhi.NaYin{Name: "长流水", Element: ganzhi.Water},
		Hidden: []AnnotatedHiddenStem{
			{Stem: ganzhi.Bing, Rank: 0, Element: ganzhi.Fire, Relationship: ganzhi.EatingGod},
			{Stem: ganzhi.Geng, Rank: 1, Element: ganzhi.Metal, Relationship: ganzhi.SevenKillings},
			{Stem: ganzhi.Wu, Rank: 2, Element: ganzhi.Earth, Relationship: ganzhi.IndirectWealth},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Annotate mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnotateDayMasterMarkers(t *testing.T) {
	t.Parallel()

	day := mustPillar(t, "甲辰")

	t.Run("day pillar keeps self", func(t *testing.T) {
		t.Parallel()
		ap, err := AnnotateDay(day)
		if err != nil {
			t.Fatalf("AnnotateDay: %v", err)
		}
		if ap.Relationship != ganzhi.Self {
			t.Errorf("Relationship = %s, want %s", ap.Relationship, ganzhi.Self)
		}
	})

	t.Run("other pillar with same stem is peer", func(t *testing.T) {
		t.Parallel()
		ap, err := Annotate(ganzhi.Jia, mustPillar(t, "甲子"))
		if err != nil {
			t.Fatalf("Annotate: %v", err)
		}
		if ap.Relationship != ganzhi.Peer {
			t.Errorf("Relationship = %s, want %s", ap.Relationship, ganzhi.Peer)
		}
	})

	t.Run("hidden day master stem is peer", func(t *testing.T) {
		t.Parallel()
		ap, err := Annotate(ganzhi.Jia, mustPillar(t, "丙寅"))
		if err != nil {
			t.Fatalf("Annotate: %v", err)
		}
		if got := ap.Hidden[0].Relationship; got != ganzhi.Peer {
			t.Errorf("hidden 甲 Relationship = %s, want %s", got, ganzhi.Peer)
		}
	})
}

func TestAnnotateRejectsInvalidPillar(t *testing.T) {
	t.Parallel()

	_, err := Annotate(ganzhi.Jia, ganzhi.Pillar{Stem: ganzhi.Jia, Branch: ganzhi.Ox})
	if !errors.Is(err, ErrInvalidPillar) {
		t.Errorf("error = %v, want ErrInvalidPillar", err)
	}
	_, err = Annotate(ganzhi.Stem(10), mustPillar(t, "甲子"))
	if !errors.Is(err, ErrInvalidPillar) {
		t.Errorf("error = %v, want ErrInvalidPillar for out-of-range day master", err)
	}
}

func TestAnnotateEveryPillar(t *testing.T) {
	t.Parallel()

	for dm := ganzhi.Stem(0); dm < ganzhi.StemCount; dm++ {
		for _, p := range ganzhi.Cycle() {
			ap, err := Annotate(dm, p)
			if err != nil {
				t.Fatalf("Annotate(%s, %s): %v", dm, p, err)
			}
			if ap.NaYin.Name == "" || len(ap.Hidden) == 0 {
				t.Errorf("Annotate(%s, %s) incomplete: %+v", dm, p, ap)
			}
			if ap.Relationship == ganzhi.Self {
				t.Errorf("Annotate(%s, %s) produced Self outside the day pillar", dm, p)
			}
		}
	}
}
