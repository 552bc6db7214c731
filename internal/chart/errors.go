package chart

import (
	"errors"

	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// Sentinel errors for chart derivation.
var (
	// ErrChartUnavailable indicates the calendar service could not resolve the
	// birth moment (a nonexistent date, an out-of-range year). It is the only
	// error a caller can trigger with input.
	ErrChartUnavailable = errors.New("chart unavailable")
	// ErrInvalidPillar indicates a stem-branch pair outside the sixty-cycle
	// reached the annotator. It means the calendar service broke its
	// contract and is never substituted with a nearby pillar.
	ErrInvalidPillar = ganzhi.ErrInvalidPillar
)
