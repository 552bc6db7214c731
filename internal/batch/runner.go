package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/bazi/internal/calendar"
	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/telemetry"
)

// Outcome is the result of evaluating one person. Exactly one of Result and
// Err is set.
type Outcome struct {
	Index  int
	Person Person
	Result *chart.Result
	Err    error
}

// Summary counts the outcomes of one pass.
type Summary struct {
	RunID       string
	Total       int
	Built       int
	Unavailable int
	Failed      int
}

// Runner evaluates rosters with a bounded number of concurrent workers.
type Runner struct {
	assembler *chart.Assembler
	loc       *time.Location
	workers   int
	emitter   *telemetry.Emitter
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the maximum number of records evaluated at once.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLocation sets the zone used to interpret absolute timestamps.
func WithLocation(loc *time.Location) Option {
	return func(r *Runner) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithEmitter records per-record and per-pass telemetry.
func WithEmitter(e *telemetry.Emitter) Option {
	return func(r *Runner) { r.emitter = e }
}

// NewRunner returns a Runner that builds charts with a.
func NewRunner(a *chart.Assembler, opts ...Option) *Runner {
	r := &Runner{assembler: a, loc: time.UTC, workers: 4}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates every person in the roster. Outcomes are returned in roster
// order. A failing record does not stop the others; only cancellation of ctx
// ends the pass early, in which case the context error is returned.
func (r *Runner) Run(ctx context.Context, roster Roster) ([]Outcome, Summary, error) {
	sum := Summary{RunID: uuid.NewString(), Total: len(roster.People)}
	_ = r.emitter.Record(telemetry.KindBatchStart, sum.RunID, "", map[string]int{"total": sum.Total, "workers": r.workers})

	out := make([]Outcome, len(roster.People))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, p := range roster.People {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.evaluate(gctx, p)
			out[i] = Outcome{Index: i, Person: p, Result: res, Err: err}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, sum, err
	}

	for _, o := range out {
		switch {
		case o.Err == nil:
			sum.Built++
			_ = r.emitter.Record(telemetry.KindChartBuilt, sum.RunID, o.Person.Label(), map[string]string{"pillars": o.Result.Chart.String()})
		case errors.Is(o.Err, chart.ErrChartUnavailable):
			sum.Unavailable++
			_ = r.emitter.Record(telemetry.KindChartUnavailable, sum.RunID, o.Person.Label(), map[string]string{"error": o.Err.Error()})
		default:
			sum.Failed++
			_ = r.emitter.Record(telemetry.KindChartFailed, sum.RunID, o.Person.Label(), map[string]string{"error": o.Err.Error()})
		}
	}
	_ = r.emitter.Record(telemetry.KindBatchDone, sum.RunID, "", sum)
	return out, sum, nil
}

func (r *Runner) evaluate(ctx context.Context, p Person) (*chart.Result, error) {
	kind, err := chart.ParseCalendarKind(p.Calendar)
	if err != nil {
		return nil, err
	}
	gender, err := chart.ParseGender(p.Gender)
	if err != nil {
		return nil, err
	}
	m, err := calendar.ParseMoment(p.Birth, kind, r.loc)
	if err != nil {
		return nil, err
	}
	req := chart.Request{Moment: m, Gender: gender, ReferenceYear: p.Year}
	if p.Luck != nil {
		req.Luck = *p.Luck
	}
	res, err := r.assembler.Build(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Label(), err)
	}
	return res, nil
}
