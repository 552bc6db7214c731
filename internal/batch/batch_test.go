package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/papapumpkin/bazi/internal/calendar"
	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/telemetry"
)

// TestMain fails the package if a runner worker or watcher loop outlives
// its test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sampleRoster = `
[defaults]
calendar = "solar"
luck = true

[[person]]
name = "fixture"
birth = "1996-05-07 15:00"
gender = "male"
year = 2026

[[person]]
name = "no such day"
birth = "2023-02-30 08:00"
gender = "female"

[[person]]
name = "lunar"
birth = "2023-闰02-15 10:30"
gender = "f"
calendar = "lunar"
luck = false

[[person]]
name = "garbage"
birth = "sometime"
gender = "male"
`

func TestParseRoster(t *testing.T) {
	t.Parallel()

	r, err := ParseRoster([]byte(sampleRoster))
	if err != nil {
		t.Fatalf("ParseRoster: %v", err)
	}
	if len(r.People) != 4 {
		t.Fatalf("People = %d, want 4", len(r.People))
	}
	first, lunar := r.People[0], r.People[2]
	if first.Calendar != "solar" || first.Luck == nil || !*first.Luck || first.Year != 2026 {
		t.Errorf("defaults not applied to first person: %+v", first)
	}
	if lunar.Calendar != "lunar" || lunar.Luck == nil || *lunar.Luck {
		t.Errorf("explicit fields overridden: %+v", lunar)
	}
}

func TestParseRosterErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"not toml", "[[person]\nname ="},
		{"missing birth", "[[person]]\nname = \"a\"\ngender = \"male\"\n"},
		{"missing gender", "[[person]]\nbirth = \"1996-05-07\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseRoster([]byte(tt.in)); !errors.Is(err, ErrInvalidRoster) {
				t.Errorf("ParseRoster error = %v, want ErrInvalidRoster", err)
			}
		})
	}
}

func TestPersonLabel(t *testing.T) {
	t.Parallel()

	if got := (Person{Name: "Ada", Birth: "1996-05-07"}).Label(); got != "Ada" {
		t.Errorf("Label = %q, want Ada", got)
	}
	if got := (Person{Birth: "1996-05-07"}).Label(); got != "1996-05-07" {
		t.Errorf("Label = %q, want birth string", got)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	roster, err := ParseRoster([]byte(sampleRoster))
	if err != nil {
		t.Fatalf("ParseRoster: %v", err)
	}
	telemetryPath := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := telemetry.NewEmitter(telemetryPath)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	runner := NewRunner(
		chart.NewAssembler(calendar.NewService(calendar.SectSameDay)),
		WithWorkers(2),
		WithLocation(time.FixedZone("CST", 8*3600)),
		WithEmitter(em),
	)
	out, sum, err := runner.Run(context.Background(), roster)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	em.Close()

	if len(out) != 4 {
		t.Fatalf("outcomes = %d, want 4", len(out))
	}
	for i, o := range out {
		if o.Index != i || o.Person.Name != roster.People[i].Name {
			t.Errorf("outcome %d out of order: %+v", i, o.Person)
		}
	}
	if got := out[0].Result; got == nil || got.Chart.String() != "丙子 癸巳 甲辰 壬申" {
		t.Errorf("fixture chart = %v, err %v", got, out[0].Err)
	} else if got.Luck == nil || got.Annual == nil {
		t.Error("fixture missing luck timeline or annual snapshot")
	}
	if !errors.Is(out[1].Err, chart.ErrChartUnavailable) {
		t.Errorf("nonexistent day error = %v, want ErrChartUnavailable", out[1].Err)
	}
	if out[2].Err != nil {
		t.Errorf("lunar record: %v", out[2].Err)
	} else if out[2].Result.Luck != nil {
		t.Error("lunar record built a luck timeline with luck = false")
	}
	if !errors.Is(out[3].Err, calendar.ErrUnparseableMoment) {
		t.Errorf("garbage error = %v, want ErrUnparseableMoment", out[3].Err)
	}

	want := Summary{RunID: sum.RunID, Total: 4, Built: 2, Unavailable: 1, Failed: 1}
	if sum != want {
		t.Errorf("Summary = %+v, want %+v", sum, want)
	}

	wantKinds := []string{
		telemetry.KindBatchStart,
		telemetry.KindChartBuilt,
		telemetry.KindChartUnavailable,
		telemetry.KindChartBuilt,
		telemetry.KindChartFailed,
		telemetry.KindBatchDone,
	}
	if diff := cmp.Diff(wantKinds, readKinds(t, telemetryPath)); diff != "" {
		t.Errorf("telemetry kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	roster, err := ParseRoster([]byte(sampleRoster))
	if err != nil {
		t.Fatalf("ParseRoster: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := NewRunner(chart.NewAssembler(calendar.NewService(calendar.SectSameDay)))
	if _, _, err := runner.Run(ctx, roster); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func readKinds(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open telemetry: %v", err)
	}
	defer f.Close()
	var kinds []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var evt telemetry.Event
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		kinds = append(kinds, evt.Kind)
	}
	return kinds
}

func TestWatcherDetectsRosterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.toml")
	if err := os.WriteFile(path, []byte(sampleRoster), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(sampleRoster+"\n"), 0o644); err != nil {
		t.Fatalf("update roster: %v", err)
	}
	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.toml")
	if err := os.WriteFile(path, []byte(sampleRoster), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	select {
	case <-w.Changes:
		t.Error("unexpected change for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
