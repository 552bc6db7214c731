package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/papapumpkin/bazi/internal/archive"
	"github.com/papapumpkin/bazi/internal/calendar"
	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/config"
	"github.com/papapumpkin/bazi/internal/render"
	"github.com/papapumpkin/bazi/internal/telemetry"
	"github.com/papapumpkin/bazi/internal/ui"
)

// session bundles what every chart-producing command needs.
type session struct {
	cfg     config.Config
	lang    render.Lang
	printer *ui.Printer
	emitter *telemetry.Emitter
}

func newSession() (*session, error) {
	printer := ui.New()
	cfg, err := config.Load()
	if err != nil {
		printer.Error(err.Error())
		return nil, err
	}
	lang, err := render.ParseLang(cfg.Lang)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, lang: lang, printer: printer}
	if cfg.TelemetryPath != "" {
		em, err := telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			return nil, err
		}
		s.emitter = em
	}
	if cfg.Verbose {
		printer.Info(fmt.Sprintf("sect %d, horizon %d, zone %s, format %s", cfg.Sect, cfg.HorizonAge, cfg.Timezone, cfg.Format))
	}
	return s, nil
}

func (s *session) assembler() *chart.Assembler {
	return chart.NewAssembler(calendar.NewService(s.cfg.Sect), chart.WithHorizonAge(s.cfg.HorizonAge))
}

func (s *session) openArchive(ctx context.Context) (*archive.Store, error) {
	store, err := archive.Open(ctx, s.cfg.ArchivePath)
	if err != nil {
		s.printer.Error(err.Error())
		return nil, err
	}
	return store, nil
}

// save stores res in the history database and reports it.
func (s *session) save(ctx context.Context, name string, res *chart.Result) error {
	payload, err := render.JSON(res, s.lang)
	if err != nil {
		return err
	}
	store, err := s.openArchive(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Save(ctx, archive.Entry{
		Name:    name,
		Moment:  res.Moment,
		Gender:  res.Gender,
		Pillars: res.Chart.String(),
		Payload: payload,
	})
	if err != nil {
		s.printer.Error(err.Error())
		return err
	}
	_ = s.emitter.Record(telemetry.KindArchiveSaved, "", res.Moment.String(), map[string]string{"id": rec.ID})
	s.printer.Saved(rec)
	return nil
}

func (s *session) Close() {
	_ = s.emitter.Close()
}

// birthArg joins positional arguments so that "1996-05-07 15:00" may be
// passed quoted or as two words.
func birthArg(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
