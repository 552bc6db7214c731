package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/bazi/internal/batch"
	"github.com/papapumpkin/bazi/internal/config"
	"github.com/papapumpkin/bazi/internal/render"
)

var batchCmd = &cobra.Command{
	Use:   "batch <roster.toml>",
	Short: "Compute charts for every person in a TOML roster",
	Long: `Reads a roster of [[person]] tables (name, birth, gender, calendar, luck,
year) and computes every chart concurrently. Records that fail are reported
without stopping the rest. With --watch, the roster is re-evaluated each time
the file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("workers", 0, "charts computed concurrently (default 4)")
	batchCmd.Flags().BoolP("watch", "w", false, "re-run when the roster changes")
	batchCmd.Flags().Bool("save", false, "save every built chart to the history database")
	_ = viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers"))
	rootCmd.AddCommand(batchCmd)
}

// batchItem is one roster record in JSON or TOML output.
type batchItem struct {
	Name  string       `json:"name" toml:"name" yaml:"name"`
	Birth string       `json:"birth" toml:"birth" yaml:"birth"`
	Chart *render.View `json:"chart,omitempty" toml:"chart,omitempty" yaml:"chart,omitempty"`
	Error string       `json:"error,omitempty" toml:"error,omitempty" yaml:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	path := args[0]
	runner := batch.NewRunner(s.assembler(),
		batch.WithWorkers(s.cfg.Workers),
		batch.WithLocation(s.cfg.Location()),
		batch.WithEmitter(s.emitter),
	)
	save, _ := cmd.Flags().GetBool("save")

	ctx, cancel := setupSignalContext(s.printer)
	defer cancel()

	pass := func() error {
		roster, err := batch.LoadRoster(path)
		if err != nil {
			s.printer.Error(err.Error())
			return err
		}
		out, sum, err := runner.Run(ctx, roster)
		if err != nil {
			return err
		}
		if err := writeBatch(cmd.OutOrStdout(), s.cfg.Format, out, s.lang); err != nil {
			return err
		}
		s.printer.BatchResults(out, sum)
		if save {
			for _, o := range out {
				if o.Err != nil {
					continue
				}
				if err := s.save(ctx, o.Person.Name, o.Result); err != nil {
					return err
				}
			}
		}
		if sum.Failed > 0 {
			return fmt.Errorf("batch: %d record(s) failed", sum.Failed)
		}
		return nil
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return pass()
	}
	return watchRoster(ctx, s, path, pass)
}

// watchRoster runs pass once and again on every change to the roster until
// ctx is cancelled. Failed passes are reported and do not end the watch.
func watchRoster(ctx context.Context, s *session, path string, pass func() error) error {
	w, err := batch.NewWatcher(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	_ = pass()
	s.printer.Watching(w.Path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes:
			if !ok {
				return nil
			}
			s.printer.Reloading(path)
			_ = pass()
		}
	}
}

func writeBatch(w io.Writer, format string, out []batch.Outcome, lang render.Lang) error {
	if format == config.FormatText || format == "" {
		for _, o := range out {
			if o.Err != nil {
				continue
			}
			fmt.Fprintf(w, "── %s ──\n", o.Person.Label())
			if err := render.Write(w, render.FormatText, o.Result, lang); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
		return nil
	}

	items := make([]batchItem, 0, len(out))
	for _, o := range out {
		item := batchItem{Name: o.Person.Name, Birth: o.Person.Birth}
		if o.Err != nil {
			item.Error = o.Err.Error()
		} else {
			v := render.NewView(o.Result, lang)
			item.Chart = &v
		}
		items = append(items, item)
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case config.FormatJSON:
		data, err = json.MarshalIndent(items, "", "  ")
		data = append(data, '\n')
	case config.FormatTOML:
		data, err = toml.Marshal(struct {
			Results []batchItem `toml:"result"`
		}{items})
	case config.FormatYAML:
		data, err = yaml.Marshal(items)
	default:
		return fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("batch: encode: %w", err)
	}
	_, err = w.Write(data)
	return err
}
