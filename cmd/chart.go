package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/bazi/internal/calendar"
	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/render"
	"github.com/papapumpkin/bazi/internal/telemetry"
)

var chartCmd = &cobra.Command{
	Use:   "chart <birth>",
	Short: "Compute the four pillars chart of a birth moment",
	Long: `Computes and annotates the four pillars of a birth moment.

The birth moment is written "YYYY-MM-DD HH:MM" in the configured time zone, or
as any timestamp with an explicit zone. Lunar dates mark an intercalary month
with 闰 or L, e.g. "2023-闰02-15 10:30".`,
	Example: `  bazi chart "1996-05-07 15:00" --gender male --luck
  bazi chart 2023-L2-15 10:30 -g f --calendar lunar --year 2026 -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChart,
}

func init() {
	addBirthFlags(chartCmd)
	chartCmd.Flags().BoolP("luck", "l", false, "include the luck-pillar timeline")
	chartCmd.Flags().IntP("year", "y", 0, "include an annual snapshot for this Gregorian year")
	chartCmd.Flags().String("name", "", "name stored with --save")
	chartCmd.Flags().Bool("save", false, "save the chart to the history database")
	rootCmd.AddCommand(chartCmd)
}

func addBirthFlags(c *cobra.Command) {
	c.Flags().StringP("gender", "g", "", "gender: male or female (required)")
	c.Flags().String("calendar", "solar", "calendar of the birth date: solar or lunar")
	_ = c.MarkFlagRequired("gender")
}

// requestFromFlags parses the birth moment and the flags shared by chart and
// luck.
func requestFromFlags(cmd *cobra.Command, s *session, args []string) (chart.Request, error) {
	genderFlag, _ := cmd.Flags().GetString("gender")
	gender, err := chart.ParseGender(genderFlag)
	if err != nil {
		return chart.Request{}, err
	}
	calFlag, _ := cmd.Flags().GetString("calendar")
	kind, err := chart.ParseCalendarKind(calFlag)
	if err != nil {
		return chart.Request{}, err
	}
	m, err := calendar.ParseMoment(birthArg(args), kind, s.cfg.Location())
	if err != nil {
		return chart.Request{}, err
	}
	return chart.Request{Moment: m, Gender: gender}, nil
}

// build assembles req and records the outcome.
func (s *session) build(ctx context.Context, req chart.Request) (*chart.Result, error) {
	res, err := s.assembler().Build(ctx, req)
	if err != nil {
		kind := telemetry.KindChartFailed
		if errors.Is(err, chart.ErrChartUnavailable) {
			kind = telemetry.KindChartUnavailable
		}
		_ = s.emitter.Record(kind, "", req.Moment.String(), map[string]string{"error": err.Error()})
		s.printer.BuildError(req.Moment.String(), err)
		return nil, err
	}
	_ = s.emitter.Record(telemetry.KindChartBuilt, "", req.Moment.String(), map[string]string{"pillars": res.Chart.String()})
	return res, nil
}

func runChart(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	req, err := requestFromFlags(cmd, s, args)
	if err != nil {
		return err
	}
	req.Luck, _ = cmd.Flags().GetBool("luck")
	req.ReferenceYear, _ = cmd.Flags().GetInt("year")

	ctx, cancel := setupSignalContext(s.printer)
	defer cancel()

	res, err := s.build(ctx, req)
	if err != nil {
		return err
	}
	if err := render.Write(cmd.OutOrStdout(), s.cfg.Format, res, s.lang); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		name, _ := cmd.Flags().GetString("name")
		return s.save(ctx, name, res)
	}
	return nil
}
