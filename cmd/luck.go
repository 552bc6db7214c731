package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/bazi/internal/chart"
	"github.com/papapumpkin/bazi/internal/render"
)

var luckCmd = &cobra.Command{
	Use:   "luck <birth>",
	Short: "List the ten-year luck pillars of a birth moment",
	Long: `Lists the luck pillars from the onset age up to the horizon age. With
--age or --at, prints only the pillar covering that age or Gregorian year.`,
	Example: `  bazi luck "1996-05-07 15:00" -g male
  bazi luck "1996-05-07 15:00" -g male --at 2026`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLuck,
}

func init() {
	addBirthFlags(luckCmd)
	luckCmd.Flags().Int("age", -1, "show only the pillar covering this age")
	luckCmd.Flags().Int("at", 0, "show only the pillar covering this Gregorian year")
	luckCmd.MarkFlagsMutuallyExclusive("age", "at")
	rootCmd.AddCommand(luckCmd)
}

func runLuck(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	req, err := requestFromFlags(cmd, s, args)
	if err != nil {
		return err
	}
	req.Luck = true

	ctx, cancel := setupSignalContext(s.printer)
	defer cancel()

	res, err := s.build(ctx, req)
	if err != nil {
		return err
	}

	age, _ := cmd.Flags().GetInt("age")
	year, _ := cmd.Flags().GetInt("at")
	var (
		lp    chart.LuckPillar
		found bool
		what  string
	)
	switch {
	case age >= 0:
		lp, found = res.Luck.At(age)
		what = fmt.Sprintf("age %d", age)
	case year != 0:
		lp, found = res.Luck.ForYear(year)
		what = fmt.Sprintf("year %d", year)
	default:
		return render.WriteLuck(cmd.OutOrStdout(), s.cfg.Format, res, s.lang)
	}
	if !found {
		return fmt.Errorf("no luck pillar covers %s", what)
	}
	single := *res
	single.Luck = &chart.Timeline{Direction: res.Luck.Direction, Pillars: []chart.LuckPillar{lp}}
	return render.WriteLuck(cmd.OutOrStdout(), s.cfg.Format, &single, s.lang)
}
