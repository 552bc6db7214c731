package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/bazi/internal/ganzhi"
	"github.com/papapumpkin/bazi/internal/render"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle [pillar]",
	Short: "Show the sixty-pillar cycle, or look up one pillar",
	Long: `Without arguments, lists all sixty pillars with their na-yin and void
branches. With a pillar such as 甲子, prints its position in the cycle. With
--year, prints the pillar of a Gregorian year.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCycle,
}

func init() {
	cycleCmd.Flags().Int("year", 0, "print the pillar of this Gregorian year")
	rootCmd.AddCommand(cycleCmd)
}

func runCycle(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()
	out := cmd.OutOrStdout()

	year, _ := cmd.Flags().GetInt("year")
	switch {
	case year != 0:
		p := ganzhi.YearPillar(year)
		fmt.Fprintf(out, "%d %s %s\n", year, p, p.Branch.Zodiac())
	case len(args) == 1:
		p, err := ganzhi.ParsePillar(args[0])
		if err != nil {
			return err
		}
		ny := p.NaYin()
		void := p.Void()
		fmt.Fprintf(out, "%s #%d %s%s %s%s next %s prev %s\n",
			p, p.Index()+1, ny.Name, ny.Element, void[0], void[1], p.Next(), p.Prev())
	default:
		fmt.Fprintln(out, render.Cycle(s.lang))
	}
	return nil
}
