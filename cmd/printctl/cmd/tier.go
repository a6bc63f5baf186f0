package cmd

import (
	"fmt"
	"io"
	"strconv"

	"printit-bot/internal/rewards"

	"github.com/spf13/cobra"
)

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <points>",
		Short: "Show the reward tier for a points balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid points %q", args[0])
			}
			printTier(cmd.OutOrStdout(), points)
			return nil
		},
	}
}

func printTier(w io.Writer, points float64) {
	s := rewards.TierFor(points)
	p := rewards.ProgressFor(points)

	fmt.Fprintf(w, "Tier:      %s\n", s.Tier)
	if s.NextAt != nil {
		fmt.Fprintf(w, "Next:      %s at %v\n", s.Next, *s.NextAt)
	} else {
		fmt.Fprintln(w, "Next:      none")
	}
	fmt.Fprintf(w, "Progress:  %d%% (%s)\n", p.Percent, p.Detail())
}
