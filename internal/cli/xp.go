package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/hunter-protocol/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "xp <amount>",
		Short: "Award XP outside of a quest",
		Args:  cobra.ExactArgs(1),
		Run:   runXP,
	}

	cmd.Flags().String("reason", "", "Note stored in the journal")

	RootCmd.AddCommand(cmd)
}

func runXP(cmd *cobra.Command, args []string) {
	reason, _ := cmd.Flags().GetString("reason")

	amount, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		exitErr("xp", fmt.Errorf("amount %q: %w", args[0], model.ErrInvalidArgument))
	}

	s, err := openSession()
	if err != nil {
		exitErr("load", err)
	}
	defer s.close()

	h := s.state.Hunter
	from := h.Rank
	rankedUp, err := s.tracker.AddXP(h, uint32(amount))
	if err != nil {
		s.close()
		exitErr("xp", err)
	}

	s.recordXP(cmd.Context(), 0, uint32(amount), from, reason)
	s.save()

	printJSON(cmd, map[string]any{
		"hunter":    viewHunter(h),
		"ranked_up": rankedUp,
	})
}
