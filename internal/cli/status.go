package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the hunter",
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	s, err := openSession()
	if err != nil {
		exitErr("load", err)
	}
	defer s.close()
	s.flush()

	printJSON(cmd, map[string]any{
		"hunter": viewHunter(s.state.Hunter),
		"quests": summarize(s.state),
		"new":    s.fresh,
	})
}
