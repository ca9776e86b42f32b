package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/hunter-protocol/internal/catalog"
)

func init() {
	add := &cobra.Command{
		Use:   "add",
		Short: "Add quests from a YAML catalog file",
		Run:   runQuestAdd,
	}
	add.Flags().String("file", "", "Catalog file (required)")
	add.MarkFlagRequired("file")
	questCmd.AddCommand(add)

	export := &cobra.Command{
		Use:   "export",
		Short: "Print the quest list as a YAML catalog",
		Run:   runQuestExport,
	}
	questCmd.AddCommand(export)
}

func runQuestAdd(cmd *cobra.Command, args []string) {
	path, _ := cmd.Flags().GetString("file")

	quests, err := catalog.LoadFile(path)
	if err != nil {
		exitErr("quest add", err)
	}

	s, err := openSession()
	if err != nil {
		exitErr("load", err)
	}
	defer s.close()

	// Nothing is saved unless every quest fits.
	n, err := catalog.Seed(s.state.Quests, quests)
	if err != nil {
		s.close()
		exitErr("quest add", err)
	}
	s.save()

	printJSON(cmd, map[string]any{"added": n, "total": s.state.Quests.Len()})
}

func runQuestExport(cmd *cobra.Command, args []string) {
	s, err := openSession()
	if err != nil {
		exitErr("load", err)
	}
	defer s.close()
	s.flush()

	if err := catalog.Write(cmd.OutOrStdout(), s.state.Quests.All()); err != nil {
		s.close()
		exitErr("quest export", err)
	}
}
