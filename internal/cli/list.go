package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [directory]",
	Short: "List files in an allowed directory (all of them if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	g, err := newGuard()
	if err != nil {
		return err
	}
	defer g.Close()

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}

	result, err := g.List(cmd.Context(), dir)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
