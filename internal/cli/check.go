package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Dry-run an access decision without reading anything",
	Long: "Resolves the path, checks containment against the allowed directories,\n" +
		"and applies read policy. Prints the decision as JSON.\n\n" +
		"Exit code 0 if access would be allowed, 1 otherwise.",
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, err := newGuard()
	if err != nil {
		return err
	}
	defer g.Close()

	result := g.Check(args[0])

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !result.Allowed {
		os.Exit(1)
	}
	return nil
}
