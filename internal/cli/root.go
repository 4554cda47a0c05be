package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootConfigPath string

var rootCmd = &cobra.Command{
	Use:   "fsgate",
	Short: "Sandboxed local-file access over MCP",
	Long: "Serves list and read access to files confined to an explicit allow-list\n" +
		"of directories. Every request path is canonicalized against the real\n" +
		"filesystem before any containment or policy decision.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config YAML (default ~/.fsgate/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
