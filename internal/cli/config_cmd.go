package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var configJSON bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Print the snapshot as JSON")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active sandbox configuration",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	g, err := newGuard()
	if err != nil {
		return err
	}
	defer g.Close()

	snap := g.Snapshot()

	if configJSON {
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Status:         %s\n", snap.Status)
	fmt.Printf("Max file size:  %s (%d bytes)\n", humanize.IBytes(uint64(snap.MaxFileSize)), snap.MaxFileSize)
	if len(snap.AllowedExtensions) == 0 {
		fmt.Println("Extensions:     (unrestricted)")
	} else {
		fmt.Printf("Extensions:     %v\n", snap.AllowedExtensions)
	}
	if len(snap.AllowedDirectories) == 0 {
		fmt.Println("Directories:    none configured")
	} else {
		fmt.Println("Directories:")
		for _, d := range snap.AllowedDirectories {
			fmt.Printf("  %s\n", d)
		}
	}
	return nil
}
