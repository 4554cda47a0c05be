package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/fsgate/internal/model"
)

var readRaw bool

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readRaw, "raw", false, "Print content only, without the metadata envelope")
}

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Read a file inside the allowed directories",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func runRead(cmd *cobra.Command, args []string) error {
	g, err := newGuard()
	if err != nil {
		return err
	}
	defer g.Close()

	result, err := g.Read(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if readRaw {
		if result.ContentType == model.ContentText {
			fmt.Print(result.Content)
		} else {
			// base64 for binary; decoding is the caller's business
			fmt.Println(result.Content)
		}
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
