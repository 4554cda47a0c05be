package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/fsgate/internal/audit"
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Access log operations",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify <log-file>",
	Short: "Verify the hash chain of an access log",
	Long: "Walks the JSONL access log and validates each entry's prev_hash\n" +
		"against the previous line. Exit code 0 if the chain is intact.",
	Args: cobra.ExactArgs(1),
	RunE: runAuditVerify,
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	result := audit.Verify(args[0])

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
