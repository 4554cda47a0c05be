package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	fsmcp "github.com/ppiankov/fsgate/internal/mcp"
)

var mcpLogLevel string

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpLogLevel, "log-level", "info", "Log level (debug|info|warn|error)")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP file server on stdio",
	Long: "Runs fsgate as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes the sandboxed tools: lf_list_files, lf_read_file, lf_get_config.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := fsmcp.New(fsmcp.Config{
		ConfigPath: rootConfigPath,
		LogLevel:   mcpLogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	return srv.Run(ctx)
}
