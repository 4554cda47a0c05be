// Package mcp exposes the sandbox operations as Model Context Protocol
// tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/fsgate/internal/config"
	"github.com/ppiankov/fsgate/internal/guard"
)

// Config holds MCP server configuration.
type Config struct {
	ConfigPath string
	LogLevel   string
}

// Server wraps the MCP SDK server around a Guard.
type Server struct {
	mcpServer *mcpsdk.Server
	guard     *guard.Guard
	log       *logrus.Logger
}

// New loads configuration, builds the guard, and registers the tools.
func New(cfg Config) (*Server, error) {
	log := logrus.New()
	// stdout carries the MCP wire; everything else goes to stderr.
	log.SetOutput(os.Stderr)
	if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		log.SetLevel(level)
	}

	fileCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	g, err := guard.New(fileCfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create guard: %w", err)
	}

	s := &Server{
		guard: g,
		log:   log,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "fsgate",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	snap := s.guard.Snapshot()
	s.log.WithFields(logrus.Fields{
		"allowed_directories": len(snap.AllowedDirectories),
		"max_file_size":       snap.MaxFileSize,
		"status":              snap.Status,
	}).Info("fsgate MCP server starting")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases the guard's resources.
func (s *Server) Close() error {
	return s.guard.Close()
}

// registerTools adds the file sandbox tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "lf_list_files",
		Description: "List files in a specific allowed directory, or in all allowed directories when no path is given.",
	}, s.handleListFiles)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "lf_read_file",
		Description: "Read the contents of a file inside the allowed directories. Text files return decoded content; binary files return base64.",
	}, s.handleReadFile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "lf_get_config",
		Description: "Report the active sandbox configuration: allowed directories, size limit, and extension allow-list.",
	}, s.handleGetConfig)
}
