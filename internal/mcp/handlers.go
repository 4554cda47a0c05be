package mcp

import (
	"context"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/fsgate/internal/model"
)

// --- Input/Output types ---

// ListFilesInput defines parameters for the lf_list_files tool.
type ListFilesInput struct {
	DirectoryPath string `json:"directory_path,omitempty" jsonschema:"directory to list; omit to list every allowed directory"`
}

// ListFilesOutput contains the listing or a structured error.
type ListFilesOutput struct {
	AllowedDirectories []string           `json:"allowed_directories,omitempty"`
	Directories        []model.DirListing `json:"directories,omitempty"`
	TotalDirectories   int                `json:"total_directories,omitempty"`
	ErrorKind          string             `json:"error_kind,omitempty"`
	Error              string             `json:"error,omitempty"`
}

// ReadFileInput defines parameters for the lf_read_file tool.
type ReadFileInput struct {
	FilePath string `json:"file_path" jsonschema:"absolute path of the file to read"`
}

// ReadFileOutput contains the file content or a structured error.
type ReadFileOutput struct {
	FilePath    string `json:"file_path,omitempty"`
	Name        string `json:"name,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Modified    string `json:"modified,omitempty"`
	Extension   string `json:"extension,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Content     string `json:"content,omitempty"`
	ErrorKind   string `json:"error_kind,omitempty"`
	Error       string `json:"error,omitempty"`
}

// GetConfigInput is empty — no parameters needed.
type GetConfigInput struct{}

// GetConfigOutput reports the active configuration snapshot.
type GetConfigOutput struct {
	AllowedDirectories []string `json:"allowed_directories"`
	MaxFileSize        int64    `json:"max_file_size"`
	AllowedExtensions  []string `json:"allowed_extensions"`
	Status             string   `json:"status"`
}

// --- Handlers ---

func (s *Server) handleListFiles(ctx context.Context, req *mcpsdk.CallToolRequest, input ListFilesInput) (*mcpsdk.CallToolResult, ListFilesOutput, error) {
	result, err := s.guard.List(ctx, input.DirectoryPath)
	if err != nil {
		kind, msg := errorParts(err)
		out := ListFilesOutput{ErrorKind: kind, Error: msg}
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	return nil, ListFilesOutput{
		AllowedDirectories: result.AllowedDirectories,
		Directories:        result.Directories,
		TotalDirectories:   result.TotalDirectories,
	}, nil
}

func (s *Server) handleReadFile(ctx context.Context, req *mcpsdk.CallToolRequest, input ReadFileInput) (*mcpsdk.CallToolResult, ReadFileOutput, error) {
	result, err := s.guard.Read(ctx, input.FilePath)
	if err != nil {
		kind, msg := errorParts(err)
		out := ReadFileOutput{ErrorKind: kind, Error: msg}
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	return nil, ReadFileOutput{
		FilePath:    result.FilePath,
		Name:        result.Name,
		Size:        result.Size,
		Modified:    result.Modified,
		Extension:   result.Extension,
		ContentType: string(result.ContentType),
		Content:     result.Content,
	}, nil
}

func (s *Server) handleGetConfig(ctx context.Context, req *mcpsdk.CallToolRequest, input GetConfigInput) (*mcpsdk.CallToolResult, GetConfigOutput, error) {
	snap := s.guard.Snapshot()
	return nil, GetConfigOutput{
		AllowedDirectories: snap.AllowedDirectories,
		MaxFileSize:        snap.MaxFileSize,
		AllowedExtensions:  snap.AllowedExtensions,
		Status:             snap.Status,
	}, nil
}

// errorParts splits an operation error into its structured components.
// Anything outside the taxonomy is surfaced as io_error.
func errorParts(err error) (kind, msg string) {
	var me *model.Error
	if errors.As(err, &me) {
		return string(me.Kind), me.Message
	}
	return string(model.KindIOError), err.Error()
}
