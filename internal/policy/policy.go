// Package policy applies size and extension restrictions to paths that have
// already been proven contained. Policy is a visibility gate for reads only:
// listings still show metadata for files a read would reject.
package policy

import (
	"encoding/base64"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/fsgate/internal/model"
)

// Policy is the immutable size/extension snapshot applied to read
// operations. An empty AllowedExtensions set means no extension
// restriction. Extensions are lowercase with a leading dot; the empty
// string is the explicit sentinel admitting files without an extension.
type Policy struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

// CheckRead decides whether the file at path may be read under this
// policy. info must describe the resolved path. Directories are never
// size-checked; the caller rejects them before reading anyway.
func (p Policy) CheckRead(path string, info fs.FileInfo) error {
	if info.Mode().IsRegular() && p.MaxFileSize > 0 && info.Size() > p.MaxFileSize {
		return model.NewError(model.KindFileTooLarge,
			"file exceeds maximum size (%d > %d bytes)", info.Size(), p.MaxFileSize)
	}
	if len(p.AllowedExtensions) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range p.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	if ext == "" {
		return model.NewError(model.KindExtensionNotAllowed,
			"files without an extension are not allowed")
	}
	return model.NewError(model.KindExtensionNotAllowed,
		"extension %q is not allowed", ext)
}

// Classify decides how content is surfaced: strict UTF-8 decodes as text,
// anything else is binary and returned base64-encoded. The input is
// already bounded by the size limit enforced before reading.
func Classify(content []byte) (model.ContentType, string) {
	if utf8.Valid(content) {
		return model.ContentText, string(content)
	}
	return model.ContentBinary, base64.StdEncoding.EncodeToString(content)
}
