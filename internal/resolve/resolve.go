// Package resolve canonicalizes user-supplied path strings against the real
// filesystem. All symlinks and dot segments are dereferenced before any
// containment or policy decision is made; lexical cleanup alone is never
// trusted because a symlink can point outside every allowed root while the
// literal string looks contained.
package resolve

import (
	"errors"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/ppiankov/fsgate/internal/contain"
	"github.com/ppiankov/fsgate/internal/model"
)

// Resolve canonicalizes raw to an absolute, symlink-free path.
//
// A relative raw with no base fails with invalid_path: the system never
// guesses intent for relative inputs at the top level. A relative raw with
// a base is joined inside the base root with symlink-scoped semantics
// before canonicalization. A path with no filesystem entry at the final
// location fails with not_found. Read-only; no side effects.
func Resolve(raw string, base contain.Root) (string, error) {
	if raw == "" {
		return "", model.NewError(model.KindInvalidPath, "empty path")
	}

	path := raw
	if !filepath.IsAbs(path) {
		if base == "" {
			return "", model.NewError(model.KindInvalidPath,
				"relative path %q requires a base directory", raw)
		}
		joined, err := securejoin.SecureJoin(base.String(), path)
		if err != nil {
			return "", model.NewError(model.KindInvalidPath,
				"cannot join %q against base directory", raw)
		}
		path = joined
	}

	resolved, err := filepath.EvalSymlinks(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", model.NewError(model.KindNotFound, "no such file or directory: %q", raw)
		}
		return "", model.NewError(model.KindIOError, "resolving %q: %v", raw, err)
	}
	return resolved, nil
}

// Lexical returns the cleaned absolute form of raw without touching the
// filesystem. It exists for one purpose: when resolution fails with
// not_found, the caller checks the lexical form against the allowed roots
// and masks the failure as not_allowed if it falls outside them, so that
// probing paths outside the sandbox never reveals what exists there.
func Lexical(raw string, base contain.Root) string {
	path := raw
	if !filepath.IsAbs(path) && base != "" {
		path = filepath.Join(base.String(), path)
	}
	return filepath.Clean(path)
}
