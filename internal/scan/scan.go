// Package scan enumerates allowed directories into file metadata records.
// Every candidate entry is independently re-resolved and containment-checked
// before inclusion, so a symlink planted inside an allowed root cannot leak
// entries from outside it.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ppiankov/fsgate/internal/contain"
	"github.com/ppiankov/fsgate/internal/model"
	"github.com/ppiankov/fsgate/internal/resolve"
)

// Enumerate walks dir recursively and returns a listing of every contained
// regular file beneath it. dir must already be resolved and contained; root
// is the allowed root it was attributed to, used for relative paths.
//
// Listing is a visibility operation, not a read: oversized or
// extension-blocked files appear here with full metadata and are only
// rejected by the read path. The walk order is the lexical order of
// filepath.WalkDir, which is deterministic for an unchanged tree.
func Enumerate(ctx context.Context, dir string, root contain.Root, roots []contain.Root) model.DirListing {
	listing := model.DirListing{Directory: dir}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			listing.Error = "directory does not exist"
		} else {
			listing.Error = "cannot access directory"
		}
		return listing
	}
	if !info.IsDir() {
		listing.Error = "path is not a directory"
		return listing
	}

	files := []model.FileMetadata{}
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable subtree: skip it, keep the rest of the walk.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		meta, ok := describe(path, dir, roots)
		if ok {
			files = append(files, meta)
		}
		return nil
	})
	if walkErr != nil {
		listing.Error = "enumeration interrupted: " + walkErr.Error()
		return listing
	}

	listing.Files = files
	listing.TotalFiles = len(files)
	return listing
}

// describe resolves one walk entry and builds its metadata record.
// Entries that resolve outside every root, vanish mid-walk, or are not
// regular files are excluded.
func describe(path, base string, roots []contain.Root) (model.FileMetadata, bool) {
	resolved, err := resolve.Resolve(path, "")
	if err != nil {
		return model.FileMetadata{}, false
	}
	if _, err := contain.Contain(resolved, roots); err != nil {
		return model.FileMetadata{}, false
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return model.FileMetadata{}, false
	}

	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = path
	}
	return model.FileMetadata{
		Name:         filepath.Base(path),
		Path:         path,
		RelativePath: rel,
		Size:         info.Size(),
		Modified:     model.FormatTimestamp(info.ModTime()),
		Extension:    filepath.Ext(path),
	}, true
}
