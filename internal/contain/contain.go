// Package contain decides whether a canonicalized path lies inside one of
// the configured allowed roots. It operates only on post-resolution paths;
// raw request strings must never reach it.
package contain

import (
	"path/filepath"
	"strings"

	"github.com/ppiankov/fsgate/internal/model"
)

// Root is an absolute, canonicalized allowed directory. Roots are
// established once at startup and are immutable for the process lifetime.
type Root string

// String returns the root as a plain path string.
func (r Root) String() string { return string(r) }

// Rel returns path relative to the root. path must already be contained.
func (r Root) Rel(path string) string {
	rel, err := filepath.Rel(string(r), path)
	if err != nil {
		return path
	}
	return rel
}

// Contain reports which root the resolved path falls under.
//
// A path is contained when it equals a root or begins with root plus the
// path separator. Bare string-prefix matching is not containment: it would
// accept /home/user2 against root /home/user. When roots nest, the most
// specific (longest) match wins; ties go to the earlier configured root.
func Contain(resolved string, roots []Root) (Root, error) {
	var best Root
	found := false
	for _, root := range roots {
		if !under(resolved, root) {
			continue
		}
		if !found || len(root) > len(best) {
			best = root
			found = true
		}
	}
	if !found {
		// No path detail here: the caller rewraps with the original
		// request string so resolved locations are never disclosed.
		return "", model.NewError(model.KindNotAllowed, "access denied")
	}
	return best, nil
}

func under(resolved string, root Root) bool {
	r := string(root)
	if resolved == r {
		return true
	}
	// Root "/" already ends in the separator.
	if !strings.HasSuffix(r, string(filepath.Separator)) {
		r += string(filepath.Separator)
	}
	return strings.HasPrefix(resolved, r)
}
