package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/fsgate/internal/contain"
	"github.com/ppiankov/fsgate/internal/model"
)

// canon resolves tempdir paths the same way Resolve does, so comparisons
// work on platforms where the temp root is itself a symlink.
func canon(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("canon %s: %v", path, err)
	}
	return resolved
}

func TestResolveRelativeWithoutBase(t *testing.T) {
	_, err := Resolve("notes/today.txt", "")
	if err == nil {
		t.Fatal("expected invalid_path for relative input without base")
	}
	var me *model.Error
	if !errors.As(err, &me) || me.Kind != model.KindInvalidPath {
		t.Errorf("expected invalid_path, got %v", err)
	}
}

func TestResolveEmptyPath(t *testing.T) {
	_, err := Resolve("", "")
	var me *model.Error
	if !errors.As(err, &me) || me.Kind != model.KindInvalidPath {
		t.Errorf("expected invalid_path for empty input, got %v", err)
	}
}

func TestResolveNonexistent(t *testing.T) {
	dir := t.TempDir()
	_, err := Resolve(filepath.Join(dir, "missing.txt"), "")
	var me *model.Error
	if !errors.As(err, &me) || me.Kind != model.KindNotFound {
		t.Errorf("expected not_found, got %v", err)
	}
}

func TestResolveNormalizesDotSegments(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(filepath.Join(dir, "sub", "..", ".", "a.txt"), "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if want := canon(t, filepath.Join(dir, "a.txt")); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolveDereferencesSymlinks(t *testing.T) {
	outside := t.TempDir()
	inside := t.TempDir()

	target := filepath.Join(outside, "secret.txt")
	if err := os.WriteFile(target, []byte("s"), 0600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(inside, "innocent.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(link, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if want := canon(t, target); got != want {
		t.Errorf("symlink must resolve to real target: expected %s, got %s", want, got)
	}
}

func TestResolveRelativeWithBase(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	base := contain.Root(canon(t, dir))

	got, err := Resolve("file.txt", base)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if want := filepath.Join(string(base), "file.txt"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolveRelativeEscapeStaysInBase(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "top.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	base := contain.Root(canon(t, dir))

	// SecureJoin scopes .. to the base root, so the join cannot climb
	// above it; the resolved result stays inside base.
	got, err := Resolve("../../top.txt", base)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if want := filepath.Join(string(base), "top.txt"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestLexical(t *testing.T) {
	if got := Lexical("/data/../etc/passwd", ""); got != "/etc/passwd" {
		t.Errorf("expected /etc/passwd, got %s", got)
	}
	if got := Lexical("sub/./x.txt", contain.Root("/data")); got != "/data/sub/x.txt" {
		t.Errorf("expected /data/sub/x.txt, got %s", got)
	}
}
