package policy

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/fsgate/internal/model"
)

func statFile(t *testing.T, size int, name string) (string, os.FileInfo) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0600); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return path, info
}

func kindOf(t *testing.T, err error) model.ErrorKind {
	t.Helper()
	var me *model.Error
	if !errors.As(err, &me) {
		t.Fatalf("expected *model.Error, got %T (%v)", err, err)
	}
	return me.Kind
}

func TestCheckReadSizeLimit(t *testing.T) {
	pol := Policy{MaxFileSize: 1000}

	path, info := statFile(t, 5000, "big.bin")
	err := pol.CheckRead(path, info)
	if err == nil {
		t.Fatal("expected file_too_large")
	}
	if k := kindOf(t, err); k != model.KindFileTooLarge {
		t.Errorf("expected file_too_large, got %s", k)
	}

	path, info = statFile(t, 500, "small.bin")
	if err := pol.CheckRead(path, info); err != nil {
		t.Errorf("file at half the limit must pass, got %v", err)
	}
}

func TestCheckReadSizeExactLimit(t *testing.T) {
	pol := Policy{MaxFileSize: 1000}
	path, info := statFile(t, 1000, "exact.bin")
	if err := pol.CheckRead(path, info); err != nil {
		t.Errorf("file exactly at the limit must pass, got %v", err)
	}
}

func TestCheckReadExtensionAllowList(t *testing.T) {
	pol := Policy{MaxFileSize: 1 << 20, AllowedExtensions: []string{".txt", ".md"}}

	path, info := statFile(t, 10, "notes.txt")
	if err := pol.CheckRead(path, info); err != nil {
		t.Errorf(".txt must pass, got %v", err)
	}

	path, info = statFile(t, 10, "prog.exe")
	if k := kindOf(t, pol.CheckRead(path, info)); k != model.KindExtensionNotAllowed {
		t.Errorf("expected extension_not_allowed, got %s", k)
	}
}

func TestCheckReadExtensionCaseInsensitive(t *testing.T) {
	pol := Policy{AllowedExtensions: []string{".txt"}}
	path, info := statFile(t, 10, "NOTES.TXT")
	if err := pol.CheckRead(path, info); err != nil {
		t.Errorf("extension match must be case-insensitive, got %v", err)
	}
}

func TestCheckReadNoExtension(t *testing.T) {
	pol := Policy{AllowedExtensions: []string{".txt"}}
	path, info := statFile(t, 10, "README")
	if k := kindOf(t, pol.CheckRead(path, info)); k != model.KindExtensionNotAllowed {
		t.Errorf("no-extension file must be rejected by non-empty allow-list, got %s", k)
	}

	// The empty-string sentinel explicitly admits extensionless files.
	pol = Policy{AllowedExtensions: []string{".txt", ""}}
	if err := pol.CheckRead(path, info); err != nil {
		t.Errorf("sentinel must admit extensionless file, got %v", err)
	}
}

func TestCheckReadEmptyAllowListUnrestricted(t *testing.T) {
	pol := Policy{MaxFileSize: 1 << 20}
	path, info := statFile(t, 10, "anything.xyz")
	if err := pol.CheckRead(path, info); err != nil {
		t.Errorf("empty allow-list must not restrict extensions, got %v", err)
	}
}

func TestClassifyText(t *testing.T) {
	ct, content := Classify([]byte("hello, world\nsecond line\n"))
	if ct != model.ContentText {
		t.Errorf("expected text, got %s", ct)
	}
	if content != "hello, world\nsecond line\n" {
		t.Errorf("text content must round-trip exactly, got %q", content)
	}
}

func TestClassifyUnicodeText(t *testing.T) {
	in := "päivä 🐦 终わり"
	ct, content := Classify([]byte(in))
	if ct != model.ContentText {
		t.Errorf("expected text for valid UTF-8, got %s", ct)
	}
	if content != in {
		t.Errorf("expected %q, got %q", in, content)
	}
}

func TestClassifyBinary(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0xff, 0xfe}
	ct, content := Classify(raw)
	if ct != model.ContentBinary {
		t.Errorf("expected binary, got %s", ct)
	}
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		t.Fatalf("binary content must be valid base64: %v", err)
	}
	if string(decoded) != string(raw) {
		t.Error("base64 content must decode back to the original bytes")
	}
}
