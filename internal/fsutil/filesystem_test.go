package fsutil

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystemRoundTrip(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := m.WriteFile("a/b/c.txt", []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := m.ReadFile("a/b/c.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("read back %q", got)
	}
	if !m.Exists("a/b/c.txt") {
		t.Error("written file does not exist")
	}
}

func TestMemoryFileSystemMissingFile(t *testing.T) {
	m := NewMemoryFileSystem()
	_, err := m.ReadFile("nope.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
	if m.Exists("nope.txt") {
		t.Error("missing file reported as existing")
	}
}

func TestMemoryFileSystemIsolatesBuffers(t *testing.T) {
	m := NewMemoryFileSystem()
	data := []byte("original")
	if err := m.WriteFile("f", data, 0644); err != nil {
		t.Fatal(err)
	}
	data[0] = 'X' // caller mutates its buffer after the write

	got, err := m.ReadFile("f")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("original")) {
		t.Errorf("stored data aliased caller's buffer: %q", got)
	}
	got[0] = 'Y' // reader mutates the returned buffer
	again, _ := m.ReadFile("f")
	if !bytes.Equal(again, []byte("original")) {
		t.Errorf("returned data aliased stored buffer: %q", again)
	}
}

func TestMemoryFileSystemMkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := m.MkdirAll("x/y/z", 0755); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{"x", "x/y", "x/y/z"} {
		if !m.Exists(dir) {
			t.Errorf("%s does not exist", dir)
		}
	}
	// Idempotent.
	if err := m.MkdirAll("x/y/z", 0755); err != nil {
		t.Errorf("second MkdirAll: %v", err)
	}
}

func TestOSFileSystem(t *testing.T) {
	var osfs OSFileSystem
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "file.txt")

	if err := osfs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := osfs.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := osfs.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "data" {
		t.Errorf("read back %q", got)
	}
	if !osfs.Exists(path) {
		t.Error("written file does not exist")
	}
	if osfs.Exists(filepath.Join(dir, "missing")) {
		t.Error("missing file reported as existing")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not on disk: %v", err)
	}
}
