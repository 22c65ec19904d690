package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "squares.json")

	if err := WriteFileAtomic(target, []byte(`{"locked":false}`), 0o600); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != `{"locked":false}` {
		t.Errorf("File content mismatch: got %q", string(data))
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0o600)
	}

	assertOnlyFiles(t, tmpDir, "squares.json")
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "props.json")
	if err := WriteFileAtomic(target, []byte("initial"), 0o644); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}
	if err := WriteFileAtomic(target, []byte("updated"), 0o644); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "updated" {
		t.Errorf("File content mismatch: got %q, want %q", string(data), "updated")
	}
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	if err := WriteFileAtomic("/nonexistent/dir/squares.json", []byte("data"), 0o644); err == nil {
		t.Error("Expected error when writing to non-existent directory")
	}
}

func TestBatchCommitWritesAllFiles(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	var b Batch
	if err := b.Add(filepath.Join(tmpDir, "props.json"), []byte("p"), 0o644); err != nil {
		t.Fatalf("Add props failed: %v", err)
	}
	if err := b.Add(filepath.Join(tmpDir, "squares.json"), []byte("s"), 0o644); err != nil {
		t.Fatalf("Add squares failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "props.json")); !os.IsNotExist(err) {
		t.Fatalf("staged file visible before commit: %v", err)
	}

	if err := b.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	assertOnlyFiles(t, tmpDir, "props.json", "squares.json")
}

func TestBatchAddFailureDiscardsStagedFiles(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	var b Batch
	if err := b.Add(filepath.Join(tmpDir, "props.json"), []byte("p"), 0o644); err != nil {
		t.Fatalf("Add props failed: %v", err)
	}
	if err := b.Add("/nonexistent/dir/squares.json", []byte("s"), 0o644); err == nil {
		t.Fatal("Expected error staging into a missing directory")
	}
	assertOnlyFiles(t, tmpDir)

	if err := b.Commit(); err != nil {
		t.Fatalf("Commit of an aborted batch should be a no-op: %v", err)
	}
	assertOnlyFiles(t, tmpDir)
}

func TestReadFileIfExists(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	_, ok, err := ReadFileIfExists(filepath.Join(tmpDir, "missing.json"))
	if err != nil || ok {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}

	target := filepath.Join(tmpDir, "present.json")
	if err := WriteFileAtomic(target, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	data, ok, err := ReadFileIfExists(target)
	if err != nil || !ok || string(data) != "{}" {
		t.Fatalf("present file: data=%q ok=%v err=%v", data, ok, err)
	}
}

func assertOnlyFiles(t *testing.T, dir string, want ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != len(want) {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory holds %v, want %v", names, want)
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("Unexpected file in directory: %s", e.Name())
		}
	}
}
