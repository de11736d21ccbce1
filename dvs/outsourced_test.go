package dvs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutsourcedPathFound(t *testing.T) {
	dir := t.TempDir()
	dvsPath := filepath.Join(dir, "archive.DVS")
	dvfPath := filepath.Join(dir, "archive.dvf")
	if err := os.WriteFile(dvfPath, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, ok := OutsourcedPath(dvsPath, "")
	if !ok {
		t.Fatalf("expected outsourced file to be found at %q", got)
	}
	if got != dvfPath {
		t.Errorf("got %q, want %q", got, dvfPath)
	}
}

func TestOutsourcedPathNotFound(t *testing.T) {
	dir := t.TempDir()
	dvsPath := filepath.Join(dir, "archive.dvs")
	got, ok := OutsourcedPath(dvsPath, "dvf")
	if ok {
		t.Fatalf("did not expect %q to exist", got)
	}
}

func TestOutsourcedPathNonDvsInput(t *testing.T) {
	if _, ok := OutsourcedPath("", "dvf"); ok {
		t.Error("empty path must never resolve")
	}
	if _, ok := OutsourcedPath("archive.bin", "dvf"); ok {
		t.Error("non-.dvs path must never resolve")
	}
}
