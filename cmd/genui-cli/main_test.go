package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestWriteOutputStdout(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOutput(&buf, "", []byte("<h2>hi</h2>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "<h2>hi</h2>" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWriteOutputReportsStdoutErrors(t *testing.T) {
	if err := writeOutput(failingWriter{}, "", []byte("x")); err == nil {
		t.Fatalf("expected write error to be returned")
	}
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	if err := writeOutput(failingWriter{}, path, []byte("page")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "page" {
		t.Fatalf("unexpected file contents %q, %v", data, err)
	}

	if err := writeOutput(failingWriter{}, filepath.Join(t.TempDir(), "missing", "out.html"), nil); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
