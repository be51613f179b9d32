package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWriter_StdoutOnly(t *testing.T) {
	var buf bytes.Buffer
	w, closer, err := NewWriter(&buf, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closer.Close()

	log.New(w, "", 0).Print("[catalog] hello")
	if buf.String() != "[catalog] hello\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewWriter_TeesToRotatedFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nested", "podcatalog.log")

	var buf bytes.Buffer
	w, closer, err := NewWriter(&buf, Options{File: file, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.New(w, "", 0).Print("[image-relay] relayed")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "[image-relay] relayed") {
		t.Errorf("log file missing line, got %q", string(data))
	}
	if !strings.Contains(buf.String(), "[image-relay] relayed") {
		t.Errorf("stdout missing line, got %q", buf.String())
	}
}
