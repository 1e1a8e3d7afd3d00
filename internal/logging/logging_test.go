package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "energystat.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogStage("filter", "removed %d", 3)
	id := RunID()
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[FILTER] run="+id+" removed 3") {
		t.Fatalf("expected LogStage content, got: %s", content)
	}
}

func TestInitStartsNewRun(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	first := RunID()
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid run id, got %q", first)
	}
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if RunID() == first {
		t.Fatalf("expected a fresh run id")
	}
}

func TestBuildStageMessageDefaults(t *testing.T) {
	msg := buildStageMessage(" ", " ", " done ")
	if msg != "[PIPELINE] done" {
		t.Fatalf("unexpected message: %q", msg)
	}
	msg = buildStageMessage("abc", "rq1", "ok")
	if msg != "[RQ1] run=abc ok" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestInitWithoutFileWritesStdoutOnly(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogEvent("stdout only")
	if buf.Len() != 0 {
		t.Fatalf("expected previous writer to be replaced, got: %s", buf.String())
	}
}
