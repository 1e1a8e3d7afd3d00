package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	mu      sync.Mutex
	logFile *os.File
	runID   string
)

// Init routes the standard logger to stdout and, when logPath is set, to an
// append-only log file. Each call starts a new run identifier.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	runID = uuid.NewString()

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close flushes and releases the log file, restoring stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// RunID returns the identifier of the current run, or "" before Init.
func RunID() string {
	mu.Lock()
	defer mu.Unlock()
	return runID
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogStage logs a pipeline stage message tagged with the run identifier.
func LogStage(stage, format string, args ...any) {
	log.Println(buildStageMessage(RunID(), stage, fmt.Sprintf(format, args...)))
}

func buildStageMessage(id, stage, msg string) string {
	stageValue := strings.TrimSpace(stage)
	if stageValue == "" {
		stageValue = "pipeline"
	}
	parts := []string{fmt.Sprintf("[%s]", strings.ToUpper(stageValue))}
	if id = strings.TrimSpace(id); id != "" {
		parts = append(parts, fmt.Sprintf("run=%s", id))
	}
	parts = append(parts, strings.TrimSpace(msg))
	return strings.Join(parts, " ")
}
