package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry represents a single audit log record.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	RequestID string    `json:"requestId"`
	Command   string    `json:"command"`
	Args      []string  `json:"args,omitempty"`
	Outcome   string    `json:"outcome"`
	LatencyMs float64   `json:"latencyMs"`
}

// Logger writes audit records to an append-only JSONL file.
type Logger struct {
	mu       sync.Mutex
	filePath string
	file     *os.File
}

// NewLogger creates an audit logger writing to <logDir>/audit.jsonl.
func NewLogger(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filePath := filepath.Join(logDir, "audit.jsonl")

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}

	return &Logger{
		filePath: filePath,
		file:     file,
	}, nil
}

// LogCommand records the outcome of one dispatched request.
func (l *Logger) LogCommand(requestID, command string, args []string, outcome string, latency time.Duration) {
	entry := Entry{
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Command:   command,
		Args:      args,
		Outcome:   outcome,
		LatencyMs: float64(latency.Microseconds()) / 1000.0,
	}

	l.writeEntry(entry)
}

// writeEntry appends one record to the log file. Failures degrade to stderr;
// a request is never failed on account of its audit record.
func (l *Logger) writeEntry(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal audit entry: %v\n", err)
		return
	}

	if _, err := l.file.Write(append(jsonData, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write audit entry: %v\n", err)
		return
	}

	if err := l.file.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sync audit log: %v\n", err)
	}
}

// FilePath returns the path of the audit log file.
func (l *Logger) FilePath() string {
	return l.filePath
}

// Close closes the audit log file. Records logged after Close are dropped.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
