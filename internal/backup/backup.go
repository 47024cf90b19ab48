// Package backup appends sanitized submissions to a local JSON file as a
// debugging aid. The file is non-authoritative: failures are reported, never
// propagated, and the log is capped to its most recent entries.
package backup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/thorsignia/backend/internal/model"
)

const backupFileName = "contact_submissions.json"

// ReasonDisabledInProduction is reported when production mode skips the backup.
const ReasonDisabledInProduction = "disabled in production"

// Result reports the outcome of one append.
type Result struct {
	Written bool
	Reason  string
}

// Writer serializes append operations on the backup file.
type Writer struct {
	mu         sync.Mutex
	root       string
	dataDir    string
	maxEntries int
	production bool
	now        func() time.Time
}

// NewWriter creates a Writer storing backups under dataDir. root is the
// application root; the resolved backup path must stay inside it. In
// production mode every append is a no-op.
func NewWriter(root, dataDir string, maxEntries int, production bool) *Writer {
	return &Writer{
		root:       root,
		dataDir:    dataDir,
		maxEntries: maxEntries,
		production: production,
		now:        time.Now,
	}
}

// Append adds a submission to the backup file, stamping it with the current
// local time and trimming the log to the most recent maxEntries records.
func (w *Writer) Append(c *model.Contact) Result {
	if w.production {
		return Result{Written: false, Reason: ReasonDisabledInProduction}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path, err := w.resolvePath()
	if err != nil {
		slog.Error("backup path rejected", "error", err)
		return Result{Written: false, Reason: err.Error()}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Error("backup dir creation failed", "error", err)
		return Result{Written: false, Reason: fmt.Sprintf("create backup dir: %v", err)}
	}

	records := w.readExisting(path)

	phone := ""
	if c.Phone != nil {
		phone = *c.Phone
	}
	records = append(records, model.BackupRecord{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     phone,
		Company:   c.Company,
		Message:   c.Message,
		Timestamp: w.now().Format(time.RFC3339),
	})

	if len(records) > w.maxEntries {
		records = records[len(records)-w.maxEntries:]
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return Result{Written: false, Reason: fmt.Sprintf("encode backup: %v", err)}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("backup write failed", "path", path, "error", err)
		return Result{Written: false, Reason: fmt.Sprintf("write backup: %v", err)}
	}

	return Result{Written: true}
}

// resolvePath returns the absolute backup file path, rejecting any dataDir
// that escapes the application root.
func (w *Writer) resolvePath() (string, error) {
	root, err := filepath.Abs(w.root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(w.dataDir, backupFileName))
	if err != nil {
		return "", fmt.Errorf("resolve backup path: %w", err)
	}
	if path != root && !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("backup path %s escapes application root %s", path, root)
	}
	return path, nil
}

// readExisting loads the current backup array. Missing, empty or unparsable
// content yields an empty slice rather than an error.
func (w *Writer) readExisting(path string) []model.BackupRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var records []model.BackupRecord
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("backup file unparsable, starting fresh", "path", path, "error", err)
		return nil
	}
	return records
}
