package retention

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"huskywatch/internal/fileutil"
	"huskywatch/internal/logging"
)

// timestampFormats lists the accepted on-disk timestamp layouts. New records
// are written with the first entry; the second keeps files written by earlier
// deployments readable.
var timestampFormats = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
}

// Entry is one remembered dedup key with the time it was first emitted.
type Entry struct {
	Key        string
	ObservedAt time.Time
}

// Store persists feed dedup keys in a line-oriented text file, one
// `key,timestamp` record per line.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore returns a store backed by the file at path. The file may not exist
// yet; it is created on the first Remember call.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Load reads all persisted records, drops any whose age at `now` meets or
// exceeds window, rewrites the file with only the survivors, and returns the
// surviving keys. Unparseable lines are dropped with a warning rather than
// failing the load.
func (s *Store) Load(now time.Time, window time.Duration) (map[string]struct{}, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(entries))
	survivors := make([]string, 0, len(entries))
	for _, entry := range entries {
		if now.Sub(entry.ObservedAt) >= window {
			continue
		}
		known[entry.Key] = struct{}{}
		survivors = append(survivors, formatEntry(entry))
	}

	if err := s.rewrite(survivors); err != nil {
		return nil, err
	}
	return known, nil
}

// Entries reads the persisted records without compacting or rewriting the
// file. Corrupted lines are skipped with a warning.
func (s *Store) Entries() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read retention store: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			s.logger.Warn("dropping unparseable retention line",
				logging.String("line", line),
				slog.Any("error", err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Remember appends a new record for key. It is called only after the matching
// alert was delivered, so a failed delivery naturally retries next run.
func (s *Store) Remember(key string, observedAt time.Time) error {
	line := formatEntry(Entry{Key: key, ObservedAt: observedAt})
	if err := fileutil.AppendLine(s.path, line); err != nil {
		return fmt.Errorf("remember key %q: %w", key, err)
	}
	return nil
}

func (s *Store) rewrite(lines []string) error {
	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := fileutil.WriteFileAtomic(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("rewrite retention store: %w", err)
	}
	return nil
}

func parseLine(line string) (Entry, error) {
	key, rawTime, found := strings.Cut(line, ",")
	if !found || strings.TrimSpace(key) == "" {
		return Entry{}, fmt.Errorf("malformed record %q", line)
	}
	rawTime = strings.TrimSpace(rawTime)
	for _, layout := range timestampFormats {
		if ts, err := time.Parse(layout, rawTime); err == nil {
			return Entry{Key: strings.TrimSpace(key), ObservedAt: ts}, nil
		}
	}
	return Entry{}, fmt.Errorf("unrecognized timestamp %q", rawTime)
}

func formatEntry(entry Entry) string {
	return entry.Key + "," + entry.ObservedAt.Format(time.RFC3339Nano)
}
