package mergestore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"huskywatch/internal/fileutil"
	"huskywatch/internal/identity"
	"huskywatch/internal/logging"
)

// UnknownDestination is the sentinel recorded while a transfer's destination
// is still unresolved.
const UnknownDestination = "?"

// Record is one merge-tracked transfer sighting.
type Record struct {
	// Date is the per-entry date for sources that carry one, empty otherwise.
	Date        string
	Name        string
	Position    string
	Origin      string
	Destination string
}

// Resolved reports whether the record's destination is known.
func (r Record) Resolved() bool {
	return r.Destination != "" && r.Destination != UnknownDestination
}

// UpsertResult describes the outcome of merging a candidate sighting.
type UpsertResult int

const (
	// ResultNew means no existing record matched and the candidate was inserted.
	ResultNew UpsertResult = iota
	// ResultAlreadyPublished means a matching record exists and no
	// re-emission is due.
	ResultAlreadyPublished
	// ResultUpgraded means a pending record gained its destination and must
	// be re-emitted exactly once.
	ResultUpgraded
)

func (r UpsertResult) String() string {
	switch r {
	case ResultNew:
		return "new"
	case ResultAlreadyPublished:
		return "already-published"
	case ResultUpgraded:
		return "upgraded"
	default:
		return fmt.Sprintf("upsert-result(%d)", int(r))
	}
}

// Store holds merge-tracked transfers in memory between Open and Persist.
// Records are never deleted; a pending record is mutated at most once, when
// its destination becomes known.
type Store struct {
	path    string
	logger  *slog.Logger
	records []*Record
}

// Open loads all persisted records from path. A missing file yields an empty
// store; unparseable lines are dropped with a warning.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	store := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read merge store: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		record, err := parseLine(line)
		if err != nil {
			logger.Warn("dropping unparseable merge line",
				logging.String("line", line),
				slog.Any("error", err))
			continue
		}
		store.records = append(store.records, &record)
	}
	return store, nil
}

// Records returns the current in-memory records in file order.
func (s *Store) Records() []*Record {
	return s.records
}

// Len returns the number of tracked records.
func (s *Store) Len() int {
	return len(s.records)
}

// Upsert merges one candidate sighting into the store.
//
// A candidate matches an existing record when the identity rule matches on
// name and, for candidates that carry a date, the dates are equal. Sources
// without dates match on name alone. The returned undo function (non-nil only
// for ResultNew and ResultUpgraded) reverses the mutation so a failed
// delivery leaves the store as if the sighting was never seen.
func (s *Store) Upsert(candidate Record) (UpsertResult, *Record, func()) {
	for _, existing := range s.records {
		if !s.matches(*existing, candidate) {
			continue
		}

		if existing.Resolved() {
			return ResultAlreadyPublished, existing, nil
		}

		if candidate.Resolved() {
			prior := *existing
			existing.Destination = candidate.Destination
			if existing.Position == "" {
				existing.Position = candidate.Position
			}
			undo := func() { *existing = prior }
			return ResultUpgraded, existing, undo
		}

		// Both sightings pending: keep the stronger partial data.
		if existing.Position == "" && candidate.Position != "" {
			existing.Position = candidate.Position
		}
		return ResultAlreadyPublished, existing, nil
	}

	inserted := candidate
	if inserted.Destination == "" {
		inserted.Destination = UnknownDestination
	}
	s.records = append(s.records, &inserted)
	undo := func() {
		for i, record := range s.records {
			if record == &inserted {
				s.records = append(s.records[:i], s.records[i+1:]...)
				return
			}
		}
	}
	return ResultNew, &inserted, undo
}

func (s *Store) matches(existing, candidate Record) bool {
	if !identity.Matches(existing.Name, candidate.Name) {
		return false
	}
	// Dated sources use a compound (date, name) key so same-initial players
	// transferring on different days stay distinct.
	if candidate.Date != "" {
		return existing.Date == candidate.Date
	}
	return true
}

// Persist rewrites the backing file with every record, changed or not,
// preserving the at-rest format across runs.
func (s *Store) Persist() error {
	lines := make([]string, 0, len(s.records))
	for _, record := range s.records {
		lines = append(lines, formatRecord(*record))
	}
	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := fileutil.WriteFileAtomic(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("persist merge store: %w", err)
	}
	return nil
}

func parseLine(line string) (Record, error) {
	parts := strings.Split(line, ",")
	switch len(parts) {
	case 5:
		return Record{
			Date:        strings.TrimSpace(parts[0]),
			Name:        strings.TrimSpace(parts[1]),
			Position:    strings.TrimSpace(parts[2]),
			Origin:      strings.TrimSpace(parts[3]),
			Destination: strings.TrimSpace(parts[4]),
		}, nil
	case 3:
		return Record{
			Name:        strings.TrimSpace(parts[0]),
			Origin:      strings.TrimSpace(parts[1]),
			Destination: strings.TrimSpace(parts[2]),
		}, nil
	default:
		return Record{}, fmt.Errorf("malformed record %q", line)
	}
}

func formatRecord(record Record) string {
	if record.Date != "" {
		return strings.Join([]string{record.Date, record.Name, record.Position, record.Origin, record.Destination}, ",")
	}
	return strings.Join([]string{record.Name, record.Origin, record.Destination}, ",")
}
