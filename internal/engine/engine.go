package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"huskywatch/internal/classify"
	"huskywatch/internal/config"
	"huskywatch/internal/logging"
	"huskywatch/internal/mergestore"
	"huskywatch/internal/notify"
	"huskywatch/internal/retention"
	"huskywatch/internal/sheets"
)

// FeedSource produces normalized candidates from the transaction feed.
type FeedSource interface {
	Fetch(ctx context.Context) ([]classify.CandidateEvent, error)
}

// SpreadsheetSource reads all rows from one transfer-portal spreadsheet tab.
type SpreadsheetSource interface {
	Fetch(ctx context.Context, spreadsheetID, tab string) ([]sheets.Row, error)
}

// ReferenceSource supplies the per-run reference snapshot: peer institution
// ids and the entity-of-interest profile list.
type ReferenceSource interface {
	FetchPeerOrgIDs(ctx context.Context) (map[string]struct{}, error)
	FetchEntitiesOfInterest(ctx context.Context) ([]string, error)
}

// PhotoResolver resolves the profile photo for a player page. An empty result
// means only the site's fallback image was available.
type PhotoResolver interface {
	ProfilePhoto(ctx context.Context, profileRef string) (string, error)
}

// Deps bundles the engine's external collaborators.
type Deps struct {
	Feed       FeedSource
	Portal     SpreadsheetSource
	References ReferenceSource
	Lookup     classify.AppearanceLookup
	Photos     PhotoResolver
	Sink       notify.Service
}

// Engine drives one watch cycle: load persisted state, classify events the
// state does not already cover, deliver alerts, persist updated state.
type Engine struct {
	cfg    *config.Config
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
}

// New builds an engine over the given configuration and collaborators.
func New(cfg *config.Config, deps Deps, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{cfg: cfg, deps: deps, logger: logger, now: time.Now}
}

// Run executes the feed pass followed by the portal pass under a single run
// lock. The portal pass runs even when the feed pass fails; errors from both
// are joined.
func (e *Engine) Run(ctx context.Context) error {
	return e.locked(ctx, func(ctx context.Context, logger *slog.Logger) error {
		return errors.Join(e.feedPass(ctx, logger), e.portalPass(ctx, logger))
	})
}

// RunFeed executes only the transaction-feed pass.
func (e *Engine) RunFeed(ctx context.Context) error {
	return e.locked(ctx, e.feedPass)
}

// RunPortal executes only the transfer-portal pass.
func (e *Engine) RunPortal(ctx context.Context) error {
	return e.locked(ctx, e.portalPass)
}

// locked acquires the run lock, tags a run id onto the logger, and executes
// pass. A held lock means another invocation is mid-cycle; overlapping runs
// would race on the state files.
func (e *Engine) locked(ctx context.Context, pass func(context.Context, *slog.Logger) error) error {
	if err := e.cfg.EnsureDirectories(); err != nil {
		return err
	}

	lock := flock.New(e.cfg.LockPath())
	held, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !held {
		return fmt.Errorf("another run holds the lock at %s", e.cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()

	logger := e.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	return pass(ctx, logger)
}

// feedPass classifies new transaction-feed entries and delivers alerts for
// the qualifying ones. A key is remembered only after its alert is delivered:
// failed deliveries retry on the next run, and non-qualifying entries are
// re-evaluated every run so a player added to the entity-of-interest list
// while the entry is still in the feed is not missed.
func (e *Engine) feedPass(ctx context.Context, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "feed")

	peers, err := e.deps.References.FetchPeerOrgIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: peer ids: %v", ErrReferenceData, err)
	}
	profiles, err := e.deps.References.FetchEntitiesOfInterest(ctx)
	if err != nil {
		return fmt.Errorf("%w: entities of interest: %v", ErrReferenceData, err)
	}
	refs := classify.ReferenceSet{OrgID: e.cfg.Org.ID, PeerIDs: peers, Profiles: profiles}

	store := retention.NewStore(e.cfg.RetentionStorePath(), logger)
	window := time.Duration(e.cfg.State.RetentionDays) * 24 * time.Hour
	known, err := store.Load(e.now(), window)
	if err != nil {
		return err
	}

	candidates, err := e.deps.Feed.Fetch(ctx)
	if err != nil {
		return err
	}

	classifier := classify.New(refs, e.deps.Lookup, logger)
	var undelivered int
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			logger.Warn("skipping candidate",
				logging.Error(fmt.Errorf("%w: %v", ErrMalformedCandidate, err)))
			continue
		}
		if _, seen := known[candidate.SourceKey]; seen {
			continue
		}

		category, err := classifier.ClassifyFeed(ctx, candidate)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReferenceData, err)
		}
		if !category.Qualifying() {
			continue
		}

		imageURL := ""
		if e.deps.Photos != nil {
			photo, err := e.deps.Photos.ProfilePhoto(ctx, candidate.ProfileURL)
			if err != nil {
				logger.Warn("profile photo unavailable",
					logging.String(logging.FieldKey, candidate.SourceKey),
					logging.Error(err))
			} else {
				imageURL = photo
			}
		}

		if err := e.deps.Sink.Send(ctx, feedMessage(category, candidate), imageURL); err != nil {
			logger.Warn("alert delivery failed; will retry next run",
				logging.String(logging.FieldKey, candidate.SourceKey),
				logging.String(logging.FieldCategory, category.String()),
				logging.Error(err))
			undelivered++
			continue
		}
		if err := store.Remember(candidate.SourceKey, e.now()); err != nil {
			return err
		}
		logger.Info("alert delivered",
			logging.String(logging.FieldKey, candidate.SourceKey),
			logging.String(logging.FieldCategory, category.String()))
	}

	if undelivered > 0 {
		return fmt.Errorf("%w: %d feed alert(s) not delivered", ErrSinkDelivery, undelivered)
	}
	return nil
}

// portalPass merges every configured spreadsheet source into the published
// store and delivers alerts for new and upgraded records. An unreachable
// source is skipped; the store is persisted even when deliveries fail so
// records emitted by earlier sources stay recorded.
func (e *Engine) portalPass(ctx context.Context, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "portal")
	if len(e.cfg.Portal.Sources) == 0 {
		logger.Info("no portal sources configured")
		return nil
	}
	if e.deps.Portal == nil {
		return errors.New("portal sources configured but no spreadsheet source available")
	}

	store, err := mergestore.Open(e.cfg.MergeStorePath(), logger)
	if err != nil {
		return err
	}

	var undelivered int
	for _, source := range e.cfg.Portal.Sources {
		srcLogger := logger.With(logging.String(logging.FieldSource, source.Name))
		rows, err := e.deps.Portal.Fetch(ctx, source.SpreadsheetID, source.Tab)
		if err != nil {
			srcLogger.Warn("portal source unavailable; skipping", logging.Error(err))
			continue
		}
		undelivered += e.mergeRows(ctx, srcLogger, store, source, rows)
	}

	if err := store.Persist(); err != nil {
		return err
	}
	if undelivered > 0 {
		return fmt.Errorf("%w: %d portal alert(s) not delivered", ErrSinkDelivery, undelivered)
	}
	return nil
}

// mergeRows upserts each usable row from one source and emits alerts for the
// sightings that are new or newly resolved. A failed delivery undoes the
// upsert so the sighting is retried next run. Returns the undelivered count.
func (e *Engine) mergeRows(ctx context.Context, logger *slog.Logger, store *mergestore.Store, source config.PortalSource, rows []sheets.Row) int {
	var undelivered int
	for i, row := range rows {
		if i < source.StartRow {
			continue
		}
		candidate, ok := e.normalizeRow(source, row)
		if !ok {
			continue
		}

		result, record, undo := store.Upsert(candidate)
		if result == mergestore.ResultAlreadyPublished {
			continue
		}

		category := classify.ClassifyPortal(*record)
		if err := e.deps.Sink.Send(ctx, portalMessage(category, *record), ""); err != nil {
			if undo != nil {
				undo()
			}
			logger.Warn("alert delivery failed; will retry next run",
				logging.String("name", record.Name),
				logging.String(logging.FieldCategory, category.String()),
				logging.Error(err))
			undelivered++
			continue
		}
		logger.Info("alert delivered",
			logging.String("name", record.Name),
			logging.String(logging.FieldCategory, category.String()),
			logging.String("result", result.String()))
	}
	return undelivered
}
