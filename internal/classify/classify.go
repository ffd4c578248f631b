package classify

import (
	"context"
	"fmt"
	"log/slog"

	"huskywatch/internal/identity"
	"huskywatch/internal/logging"
	"huskywatch/internal/mergestore"
)

// Category is the classification assigned to a candidate event.
type Category int

const (
	CategoryIgnore Category = iota
	CategoryDeparture
	CategoryArrival
	CategoryFuturePlayer
	CategoryFormerPlayer
	CategoryPortalEntry
	CategoryPortalTransfer
	CategoryPortalWithdrawal
)

// String returns the display name used in outgoing alert messages.
func (c Category) String() string {
	switch c {
	case CategoryIgnore:
		return "Ignore"
	case CategoryDeparture:
		return "Departure"
	case CategoryArrival:
		return "Arrival"
	case CategoryFuturePlayer:
		return "Future Player"
	case CategoryFormerPlayer:
		return "Former Player"
	case CategoryPortalEntry:
		return "Portal Entry"
	case CategoryPortalTransfer:
		return "Portal Transfer"
	case CategoryPortalWithdrawal:
		return "Portal Withdrawal"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Qualifying reports whether the category produces an outgoing alert.
func (c Category) Qualifying() bool {
	return c != CategoryIgnore
}

// CandidateEvent is the normalized form of one feed entry.
type CandidateEvent struct {
	// SourceKey is the provider-assigned transaction id used for dedup.
	SourceKey string
	Title     string
	// OriginID and DestinationID are organization ids parsed from the entry's
	// From:/To: links; empty when the entry names no organization.
	OriginID      string
	DestinationID string
	// ProfileURL is the player page link from the entry body.
	ProfileURL string
	// Text is the decoded description, searched for entity-of-interest
	// profile references.
	Text        string
	Status      string
	Date        string
	Information string
	// PeerLabel marks entries the source itself tagged as an inter-peer
	// transfer; those surface through the portal path instead.
	PeerLabel bool
}

// Validate reports whether the candidate carries the fields classification
// and message construction require.
func (c CandidateEvent) Validate() error {
	if c.SourceKey == "" {
		return fmt.Errorf("candidate missing source key")
	}
	if c.Title == "" {
		return fmt.Errorf("candidate %s missing title", c.SourceKey)
	}
	if c.Status == "" {
		return fmt.Errorf("candidate %s missing status", c.SourceKey)
	}
	if c.ProfileURL == "" {
		return fmt.Errorf("candidate %s missing player page link", c.SourceKey)
	}
	return nil
}

// ReferenceSet is the immutable per-run snapshot of reference data.
type ReferenceSet struct {
	// OrgID is the tracked organization's identifier.
	OrgID string
	// PeerIDs holds the identifiers of peer institutions.
	PeerIDs map[string]struct{}
	// Profiles lists entity-of-interest profile references: people affiliated
	// with the tracked organization now, in the future, or previously.
	Profiles []string
}

// IsPeer reports whether id belongs to a peer institution.
func (r ReferenceSet) IsPeer(id string) bool {
	_, ok := r.PeerIDs[id]
	return ok
}

// AppearanceLookup answers how many qualifying appearances an entity of
// interest has recorded for the tracked organization. Zero distinguishes a
// future player from a former one.
type AppearanceLookup interface {
	LookupAppearanceCount(ctx context.Context, profileRef string) (int, error)
}

// Classifier assigns categories to feed candidates against a reference set.
type Classifier struct {
	refs   ReferenceSet
	lookup AppearanceLookup
	logger *slog.Logger
}

// New returns a classifier over the given reference snapshot.
func New(refs ReferenceSet, lookup AppearanceLookup, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Classifier{refs: refs, lookup: lookup, logger: logger}
}

// ClassifyFeed assigns a category to one feed candidate. Decision order, first
// match wins:
//
//  1. Inter-peer transfers are ignored; the portal path reports them.
//  2. Origin is the tracked org: Departure.
//  3. Destination is the tracked org: Arrival.
//  4. The text mentions an entity of interest: Future Player when they have
//     zero qualifying appearances, Former Player otherwise.
//  5. Ignore.
func (c *Classifier) ClassifyFeed(ctx context.Context, candidate CandidateEvent) (Category, error) {
	origin := candidate.OriginID
	destination := candidate.DestinationID

	interPeer := candidate.PeerLabel ||
		(origin == c.refs.OrgID && c.refs.IsPeer(destination)) ||
		(destination == c.refs.OrgID && c.refs.IsPeer(origin))
	if interPeer {
		return CategoryIgnore, nil
	}

	if origin == c.refs.OrgID {
		return CategoryDeparture, nil
	}
	if destination == c.refs.OrgID {
		return CategoryArrival, nil
	}

	if ref, ok := identity.MentionsProfile(candidate.Text, c.refs.Profiles); ok {
		count, err := c.lookup.LookupAppearanceCount(ctx, ref)
		if err != nil {
			return CategoryIgnore, fmt.Errorf("lookup appearances for %s: %w", ref, err)
		}
		if count == 0 {
			return CategoryFuturePlayer, nil
		}
		return CategoryFormerPlayer, nil
	}

	return CategoryIgnore, nil
}

// ClassifyPortal maps a merge-store record to its portal category: a pending
// destination is an entry, a destination equal to the origin is a withdrawal,
// any other known destination is a completed transfer.
func ClassifyPortal(record mergestore.Record) Category {
	if !record.Resolved() {
		return CategoryPortalEntry
	}
	if record.Destination == record.Origin {
		return CategoryPortalWithdrawal
	}
	return CategoryPortalTransfer
}
