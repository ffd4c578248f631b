package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"huskywatch/internal/classify"
	"huskywatch/internal/config"
)

// Fetcher pulls the transaction feed and normalizes its entries.
type Fetcher struct {
	url       string
	peerLabel string
	parser    *gofeed.Parser
}

// NewFetcher builds a feed fetcher from configuration.
func NewFetcher(cfg *config.Config) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: time.Duration(cfg.Feed.RequestTimeout) * time.Second}
	return &Fetcher{
		url:       cfg.Feed.URL,
		peerLabel: cfg.Feed.PeerLabel,
		parser:    parser,
	}
}

// Fetch retrieves the feed and returns one candidate per entry. An empty feed
// is an error: the provider always carries recent transactions, so zero
// entries means the fetch or parse went wrong.
func (f *Fetcher) Fetch(ctx context.Context) ([]classify.CandidateEvent, error) {
	parsed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	if parsed == nil || len(parsed.Items) == 0 {
		return nil, fmt.Errorf("feed %s returned no entries", f.url)
	}

	candidates := make([]classify.CandidateEvent, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		candidates = append(candidates, Normalize(item.GUID, item.Title, item.Description, f.peerLabel))
	}
	return candidates, nil
}
