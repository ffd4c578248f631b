package profiles

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"huskywatch/internal/config"
	"huskywatch/internal/logging"
)

const userAgent = "HuskyWatch/0.1.0"

// fallbackImage is the provider's placeholder portrait; a page carrying it has
// no real photo.
const fallbackImage = "https://static.eliteprospects.com/images/player-fallback.jpg"

var (
	playerLinkPattern = regexp.MustCompile(`/player/\d+/`)
	imageURLPattern   = regexp.MustCompile(`url\(["']?([^"')]+)["']?\)`)
)

// Client scrapes the provider's team and player pages for reference data:
// entity-of-interest profile links, qualifying appearance counts, and
// profile photos.
type Client struct {
	baseURL string
	orgID   string
	orgSlug string
	league  string
	peerIDs []string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient builds a profiles client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		baseURL: cfg.Profiles.BaseURL,
		orgID:   cfg.Org.ID,
		orgSlug: cfg.Org.Slug,
		league:  cfg.Profiles.League,
		peerIDs: append([]string(nil), cfg.Org.PeerIDs...),
		client:  &http.Client{Timeout: time.Duration(cfg.Profiles.RequestTimeout) * time.Second},
		logger:  logger,
	}
}

// FetchPeerOrgIDs returns the identifiers of peer institutions.
func (c *Client) FetchPeerOrgIDs(_ context.Context) (map[string]struct{}, error) {
	peers := make(map[string]struct{}, len(c.peerIDs))
	for _, id := range c.peerIDs {
		peers[id] = struct{}{}
	}
	if len(peers) == 0 {
		return nil, fmt.Errorf("no peer organization ids configured")
	}
	return peers, nil
}

// FetchEntitiesOfInterest scrapes the tracked org's alumni page for the
// profile links of future and former players. An empty result is an error:
// classification cannot distinguish relevant from irrelevant events without
// the list.
func (c *Client) FetchEntitiesOfInterest(ctx context.Context) ([]string, error) {
	pageURL := fmt.Sprintf("%s/team/%s/%s/where-are-they-now?sort=tp", c.baseURL, c.orgID, c.orgSlug)
	doc, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch entities of interest: %w", err)
	}

	seen := make(map[string]struct{})
	var refs []string
	doc.Find("div.expandable-table-wrapper a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !playerLinkPattern.MatchString(href) {
			return
		}
		href = c.absoluteURL(href)
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		refs = append(refs, href)
	})

	if len(refs) == 0 {
		return nil, fmt.Errorf("no profile links found on %s", pageURL)
	}
	c.logger.Debug("fetched entities of interest", slog.Int("count", len(refs)))
	return refs, nil
}

// LookupAppearanceCount counts qualifying league appearances on the player's
// stats page. Zero means the player has never been recorded as appearing for
// the tracked organization's league.
func (c *Client) LookupAppearanceCount(ctx context.Context, profileRef string) (int, error) {
	doc, err := c.get(ctx, profileRef+"?league="+c.league)
	if err != nil {
		return 0, fmt.Errorf("fetch player stats: %w", err)
	}

	rows := doc.Find(fmt.Sprintf(`#league-stats tr[data-league=%q]`, c.league))
	if rows.Length() == 1 {
		gp := strings.TrimSpace(rows.First().Find("td.regular.gp").Text())
		if gp == "-*" {
			return 0, nil
		}
	}

	total := 0
	rows.Each(func(_ int, sel *goquery.Selection) {
		gp := strings.TrimSpace(sel.Find("td.regular.gp").Text())
		if n, err := strconv.Atoi(gp); err == nil {
			total += n
		}
	})
	if total == 0 {
		// Recorded seasons without parseable totals still mark a former player.
		total = 1
	}
	return total, nil
}

// ProfilePhoto resolves the player's portrait URL, or "" when the page only
// carries the provider's fallback image. Failures are soft: alerts go out
// without an image.
func (c *Client) ProfilePhoto(ctx context.Context, profileRef string) (string, error) {
	doc, err := c.get(ctx, profileRef)
	if err != nil {
		return "", fmt.Errorf("fetch player page: %w", err)
	}

	style, ok := doc.Find("div.ep-entity-header__main-image").Attr("style")
	if !ok {
		return "", nil
	}
	m := imageURLPattern.FindStringSubmatch(style)
	if m == nil {
		return "", nil
	}
	photo := strings.TrimSpace(m[1])
	if strings.HasPrefix(photo, "//") {
		photo = "https:" + photo
	}
	if photo == fallbackImage {
		return "", nil
	}
	return photo, nil
}

func (c *Client) get(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s returned %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

func (c *Client) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.baseURL + href
}
