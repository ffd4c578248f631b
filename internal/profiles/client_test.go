package profiles

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"huskywatch/internal/config"
	"huskywatch/internal/logging"
)

func clientFor(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Profiles.BaseURL = srv.URL
	return NewClient(&cfg, logging.NewNop()), srv
}

func TestFetchEntitiesOfInterest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/team/548/michigan-tech/where-are-they-now", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sort") != "tp" {
			t.Errorf("missing sort parameter: %s", r.URL.String())
		}
		fmt.Fprint(w, `<html><body>
<div class="expandable-table-wrapper">
  <a href="https://www.eliteprospects.com/player/9000/bob-smith">Bob Smith</a>
  <a href="/player/9001/al-jones">Al Jones</a>
  <a href="https://www.eliteprospects.com/player/9000/bob-smith">Bob Smith</a>
  <a href="/team/548/michigan-tech">Michigan Tech</a>
</div>
</body></html>`)
	})

	client, srv := clientFor(t, mux)

	refs, err := client.FetchEntitiesOfInterest(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 unique player links, got %d: %v", len(refs), refs)
	}
	if refs[1] != srv.URL+"/player/9001/al-jones" {
		t.Fatalf("relative link not resolved: %q", refs[1])
	}
}

func TestFetchEntitiesOfInterestEmptyPageIsError(t *testing.T) {
	client, _ := clientFor(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing here</p></body></html>`)
	}))

	if _, err := client.FetchEntitiesOfInterest(context.Background()); err == nil {
		t.Fatal("expected error for page without profile links")
	}
}

func TestLookupAppearanceCount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/player/9000/bob-smith", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div id="league-stats"><table>
<tr data-league="NCAA"><td class="regular gp">-*</td></tr>
</table></div></body></html>`)
	})
	mux.HandleFunc("/player/9001/al-jones", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div id="league-stats"><table>
<tr data-league="NCAA"><td class="regular gp">34</td></tr>
<tr data-league="NCAA"><td class="regular gp">36</td></tr>
</table></div></body></html>`)
	})

	client, srv := clientFor(t, mux)
	ctx := context.Background()

	future, err := client.LookupAppearanceCount(ctx, srv.URL+"/player/9000/bob-smith")
	if err != nil {
		t.Fatal(err)
	}
	if future != 0 {
		t.Fatalf("future player should have zero appearances, got %d", future)
	}

	former, err := client.LookupAppearanceCount(ctx, srv.URL+"/player/9001/al-jones")
	if err != nil {
		t.Fatal(err)
	}
	if former != 70 {
		t.Fatalf("former player appearances: got %d, want 70", former)
	}
}

func TestProfilePhoto(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/player/9000/bob-smith", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
<div class="ep-entity-header__main-image" style="background-image: url('//cdn.example.com/photos/9000.jpg');"></div>
</body></html>`)
	})
	mux.HandleFunc("/player/9001/al-jones", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
<div class="ep-entity-header__main-image" style="background-image: url('https://static.eliteprospects.com/images/player-fallback.jpg');"></div>
</body></html>`)
	})
	mux.HandleFunc("/player/9002/cy-doe", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><p>no header image</p></body></html>`)
	})

	client, srv := clientFor(t, mux)
	ctx := context.Background()

	photo, err := client.ProfilePhoto(ctx, srv.URL+"/player/9000/bob-smith")
	if err != nil {
		t.Fatal(err)
	}
	if photo != "https://cdn.example.com/photos/9000.jpg" {
		t.Fatalf("photo url: got %q", photo)
	}

	fallback, err := client.ProfilePhoto(ctx, srv.URL+"/player/9001/al-jones")
	if err != nil {
		t.Fatal(err)
	}
	if fallback != "" {
		t.Fatalf("fallback portrait should be dropped, got %q", fallback)
	}

	missing, err := client.ProfilePhoto(ctx, srv.URL+"/player/9002/cy-doe")
	if err != nil {
		t.Fatal(err)
	}
	if missing != "" {
		t.Fatalf("missing portrait should yield empty url, got %q", missing)
	}
}

func TestFetchPeerOrgIDs(t *testing.T) {
	cfg := config.Default()
	cfg.Org.PeerIDs = []string{"713", "925"}
	client := NewClient(&cfg, logging.NewNop())

	peers, err := client.FetchPeerOrgIDs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(peers) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(peers))
	}
	if _, ok := peers["713"]; !ok {
		t.Fatal("peer id missing")
	}
}
