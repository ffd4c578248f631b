package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Org identifies the tracked organization and its competitive peers.
type Org struct {
	// ID is the provider-assigned organization identifier used in feed links.
	ID string `toml:"id"`
	// Slug is the URL path segment for the organization on the provider site.
	Slug string `toml:"slug"`
	// Name is the display name used in outgoing messages.
	Name string `toml:"name"`
	// Aliases are alternate spellings that resolve to the tracked organization
	// in spreadsheet cells.
	Aliases []string `toml:"aliases"`
	// PeerIDs are organization identifiers in the same competitive tier.
	// Transfers exclusively between peers are suppressed on the feed path.
	PeerIDs []string `toml:"peer_ids"`
}

// Feed contains configuration for the transaction feed source.
type Feed struct {
	URL            string `toml:"url"`
	RequestTimeout int    `toml:"request_timeout"`
	// PeerLabel, when non-empty, marks a feed entry status as an inter-peer
	// transfer that the portal path will report instead.
	PeerLabel string `toml:"peer_label"`
}

// Profiles contains configuration for player-profile lookups.
type Profiles struct {
	BaseURL        string `toml:"base_url"`
	League         string `toml:"league"`
	RequestTimeout int    `toml:"request_timeout"`
}

// PortalSource describes one transfer-portal spreadsheet and its column layout.
// Column indexes are zero-based; a negative index marks the column as absent.
type PortalSource struct {
	Name              string `toml:"name"`
	SpreadsheetID     string `toml:"spreadsheet_id"`
	Tab               string `toml:"tab"`
	StartRow          int    `toml:"start_row"`
	OriginColumn      int    `toml:"origin_column"`
	NameColumn        int    `toml:"name_column"`
	PositionColumn    int    `toml:"position_column"`
	DestinationColumn int    `toml:"destination_column"`
	DateColumn        int    `toml:"date_column"`
}

// Portal contains spreadsheet access credentials and the source list.
type Portal struct {
	CredentialsFile string         `toml:"credentials_file"`
	TokenFile       string         `toml:"token_file"`
	Sources         []PortalSource `toml:"sources"`
}

// State contains persisted-store locations and retention policy.
type State struct {
	Dir           string `toml:"dir"`
	RetentionDays int    `toml:"retention_days"`
}

// Notify contains webhook delivery settings.
type Notify struct {
	WebhookURL     string `toml:"webhook_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for HuskyWatch.
//
// Configuration sections by subsystem:
//   - Org: tracked organization identity, aliases, and peer institutions
//   - Feed: transaction feed polling
//   - Profiles: player-profile scraping for entity-of-interest detection
//   - Portal: transfer-portal spreadsheet sources and credentials
//   - State: retention/merge store directory and retention window
//   - Notify: outbound webhook settings
//   - Logging: log format, level, and directory
type Config struct {
	Org      Org      `toml:"org"`
	Feed     Feed     `toml:"feed"`
	Profiles Profiles `toml:"profiles"`
	Portal   Portal   `toml:"portal"`
	State    State    `toml:"state"`
	Notify   Notify   `toml:"notify"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/huskywatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("huskywatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs before touching state.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.State.Dir}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RetentionStorePath returns the location of the feed dedup key file.
func (c *Config) RetentionStorePath() string {
	return filepath.Join(c.State.Dir, "transaction_ids.txt")
}

// MergeStorePath returns the location of the published-transfers file.
func (c *Config) MergeStorePath() string {
	return filepath.Join(c.State.Dir, "published_transfers.txt")
}

// LockPath returns the location of the run lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.State.Dir, "huskywatch.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
