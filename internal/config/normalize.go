package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOrg()
	c.normalizeFeed()
	c.normalizeProfiles()
	c.normalizeNotify()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.State.Dir) == "" {
		c.State.Dir = defaultStateDir
	}
	if c.State.Dir, err = expandPath(c.State.Dir); err != nil {
		return fmt.Errorf("state.dir: %w", err)
	}
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	if c.Portal.CredentialsFile, err = expandPath(c.Portal.CredentialsFile); err != nil {
		return fmt.Errorf("portal.credentials_file: %w", err)
	}
	if c.Portal.TokenFile, err = expandPath(c.Portal.TokenFile); err != nil {
		return fmt.Errorf("portal.token_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrg() {
	c.Org.ID = strings.TrimSpace(c.Org.ID)
	c.Org.Name = strings.TrimSpace(c.Org.Name)
	c.Org.Slug = strings.TrimSpace(c.Org.Slug)

	aliases := make([]string, 0, len(c.Org.Aliases)+1)
	seen := map[string]struct{}{}
	for _, alias := range append(c.Org.Aliases, c.Org.Name) {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		if _, ok := seen[alias]; ok {
			continue
		}
		seen[alias] = struct{}{}
		aliases = append(aliases, alias)
	}
	c.Org.Aliases = aliases

	peers := make([]string, 0, len(c.Org.PeerIDs))
	for _, id := range c.Org.PeerIDs {
		if id = strings.TrimSpace(id); id != "" {
			peers = append(peers, id)
		}
	}
	c.Org.PeerIDs = peers
}

func (c *Config) normalizeFeed() {
	c.Feed.URL = strings.TrimSpace(c.Feed.URL)
	if c.Feed.RequestTimeout <= 0 {
		c.Feed.RequestTimeout = defaultFeedTimeout
	}
}

func (c *Config) normalizeProfiles() {
	c.Profiles.BaseURL = strings.TrimRight(strings.TrimSpace(c.Profiles.BaseURL), "/")
	c.Profiles.League = strings.TrimSpace(c.Profiles.League)
	if c.Profiles.RequestTimeout <= 0 {
		c.Profiles.RequestTimeout = defaultProfilesTimeout
	}
}

func (c *Config) normalizeNotify() {
	c.Notify.WebhookURL = strings.TrimSpace(c.Notify.WebhookURL)
	if c.Notify.WebhookURL == "" {
		c.Notify.WebhookURL = strings.TrimSpace(os.Getenv("HUSKYWATCH_WEBHOOK_URL"))
	}
	if c.Notify.RequestTimeout <= 0 {
		c.Notify.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
