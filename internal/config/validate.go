package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrg(); err != nil {
		return err
	}
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validatePortal(); err != nil {
		return err
	}
	if err := c.validateState(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrg() error {
	if c.Org.ID == "" {
		return errors.New("org.id must be set")
	}
	if c.Org.Name == "" {
		return errors.New("org.name must be set")
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.URL == "" {
		return errors.New("feed.url must be set")
	}
	return nil
}

func (c *Config) validatePortal() error {
	for i, source := range c.Portal.Sources {
		if source.Name == "" {
			return fmt.Errorf("portal.sources[%d].name must be set", i)
		}
		if source.SpreadsheetID == "" {
			return fmt.Errorf("portal source %q: spreadsheet_id must be set", source.Name)
		}
		if source.Tab == "" {
			return fmt.Errorf("portal source %q: tab must be set", source.Name)
		}
		if source.StartRow < 0 {
			return fmt.Errorf("portal source %q: start_row must not be negative", source.Name)
		}
		if source.OriginColumn < 0 {
			return fmt.Errorf("portal source %q: origin_column must not be negative", source.Name)
		}
		if source.NameColumn < 0 {
			return fmt.Errorf("portal source %q: name_column must not be negative", source.Name)
		}
	}
	return nil
}

func (c *Config) validateState() error {
	if c.State.RetentionDays <= 0 {
		return errors.New("state.retention_days must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
