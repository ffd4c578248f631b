package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"huskywatch/internal/config"
	"huskywatch/internal/engine"
	"huskywatch/internal/feed"
	"huskywatch/internal/logging"
	"huskywatch/internal/notify"
	"huskywatch/internal/profiles"
	"huskywatch/internal/sheets"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildEngine wires the network-backed collaborators into an engine. The
// spreadsheet client is only constructed when the invoked pass needs it, so
// feed-only runs work without portal credentials on disk.
func (c *commandContext) buildEngine(ctx context.Context, needPortal bool) (*engine.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	profileClient := profiles.NewClient(cfg, logger)
	deps := engine.Deps{
		Feed:       feed.NewFetcher(cfg),
		References: profileClient,
		Lookup:     profileClient,
		Photos:     profileClient,
		Sink:       notify.NewService(cfg),
	}

	if needPortal && len(cfg.Portal.Sources) > 0 {
		sheetClient, err := sheets.NewClient(ctx, cfg.Portal.CredentialsFile, cfg.Portal.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("portal spreadsheet access: %w", err)
		}
		deps.Portal = sheetClient
	}

	return engine.New(cfg, deps, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
