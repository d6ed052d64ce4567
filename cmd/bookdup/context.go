package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
	"bookdup/internal/logging"
	"bookdup/internal/prefs"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
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

func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger = slog.Default()
		}
		c.logger = logger
	})
	return c.logger
}

// withCatalog opens the catalog store for the duration of fn.
func (c *commandContext) withCatalog(fn func(cfg *config.Config, cat *catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		return err
	}
	defer cat.Close()
	return fn(cfg, cat)
}

// withStores opens the catalog and its preference store for fn.
func (c *commandContext) withStores(fn func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error) error {
	return c.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
		return fn(cfg, cat, prefs.New(cat.DB(), cfg.LockPath()))
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
