package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatch()
	c.normalizeResults()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaultDatabasePath
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = defaultReportDir
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatch() {
	c.Match.Mode = strings.ToLower(strings.TrimSpace(c.Match.Mode))
	if c.Match.Mode == "" {
		c.Match.Mode = defaultMatchMode
	}
	c.Match.IdentifierType = strings.ToLower(strings.TrimSpace(c.Match.IdentifierType))
	c.Match.TitleMatch = strings.ToLower(strings.TrimSpace(c.Match.TitleMatch))
	if c.Match.TitleMatch == "" {
		c.Match.TitleMatch = defaultTitleMatch
	}
	c.Match.AuthorMatch = strings.ToLower(strings.TrimSpace(c.Match.AuthorMatch))
	if c.Match.AuthorMatch == "" {
		c.Match.AuthorMatch = defaultAuthorMatch
	}
	c.Match.MultiAuthor = strings.ToLower(strings.TrimSpace(c.Match.MultiAuthor))
	if c.Match.MultiAuthor == "" {
		c.Match.MultiAuthor = defaultMultiAuthor
	}
}

func (c *Config) normalizeResults() {
	c.Results.BinaryKeep = strings.ToLower(strings.TrimSpace(c.Results.BinaryKeep))
	if c.Results.BinaryKeep == "" {
		c.Results.BinaryKeep = defaultBinaryKeep
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
