package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. The match section is checked
// by building the actual comparison rule, so illegal combinations surface
// here instead of at search time.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if _, err := c.Rule(); err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if err := c.validateNormalize(); err != nil {
		return err
	}
	if err := c.validateResults(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DatabasePath == "" {
		return errors.New("paths.database_path must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.ReportDir == "" {
		return errors.New("paths.report_dir must be set")
	}
	return nil
}

func (c *Config) validateNormalize() error {
	return ensurePositiveMap(map[string]int{
		"normalize.title_soundex_length":     c.Normalize.TitleSoundexLength,
		"normalize.author_soundex_length":    c.Normalize.AuthorSoundexLength,
		"normalize.series_soundex_length":    c.Normalize.SeriesSoundexLength,
		"normalize.publisher_soundex_length": c.Normalize.PublisherSoundexLength,
		"normalize.tags_soundex_length":      c.Normalize.TagsSoundexLength,
	})
}

func (c *Config) validateResults() error {
	switch c.Results.BinaryKeep {
	case "newest", "largest":
		return nil
	}
	return fmt.Errorf("results.binary_keep must be newest or largest, got %q", c.Results.BinaryKeep)
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
