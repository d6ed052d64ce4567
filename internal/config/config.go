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

	"bookdup/internal/match"
	"bookdup/internal/normalize"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	DatabasePath string `toml:"database_path"`
	LogDir       string `toml:"log_dir"`
	ReportDir    string `toml:"report_dir"`
}

// Match contains the duplicate comparison settings.
type Match struct {
	Mode             string `toml:"mode"`
	IdentifierType   string `toml:"identifier_type"`
	TitleMatch       string `toml:"title_match"`
	AuthorMatch      string `toml:"author_match"`
	IgnoreTitle      bool   `toml:"ignore_title"`
	IgnoreAuthor     bool   `toml:"ignore_author"`
	IncludeLanguages bool   `toml:"include_languages"`
	MultiAuthor      string `toml:"multi_author"`
}

// Normalize contains the word lists and phonetic code lengths used by the
// text normalizer.
type Normalize struct {
	TitleStopWords         []string `toml:"title_stop_words"`
	AuthorIgnoreWords      []string `toml:"author_ignore_words"`
	TitleSoundexLength     int      `toml:"title_soundex_length"`
	AuthorSoundexLength    int      `toml:"author_soundex_length"`
	SeriesSoundexLength    int      `toml:"series_soundex_length"`
	PublisherSoundexLength int      `toml:"publisher_soundex_length"`
	TagsSoundexLength      int      `toml:"tags_soundex_length"`
}

// Results contains presentation and binary-cleanup settings for search
// output.
type Results struct {
	ShowAllGroups      bool   `toml:"show_all_groups"`
	SortGroupsByTitle  bool   `toml:"sort_groups_by_title"`
	ShowVariationBooks bool   `toml:"show_variation_books"`
	AutoRemoveBinary   bool   `toml:"auto_remove_binary_duplicates"`
	BinaryKeep         string `toml:"binary_keep"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for bookdup.
//
// Configuration sections by subsystem:
//   - Paths: catalog database location, log and report directories
//   - Match: duplicate comparison mode and per-field match levels
//   - Normalize: stop words, ignored author particles, soundex lengths
//   - Results: group presentation and binary duplicate cleanup
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Match     Match     `toml:"match"`
	Normalize Normalize `toml:"normalize"`
	Results   Results   `toml:"results"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/bookdup/config.toml")
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

	projectPath, err := filepath.Abs("bookdup.toml")
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

// EnsureDirectories creates the directories the catalog, logs, and reports
// live in.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Paths.DatabasePath), c.Paths.LogDir, c.Paths.ReportDir}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the lock file path guarding preference writes.
func (c *Config) LockPath() string {
	return c.Paths.DatabasePath + ".lock"
}

// Rule translates the [match] section into a validated comparison rule.
func (c *Config) Rule() (match.Rule, error) {
	mode, err := match.ParseMode(c.Match.Mode)
	if err != nil {
		return match.Rule{}, err
	}

	rule := match.Rule{Mode: mode}
	switch mode {
	case match.ModeIdentifier:
		rule.IdentifierType = strings.ToLower(strings.TrimSpace(c.Match.IdentifierType))
	case match.ModeTitleAuthor:
		rule.IgnoreTitle = c.Match.IgnoreTitle
		rule.IgnoreAuthor = c.Match.IgnoreAuthor
		rule.IncludeLanguage = c.Match.IncludeLanguages
		if !rule.IgnoreTitle {
			level, err := match.ParseLevel(c.Match.TitleMatch)
			if err != nil {
				return match.Rule{}, fmt.Errorf("match.title_match: %w", err)
			}
			rule.TitleLevel = level
		}
		if !rule.IgnoreAuthor {
			level, err := match.ParseLevel(c.Match.AuthorMatch)
			if err != nil {
				return match.Rule{}, fmt.Errorf("match.author_match: %w", err)
			}
			rule.AuthorLevel = level
			rule.MultiAuthor = match.MultiAuthorPolicy(c.Match.MultiAuthor)
		}
		rule.Soundex = match.SoundexLengths{
			Title:  c.Normalize.TitleSoundexLength,
			Author: c.Normalize.AuthorSoundexLength,
		}
	}

	if err := rule.Validate(); err != nil {
		return match.Rule{}, err
	}
	return rule, nil
}

// NormalizeOptions translates the [normalize] word lists into normalizer
// options, falling back to the built-in lists when a list is absent.
func (c *Config) NormalizeOptions() normalize.Options {
	opts := normalize.Default()
	if len(c.Normalize.TitleStopWords) > 0 {
		opts.TitleStopWords = lowerAll(c.Normalize.TitleStopWords)
	}
	if len(c.Normalize.AuthorIgnoreWords) > 0 {
		opts.AuthorIgnoreWords = lowerAll(c.Normalize.AuthorIgnoreWords)
	}
	return opts
}

// FieldSoundexLength returns the configured phonetic code length for a
// variation field.
func (c *Config) FieldSoundexLength(kind normalize.FieldKind) int {
	switch kind {
	case normalize.FieldAuthor:
		return c.Normalize.AuthorSoundexLength
	case normalize.FieldSeries:
		return c.Normalize.SeriesSoundexLength
	case normalize.FieldPublisher:
		return c.Normalize.PublisherSoundexLength
	case normalize.FieldTag:
		return c.Normalize.TagsSoundexLength
	}
	return 0
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
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
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
