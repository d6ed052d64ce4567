package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"bookdup/internal/config"
	"bookdup/internal/match"
	"bookdup/internal/normalize"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantDB := filepath.Join(tempHome, ".local", "share", "bookdup", "catalog.db")
	if cfg.Paths.DatabasePath != wantDB {
		t.Fatalf("unexpected database path: got %q want %q", cfg.Paths.DatabasePath, wantDB)
	}
	if cfg.Match.Mode != "title_author" {
		t.Fatalf("unexpected default mode: %q", cfg.Match.Mode)
	}
	if cfg.Results.BinaryKeep != "newest" {
		t.Fatalf("unexpected default binary_keep: %q", cfg.Results.BinaryKeep)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{filepath.Dir(cfg.Paths.DatabasePath), cfg.Paths.LogDir, cfg.Paths.ReportDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bookdup.toml")

	type payload struct {
		Match struct {
			Mode           string `toml:"mode"`
			IdentifierType string `toml:"identifier_type"`
		} `toml:"match"`
		Normalize struct {
			AuthorSoundexLength int `toml:"author_soundex_length"`
		} `toml:"normalize"`
	}
	custom := payload{}
	custom.Match.Mode = "identifier"
	custom.Match.IdentifierType = "ISBN"
	custom.Normalize.AuthorSoundexLength = 5
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Match.IdentifierType != "isbn" {
		t.Fatalf("expected identifier type lowered, got %q", cfg.Match.IdentifierType)
	}
	if cfg.Normalize.AuthorSoundexLength != 5 {
		t.Fatalf("expected author soundex length 5, got %d", cfg.Normalize.AuthorSoundexLength)
	}

	rule, err := cfg.Rule()
	if err != nil {
		t.Fatalf("Rule failed: %v", err)
	}
	if rule.Mode != match.ModeIdentifier || rule.IdentifierType != "isbn" {
		t.Fatalf("unexpected rule: %#v", rule)
	}
}

func TestRuleCarriesTitleAuthorOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Match.TitleMatch = "soundex"
	cfg.Match.AuthorMatch = "fuzzy"
	cfg.Match.MultiAuthor = "all"
	cfg.Match.IncludeLanguages = true

	rule, err := cfg.Rule()
	if err != nil {
		t.Fatalf("Rule failed: %v", err)
	}
	if rule.TitleLevel != match.LevelSoundex || rule.AuthorLevel != match.LevelFuzzy {
		t.Fatalf("unexpected levels: %#v", rule)
	}
	if rule.MultiAuthor != match.PolicyAll {
		t.Fatalf("unexpected multi-author policy: %q", rule.MultiAuthor)
	}
	if !rule.IncludeLanguage {
		t.Fatal("expected language comparison enabled")
	}
	if rule.Soundex.Title != cfg.Normalize.TitleSoundexLength {
		t.Fatalf("soundex length not carried: %#v", rule.Soundex)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Match.Mode = "identifier"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for identifier mode without a type")
	}

	cfg = config.Default()
	cfg.Match.IgnoreTitle = true
	cfg.Match.IgnoreAuthor = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when both sides ignored")
	}

	cfg = config.Default()
	cfg.Match.AuthorMatch = "loose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown match level")
	}

	cfg = config.Default()
	cfg.Normalize.TagsSoundexLength = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive soundex length")
	}

	cfg = config.Default()
	cfg.Results.BinaryKeep = "oldest"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown binary_keep")
	}
}

func TestNormalizeOptionsFallBackToBuiltins(t *testing.T) {
	cfg := config.Default()
	opts := cfg.NormalizeOptions()
	if len(opts.TitleStopWords) == 0 || len(opts.AuthorIgnoreWords) == 0 {
		t.Fatalf("expected built-in word lists, got %#v", opts)
	}

	cfg.Normalize.TitleStopWords = []string{"A", " El "}
	opts = cfg.NormalizeOptions()
	want := []string{"a", "el"}
	if len(opts.TitleStopWords) != 2 || opts.TitleStopWords[0] != want[0] || opts.TitleStopWords[1] != want[1] {
		t.Fatalf("expected lowered custom list, got %v", opts.TitleStopWords)
	}
}

func TestFieldSoundexLengths(t *testing.T) {
	cfg := config.Default()
	if got := cfg.FieldSoundexLength(normalize.FieldAuthor); got != cfg.Normalize.AuthorSoundexLength {
		t.Fatalf("author length = %d", got)
	}
	if got := cfg.FieldSoundexLength(normalize.FieldPublisher); got != cfg.Normalize.PublisherSoundexLength {
		t.Fatalf("publisher length = %d", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "title_author") {
		t.Fatalf("sample config missing default mode: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Match.Mode != "title_author" {
		t.Fatalf("unexpected sample mode: %q", cfg.Match.Mode)
	}
}
