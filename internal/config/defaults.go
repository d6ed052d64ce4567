package config

const (
	defaultDatabasePath  = "~/.local/share/bookdup/catalog.db"
	defaultLogDir        = "~/.local/share/bookdup/logs"
	defaultReportDir     = "~/.local/share/bookdup/reports"
	defaultMatchMode     = "title_author"
	defaultTitleMatch    = "similar"
	defaultAuthorMatch   = "similar"
	defaultMultiAuthor   = "any"
	defaultSoundexLength = 4
	defaultTitleSoundex  = 6
	defaultBinaryKeep    = "newest"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DatabasePath: defaultDatabasePath,
			LogDir:       defaultLogDir,
			ReportDir:    defaultReportDir,
		},
		Match: Match{
			Mode:        defaultMatchMode,
			TitleMatch:  defaultTitleMatch,
			AuthorMatch: defaultAuthorMatch,
			MultiAuthor: defaultMultiAuthor,
		},
		Normalize: Normalize{
			TitleSoundexLength:     defaultTitleSoundex,
			AuthorSoundexLength:    defaultSoundexLength,
			SeriesSoundexLength:    defaultTitleSoundex,
			PublisherSoundexLength: defaultTitleSoundex,
			TagsSoundexLength:      defaultSoundexLength,
		},
		Results: Results{
			SortGroupsByTitle: true,
			BinaryKeep:        defaultBinaryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
