package config

import "textprint/internal/winnow"

const (
	defaultConfigPath  = "~/.config/textprint/config.toml"
	projectConfigName  = "textprint.toml"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultCacheSize   = 1024
	defaultBatchWorker = 0
)

var defaultInclude = []string{"**.txt", "**.md", "**.pdf", "**.docx"}

// Default returns a Config populated with repository defaults. Batch.Workers
// stays zero until normalization resolves it to the CPU count.
func Default() Config {
	return Config{
		Fingerprint: Fingerprint{
			GramSize:       winnow.DefaultGramSize,
			WindowSize:     winnow.DefaultWindowSize,
			RetentionRatio: winnow.DefaultRetentionRatio,
			Hash:           winnow.DefaultHash,
		},
		Normalize: Normalize{
			Transliterate: true,
			Stopwords:     true,
			Stem:          true,
		},
		Batch: Batch{
			Workers:   defaultBatchWorker,
			CacheSize: defaultCacheSize,
			Include:   append([]string(nil), defaultInclude...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
