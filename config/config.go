package config

import (
	"os"
	"strings"
)

// Config holds everything the process reads from its environment.
type Config struct {
	Port           string
	AllowedOrigins []string
	WordsFile      string
	Debug          bool
}

// Load reads the environment once at startup. Missing keys fall back to
// development defaults; an empty ALLOWED_ORIGINS list means allow all.
func Load() Config {
	cfg := Config{
		Port:      "5052",
		WordsFile: "./words.txt",
	}

	if port, ok := os.LookupEnv("PORT"); ok {
		cfg.Port = port
	}

	if origins, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		for _, origin := range strings.Split(origins, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if wordsFile, ok := os.LookupEnv("WORDS_FILE"); ok {
		cfg.WordsFile = wordsFile
	}

	if debug, ok := os.LookupEnv("DEBUG"); ok {
		cfg.Debug = debug == "true" || debug == "1"
	}

	return cfg
}
