package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries the tool settings shared by the batch and watch
// commands. Flags override these; the environment provides defaults so
// a .env next to the save directory is enough for unattended runs.
type Config struct {
	SaveDir        string
	OutputDir      string
	ArchiveDir     string
	CheckpointPath string
	WorkerCount    int
	WatchInterval  int // seconds between autosave stability checks
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		SaveDir:        getEnv("PDXSAVE_SAVE_DIR", "save games"),
		OutputDir:      getEnv("PDXSAVE_OUTPUT_DIR", "output"),
		ArchiveDir:     getEnv("PDXSAVE_ARCHIVE_DIR", "archive"),
		CheckpointPath: getEnv("PDXSAVE_CHECKPOINT", "output/checkpoint.json"),
		WorkerCount:    getEnvInt("PDXSAVE_WORKERS", runtime.NumCPU()),
		WatchInterval:  getEnvInt("PDXSAVE_WATCH_INTERVAL", 2),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
