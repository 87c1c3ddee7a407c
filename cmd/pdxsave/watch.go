package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdxtools/pdxsave"
	"github.com/pdxtools/pdxsave/internal/config"
)

// autosaveName is the file the game rewrites on every autosave.
const autosaveName = "autosave.v2"

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [save-dir]",
		Short: "Archive autosaves under their in-game date as they appear",
		Long: `Watches the game's save directory and copies each rewritten autosave
into the archive directory, named by the in-game date read from the
file header (for example 1850.6.15.txt). Batch can then process the
archive chronologically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if len(args) == 1 {
				cfg.SaveDir = args[0]
			}
			if archive, _ := cmd.Flags().GetString("archive"); archive != "" {
				cfg.ArchiveDir = archive
			}
			return runWatch(cfg)
		},
	}
	cmd.Flags().String("archive", "", "archive directory (default from env)")
	return cmd
}

func runWatch(cfg *config.Config) error {
	if _, err := os.Stat(cfg.SaveDir); err != nil {
		return fmt.Errorf("save directory: %w", err)
	}
	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(cfg.SaveDir); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("dir", cfg.SaveDir).Str("archive", cfg.ArchiveDir).Msg("Watching for autosaves")

	debounce := time.Duration(cfg.WatchInterval) * time.Second
	var lastHandled time.Time

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Watcher stopped")
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("Watch error")
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Base(event.Name), autosaveName) {
				continue
			}
			// The OS fires several events for one save; take the first
			// and ignore the rest of the burst.
			if time.Since(lastHandled) < debounce {
				continue
			}
			lastHandled = time.Now()

			if err := archiveAutosave(ctx, event.Name, cfg.ArchiveDir); err != nil {
				log.Error().Err(err).Msg("Archive failed")
			}
		}
	}
}

// archiveAutosave copies a finished autosave into the archive under its
// in-game date. The game writes the file incrementally, so wait until
// its size holds still before reading it.
func archiveAutosave(ctx context.Context, path, archiveDir string) error {
	if err := waitForStableSize(ctx, path); err != nil {
		return err
	}

	date, err := saveDate(path)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dst := filepath.Join(archiveDir, date+".txt")
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		return err
	}
	log.Info().Str("date", date).Str("file", dst).Msg("Archived autosave")
	return nil
}

func waitForStableSize(ctx context.Context, path string) error {
	var lastSize int64 = -1
	for {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.Size() == lastSize && lastSize > 0 {
			return nil
		}
		lastSize = info.Size()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// saveDate reads the date header without parsing the whole file.
func saveDate(path string) (string, error) {
	doc, err := pdxsave.SectionsFile(path, []string{"date"})
	if err != nil {
		return "", err
	}
	node, ok := doc.Get("date")
	if !ok {
		return "", fmt.Errorf("no date header in %s", path)
	}
	date := node.StringOr("")
	if _, err := parseGameDate(date); err != nil {
		return "", err
	}
	return date, nil
}
