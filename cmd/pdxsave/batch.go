package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdxtools/pdxsave"
	"github.com/pdxtools/pdxsave/extract"
	"github.com/pdxtools/pdxsave/internal/config"
	"github.com/pdxtools/pdxsave/internal/worker"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <save-dir>",
		Short: "Process a directory of dated saves into JSON and CSV series",
		Long: `Processes every save in a directory in chronological order, writing one
JSON file per save plus a global_summary.csv time series. A checkpoint
file records processed dates so interrupted runs can resume.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if out, _ := cmd.Flags().GetString("output"); out != "" {
				cfg.OutputDir = out
			}
			if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
				cfg.WorkerCount = workers
			}
			resume, _ := cmd.Flags().GetBool("resume")
			limit, _ := cmd.Flags().GetInt("limit")
			return runBatch(args[0], cfg, resume, limit)
		},
	}
	cmd.Flags().String("output", "", "output directory (default from env)")
	cmd.Flags().Int("workers", 0, "worker count (default from env)")
	cmd.Flags().Bool("resume", false, "skip saves already in the checkpoint")
	cmd.Flags().Int("limit", 0, "process only the first N files")
	return cmd
}

func runBatch(saveDir string, cfg *config.Config, resume bool, limit int) error {
	files, err := discoverSaves(saveDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no save files found in %s", saveDir)
	}
	if limit > 0 && limit < len(files) {
		files = files[:limit]
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	processed := make(map[string]bool)
	if resume {
		processed, err = loadCheckpoint(cfg.CheckpointPath)
		if err != nil {
			return err
		}
		log.Info().Int("done", len(processed)).Msg("Resuming from checkpoint")
	}

	var pending []string
	for _, f := range files {
		if processed[fileDate(f).String()] {
			continue
		}
		pending = append(pending, f)
	}
	log.Info().
		Int("total", len(files)).
		Int("pending", len(pending)).
		Int("workers", cfg.WorkerCount).
		Msg("Processing saves")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool := worker.NewPool(cfg.WorkerCount, processSave)
	results := pool.Execute(ctx, pending)

	var entries []SaveJSON
	failed := 0
	for _, task := range results {
		if task.Err != nil {
			failed++
			continue
		}
		if task.Result == nil {
			continue // cancelled before this slot ran
		}
		entry := *task.Result
		if err := writeSaveJSON(cfg.OutputDir, entry); err != nil {
			return err
		}
		entries = append(entries, entry)
		processed[entry.Date] = true
	}
	log.Info().Int("ok", len(entries)).Int("failed", failed).Msg("Batch finished")

	if err := saveCheckpoint(cfg.CheckpointPath, processed); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool {
		di, _ := parseGameDate(entries[i].Date)
		dj, _ := parseGameDate(entries[j].Date)
		return di.Less(dj)
	})
	return writeGlobalSummary(filepath.Join(cfg.OutputDir, "global_summary.csv"), entries)
}

// discoverSaves lists .txt and .v2 files under dir in chronological
// order of their filename dates.
func discoverSaves(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".txt", ".v2":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return fileDate(files[i]).Less(fileDate(files[j]))
	})
	return files, nil
}

func processSave(_ context.Context, path string) (*SaveJSON, error) {
	doc, err := pdxsave.ParseFile(path, pdxsave.Lenient())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, d := range doc.Diagnostics() {
		log.Warn().Str("file", path).Msg(d.String())
	}
	out := saveJSON(extract.FromDocument(doc))
	log.Debug().Str("file", path).Str("date", out.Date).Msg("Processed save")
	return &out, nil
}

func writeSaveJSON(outputDir string, entry SaveJSON) error {
	name := entry.Date
	if name == "" {
		name = "undated"
	}
	f, err := os.Create(filepath.Join(outputDir, name+".json"))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}

func loadCheckpoint(path string) (map[string]bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(map[string]bool), nil
	}
	if err != nil {
		return nil, err
	}
	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", path, err)
	}
	processed := make(map[string]bool, len(dates))
	for _, d := range dates {
		processed[d] = true
	}
	return processed, nil
}

func saveCheckpoint(path string, processed map[string]bool) error {
	dates := make([]string, 0, len(processed))
	for d := range processed {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	raw, err := json.Marshal(dates)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// writeGlobalSummary writes the world statistics time series in a
// spreadsheet-friendly form.
func writeGlobalSummary(path string, entries []SaveJSON) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"date",
		"total_population",
		"total_pop_money",
		"total_pop_bank_savings",
		"avg_life_needs",
		"avg_everyday_needs",
		"avg_luxury_needs",
		"avg_literacy",
		"avg_consciousness",
		"avg_militancy",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, entry := range entries {
		gs := entry.GlobalStatistics
		row := []string{
			entry.Date,
			strconv.FormatInt(gs.TotalPopulation, 10),
			formatFloat(gs.TotalPopMoney),
			formatFloat(gs.TotalPopBankSaving),
			formatFloat(gs.AvgLifeNeeds),
			formatFloat(gs.AvgEverydayNeeds),
			formatFloat(gs.AvgLuxuryNeeds),
			formatFloat(gs.AvgLiteracy),
			formatFloat(gs.AvgConsciousness),
			formatFloat(gs.AvgMilitancy),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
