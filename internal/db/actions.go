package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/llm-content-optimizer/pkg/artifacts"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, _, err := openFromConfig(c)
	if err != nil {
		return err
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-18s %-12s %10s %10s  %s\n",
		"ID", "Created", "Outcome", "Mode", "In", "Out", "Source")
	fmt.Println(strings.Repeat("-", 110))

	// Print each run
	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-18s %-12s %10d %10d  %s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Optimization,
			r.ScoringMode.String,
			r.InputBytes,
			r.OutputBytes,
			r.Source,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'lco db run <id>' to see details\n")

	return nil
}

// RunAction shows details for a specific run
func RunAction(c *cli.Context) error {
	database, appCfg, err := openFromConfig(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run not found: %d", runID)
	}

	// Print run details
	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Source:      %s\n", run.Source)
	if run.URL.Valid {
		fmt.Printf("URL:         %s\n", run.URL.String)
	}
	fmt.Printf("Outcome:     %s\n", run.Optimization)
	if run.ScoringMode.Valid {
		fmt.Printf("Mode:        %s", run.ScoringMode.String)
		if run.ScoreThreshold.Valid {
			fmt.Printf(" (threshold %.4f)", run.ScoreThreshold.Float64)
		}
		fmt.Println()
	}
	fmt.Printf("Blocks:      %d candidates, %d selected\n", run.CandidateBlocks, run.SelectedBlocks)
	if run.InputBytes > 0 && run.OutputBytes > 0 {
		reduction := 100 * (1 - float64(run.OutputBytes)/float64(run.InputBytes))
		fmt.Printf("Bytes:       %d in, %d out (%.1f%% reduction)\n",
			run.InputBytes, run.OutputBytes, reduction)
	}
	fmt.Printf("Duration:    %dms\n", run.DurationMS)
	if run.BatchID.Valid {
		fmt.Printf("Batch:       #%d\n", run.BatchID.Int64)
	}
	if run.ContentHash != "" {
		fmt.Printf("Content:     %s\n", run.ContentHash)
	}
	if run.ErrorMessage.Valid {
		fmt.Printf("Error:       %s\n", run.ErrorMessage.String)
	}

	fmt.Printf("\nArtifacts:   %s\n",
		filepath.Join(appCfg.ResultsDir, artifacts.RunsDir, ArtifactRunID(*run)))
	fmt.Printf("\nTip: Use 'lco db report %d' to see the full report\n", run.RunID)

	return nil
}

// ReportAction retrieves and prints a run's report YAML
func ReportAction(c *cli.Context) error {
	database, appCfg, err := openFromConfig(c)
	if err != nil {
		return err
	}
	defer database.Close()

	dirName, err := ResolveRunDir(c, database)
	if err != nil {
		return err
	}

	filePath := filepath.Join(appCfg.ResultsDir, artifacts.RunsDir, dirName, artifacts.ReportName)
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("report not found for run: %s\n\nThis input may not have been optimized yet. Try:\n  lco optimize <file>", dirName)
		}
		return fmt.Errorf("failed to read report: %w", err)
	}

	// Print run reminder as YAML comment
	fmt.Printf("# Run: %s\n", dirName)
	fmt.Print(string(data))

	return nil
}

// HTMLAction prints a run's optimized HTML by ID or source
func HTMLAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("run ID or source required\nUsage: lco db html <run_id_or_source>\nExample: lco db html 123 OR lco db html 6,7,8 OR lco db html page.html")
	}

	database, appCfg, err := openFromConfig(c)
	if err != nil {
		return err
	}
	defer database.Close()

	arg := c.Args().First()

	// Check if argument contains comma (batch mode)
	if strings.Contains(arg, ",") {
		ids := strings.Split(arg, ",")

		for i, id := range ids {
			dirName, err := ResolveRunDirName(strings.TrimSpace(id), database)
			if err != nil {
				return fmt.Errorf("failed to resolve ID %s: %w", id, err)
			}

			filePath := filepath.Join(appCfg.ResultsDir, artifacts.RunsDir, dirName, artifacts.OptimizedHTMLName)
			data, err := os.ReadFile(filepath.Clean(filePath))
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("optimized HTML not found for run: %s\n\nThis input may not have been optimized yet. Try:\n  lco optimize <file>", dirName)
				}
				return fmt.Errorf("failed to read file for %s: %w", dirName, err)
			}

			if i > 0 {
				fmt.Print("\n<!-- ===== Next run ===== -->\n\n")
			}
			fmt.Print(string(data))
		}
		return nil
	}

	// Single ID/source mode
	dirName, err := ResolveRunDirName(arg, database)
	if err != nil {
		return err
	}

	filePath := filepath.Join(appCfg.ResultsDir, artifacts.RunsDir, dirName, artifacts.OptimizedHTMLName)
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("optimized HTML not found for run: %s\n\nThis input may not have been optimized yet. Try:\n  lco optimize <file>", dirName)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	fmt.Print(string(data))
	return nil
}

func BatchesAction(c *cli.Context) error {
	database, _, err := openFromConfig(c)
	if err != nil {
		return err
	}
	defer database.Close()

	limit := c.Int("limit")
	batches, err := database.ListBatches(limit)
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}

	if len(batches) == 0 {
		fmt.Println("No batches found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-32s %-20s %-8s %-10s %-8s %-8s\n",
		"ID", "Batch Key", "Created", "Inputs", "Optimized", "Skipped", "Failed")
	fmt.Println(strings.Repeat("-", 100))

	// Print each batch
	for _, b := range batches {
		fmt.Printf("%-6d %-32s %-20s %-8d %-10d %-8d %-8d\n",
			b.BatchID,
			b.BatchKey,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.InputCount,
			b.OptimizedCount,
			b.SkippedCount,
			b.FailedCount,
		)
	}

	fmt.Printf("\nTotal: %d batches\n", len(batches))
	fmt.Printf("\nTip: Use 'lco db batch <id>' to see a batch's runs\n")

	return nil
}

// BatchAction shows the runs recorded for one batch
func BatchAction(c *cli.Context) error {
	database, _, err := openFromConfig(c)
	if err != nil {
		return err
	}
	defer database.Close()

	if c.NArg() == 0 {
		return fmt.Errorf("batch ID required\nUsage: lco db batch <id>\nTip: Use 'lco db batches' to list batch IDs")
	}

	var batchID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &batchID); err != nil {
		return fmt.Errorf("invalid batch ID: %s", c.Args().First())
	}

	runs, err := database.ListBatchRuns(batchID)
	if err != nil {
		return fmt.Errorf("failed to list batch runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No runs found for batch %d\n", batchID)
		return nil
	}

	fmt.Printf("Batch %d (%d runs)\n", batchID, len(runs))
	fmt.Println(strings.Repeat("-", 60))
	for i, r := range runs {
		fmt.Printf("%2d. [%s] %s\n", i+1, r.Optimization, r.Source)
		if r.ErrorMessage.Valid {
			fmt.Printf("    Error: %s\n", r.ErrorMessage.String)
		} else {
			fmt.Printf("    Blocks: %d -> %d | Bytes: %d -> %d | %dms\n",
				r.CandidateBlocks, r.SelectedBlocks, r.InputBytes, r.OutputBytes, r.DurationMS)
		}
	}

	return nil
}

func StatsAction(c *cli.Context) error {
	database, _, err := openFromConfig(c)
	if err != nil {
		return err
	}
	defer database.Close()

	stats, err := database.GetStats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if stats.TotalRuns == 0 {
		fmt.Println("No runs recorded yet")
		fmt.Println("\nTip: Run 'lco optimize <file>' to get started")
		return nil
	}

	fmt.Println("Run history")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total runs:      %d\n", stats.TotalRuns)
	fmt.Printf("  optimized:     %d\n", stats.Optimized)
	fmt.Printf("  disabled:      %d\n", stats.Disabled)
	fmt.Printf("  no content:    %d\n", stats.NoContentBlocks)
	fmt.Printf("  failed:        %d\n", stats.Failed)
	fmt.Printf("Batches:         %d\n", stats.TotalBatches)
	fmt.Printf("Avg duration:    %.0fms\n", stats.AvgDurationMS)
	if stats.AvgReduction > 0 {
		fmt.Printf("Avg reduction:   %.1f%%\n", stats.AvgReduction*100)
	}
	fmt.Printf("\nDatabase: %s\n", database.Path())

	return nil
}
