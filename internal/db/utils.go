package db

import (
	"fmt"

	"github.com/dtnitsch/llm-content-optimizer/models"
	"github.com/dtnitsch/llm-content-optimizer/pkg/artifacts"
	dbpkg "github.com/dtnitsch/llm-content-optimizer/pkg/db"
	"github.com/urfave/cli/v2"
)

// openFromConfig opens the run history database at the configured path.
func openFromConfig(c *cli.Context) (*dbpkg.DB, models.AppConfig, error) {
	appCfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, appCfg, err
	}

	var database *dbpkg.DB
	if appCfg.DBPath != "" {
		database, err = dbpkg.OpenPath(appCfg.DBPath)
	} else {
		database, err = dbpkg.Open()
	}
	if err != nil {
		return nil, appCfg, fmt.Errorf("failed to open database: %w", err)
	}
	return database, appCfg, nil
}

// GetRunIDOrLatest returns the run ID from args, or the most recent run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		// No run ID provided, use latest
		runs, err := database.ListRuns(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return 0, fmt.Errorf("no runs found. Run 'lco optimize <file>' first")
		}
		return runs[0].RunID, nil
	}

	// Parse provided run ID
	var runID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &runID); err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}

// ArtifactRunID reconstructs the on-disk run directory name for a recorded
// run. Runs are keyed by URL when one was given, source path otherwise.
func ArtifactRunID(run dbpkg.RunRecord) string {
	if run.URL.Valid && run.URL.String != "" {
		return artifacts.RunID(run.URL.String)
	}
	return artifacts.RunID(run.Source)
}

// ResolveRunDirName maps a command-line argument to an on-disk run directory
// name. Numeric IDs are looked up in the database; anything else is treated
// as a source and hashed the same way the optimizer named it.
func ResolveRunDirName(arg string, database *dbpkg.DB) (string, error) {
	var runID int64
	if _, err := fmt.Sscanf(arg, "%d", &runID); err == nil {
		run, err := database.GetRun(runID)
		if err != nil {
			return "", err
		}
		if run == nil {
			return "", fmt.Errorf("run not found: %d", runID)
		}
		return ArtifactRunID(*run), nil
	}
	return artifacts.RunID(arg), nil
}

// ResolveRunDir resolves the command's argument to a run directory name,
// falling back to the most recent run when no argument is given.
func ResolveRunDir(c *cli.Context, database *dbpkg.DB) (string, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return "", fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return "", fmt.Errorf("no runs found. Run 'lco optimize <file>' first")
		}
		return ArtifactRunID(runs[0]), nil
	}
	return ResolveRunDirName(c.Args().First(), database)
}
