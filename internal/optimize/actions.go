package optimize

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dtnitsch/llm-content-optimizer/internal/common"
	"github.com/dtnitsch/llm-content-optimizer/models"
	"github.com/dtnitsch/llm-content-optimizer/pkg/artifacts"
	"github.com/dtnitsch/llm-content-optimizer/pkg/db"
	"github.com/dtnitsch/llm-content-optimizer/pkg/optimizer"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// RunOutput is the stdout envelope for a single-input invocation.
type RunOutput struct {
	Summary models.RunSummary `json:"summary" yaml:"summary"`
	Report  *models.Report    `json:"report,omitempty" yaml:"report,omitempty"`
}

func OptimizeAction(c *cli.Context) error {
	logger := newLogger(c.Bool("quiet"), "")

	source := c.Args().First()
	if source == "" {
		fmt.Fprintln(os.Stderr, "Error: No input provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  lco optimize page.html")
		fmt.Fprintln(os.Stderr, "  curl -s https://example.com | lco optimize -")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: lco optimize --help")
		os.Exit(1)
	}

	appCfg, optCfg, err := loadConfigs(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	logger = newLogger(c.Bool("quiet"), appCfg.LogLevel)

	database := openDatabase(appCfg, logger)
	if database != nil {
		defer database.Close()
	}

	p, err := newPipeline(logger, appCfg, optCfg, database, c.Bool("force"))
	if err != nil {
		logger.Error("failed to initialize pipeline", "error", err)
		os.Exit(2)
	}

	result := p.process(1, Job{
		Source: source,
		URL:    c.String("url"),
		Title:  c.String("title"),
		Query:  c.String("query"),
	}, 0)

	if c.Bool("print-html") {
		if result.Error != nil {
			logger.Error("optimization failed", "source", source, "error", result.Error)
			os.Exit(2)
		}
		fmt.Println(string(result.Optimized))
		return nil
	}

	var outputData []byte
	var marshalErr error
	if fields := c.String("fields"); fields != "" && result.Report != nil {
		outputData, marshalErr = marshalOutput(c.String("output"), common.FilterFields(result.Report, fields))
	} else {
		outputData, marshalErr = marshalOutput(c.String("output"), RunOutput{
			Summary: BuildRunSummary(result),
			Report:  result.Report,
		})
	}
	if marshalErr != nil {
		logger.Error("failed to marshal output", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	if result.Error != nil {
		os.Exit(2)
	}
	return nil
}

func BatchAction(c *cli.Context) error {
	logger := newLogger(c.Bool("quiet"), "")
	startTime := time.Now()

	inputsPath := c.String("inputs")
	if inputsPath == "" {
		fmt.Fprintln(os.Stderr, "Error: No batch inputs file provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  lco batch --inputs inputs.yaml")
		fmt.Fprintln(os.Stderr, "  lco batch --inputs inputs.yaml --workers 8 --force")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: lco batch --help")
		os.Exit(1)
	}

	bf, err := LoadBatchFile(inputsPath)
	if err != nil {
		logger.Error("failed to load batch file", "error", err)
		os.Exit(2)
	}

	appCfg, optCfg, err := loadConfigs(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	logger = newLogger(c.Bool("quiet"), appCfg.LogLevel)

	workerCount := appCfg.Workers
	if c.IsSet("workers") {
		workerCount = c.Int("workers")
	}

	database := openDatabase(appCfg, logger)
	if database != nil {
		defer database.Close()
	}

	batchKey := artifacts.GenerateBatchID(bf.Sources())
	var batchID int64
	if database != nil {
		batchID, err = database.InsertBatch(batchKey, len(bf.Inputs))
		if err != nil {
			logger.Warn("Failed to record batch in database", "error", err)
			batchID = 0
		}
	}
	logger.Info("Batch starting", "batch_id", batchKey, "inputs", len(bf.Inputs))

	p, err := newPipeline(logger, appCfg, optCfg, database, c.Bool("force"))
	if err != nil {
		logger.Error("failed to initialize pipeline", "error", err)
		os.Exit(2)
	}

	allResults, finalWordCounts, runErr := p.run(bf.Jobs(), workerCount, batchID)

	summary := BuildBatchSummary(batchKey, allResults, finalWordCounts)
	summaryPath, err := writeBatchArtifacts(logger, p.store, summary, bf.Sources())
	if err != nil {
		logger.Error("failed to write batch artifacts", "error", err)
		os.Exit(2)
	}

	if database != nil && batchID > 0 {
		if err := database.FinishBatch(batchID, summary.Optimized, summary.Skipped, summary.Failed); err != nil {
			logger.Warn("Failed to finish batch in database", "error", err)
		}
	}

	stats := Stats{
		TotalInputs:      summary.TotalInputs,
		Optimized:        summary.Optimized,
		Skipped:          summary.Skipped,
		Failed:           summary.Failed,
		TotalTimeSeconds: time.Since(startTime).Seconds(),
		TopKeywords:      summary.AggregateKeywords,
	}

	status := "success"
	if runErr != nil {
		status = "partial_failure"
	}

	fields := c.String("fields")
	var outputData []byte
	var marshalErr error
	if c.String("summary") == "v2" {
		// Terse rows trade readability for tokens when the batch output is
		// itself fed to an LLM.
		terseResults := make([]RunSummaryTerse, len(summary.Results))
		for i, r := range summary.Results {
			terseResults[i] = ToTerseResult(r)
		}
		terseOutput := &FinalOutputTerse{Status: status, Stats: ToTerseStats(stats)}
		if fields != "" {
			filtered := make([]map[string]interface{}, len(terseResults))
			for i, r := range terseResults {
				filtered[i] = common.FilterFields(r, fields)
			}
			terseOutput.Results = filtered
		} else {
			terseOutput.Results = terseResults
		}
		outputData, marshalErr = marshalOutput(c.String("output"), terseOutput)
	} else {
		finalOutput := &FinalOutput{Status: status, Stats: stats}
		if fields != "" {
			filtered := make([]map[string]interface{}, len(summary.Results))
			for i, r := range summary.Results {
				filtered[i] = common.FilterFields(r, fields)
			}
			finalOutput.Results = filtered
		} else {
			finalOutput.Results = summary.Results
		}
		outputData, marshalErr = marshalOutput(c.String("output"), finalOutput)
	}
	if marshalErr != nil {
		logger.Error("failed to marshal final output", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))
	fmt.Fprintf(os.Stderr, "Batch %s: %d/%d optimized\nSummary: %s\n",
		batchKey, summary.Optimized, summary.TotalInputs, summaryPath)

	if stats.Failed == stats.TotalInputs {
		os.Exit(2)
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}

	return nil
}

// newLogger builds the JSON stderr logger. --quiet wins over the config's
// log level.
func newLogger(quiet bool, level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// loadConfigs resolves the app config file and applies its optimizer
// overrides on top of the defaults.
func loadConfigs(c *cli.Context) (models.AppConfig, optimizer.Config, error) {
	appCfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return appCfg, optimizer.Config{}, err
	}
	if c.IsSet("results-dir") {
		appCfg.ResultsDir = c.String("results-dir")
	}
	return appCfg, ApplyOverrides(optimizer.DefaultConfig(), appCfg.Optimize), nil
}

// ApplyOverrides overlays the config file's optimizer settings; unset keys
// keep their defaults.
func ApplyOverrides(cfg optimizer.Config, o models.OptimizeOverrides) optimizer.Config {
	if o.Enabled != nil {
		cfg.Enabled = *o.Enabled
	}
	if o.MinTextLength != nil {
		cfg.MinTextLength = *o.MinTextLength
	}
	if o.MaxFeatures != nil {
		cfg.MaxFeatures = *o.MaxFeatures
	}
	if o.MinDF != nil {
		cfg.MinDF = *o.MinDF
	}
	if o.MaxDF != nil {
		cfg.MaxDF = *o.MaxDF
	}
	if o.ScoreFloor != nil {
		cfg.ScoreFloor = *o.ScoreFloor
	}
	if o.ContentRatio != nil {
		cfg.ContentRatio = *o.ContentRatio
	}
	if o.MinKeepK != nil {
		cfg.MinKeepK = *o.MinKeepK
	}
	if o.PercentileThreshold != nil {
		cfg.PercentileThreshold = *o.PercentileThreshold
	}
	if o.MaxLinkDensity != nil {
		cfg.MaxLinkDensity = *o.MaxLinkDensity
	}
	if o.MinAlphanumericRatio != nil {
		cfg.MinAlphanumericRatio = *o.MinAlphanumericRatio
	}
	if o.EnableCJKSegmentation != nil {
		cfg.EnableCJKSegmentation = *o.EnableCJKSegmentation
	}
	return cfg
}

// openDatabase opens the run history database. History is an aid, not a
// requirement; when it cannot be opened the run proceeds without it.
func openDatabase(appCfg models.AppConfig, logger *slog.Logger) *db.DB {
	var database *db.DB
	var err error
	if appCfg.DBPath != "" {
		database, err = db.OpenPath(appCfg.DBPath)
	} else {
		database, err = db.Open()
	}
	if err != nil {
		logger.Warn("Run history database unavailable", "error", err)
		return nil
	}
	return database
}

func marshalOutput(format string, v interface{}) ([]byte, error) {
	if strings.ToLower(format) == "json" {
		return json.MarshalIndent(v, "", "  ")
	}
	return yaml.Marshal(v)
}
