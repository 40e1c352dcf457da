package optimize

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dtnitsch/llm-content-optimizer/internal/common"
	"github.com/dtnitsch/llm-content-optimizer/models"
	"github.com/dtnitsch/llm-content-optimizer/pkg/analytics"
	"github.com/dtnitsch/llm-content-optimizer/pkg/artifacts"
	"github.com/dtnitsch/llm-content-optimizer/pkg/caching"
	"github.com/dtnitsch/llm-content-optimizer/pkg/db"
	"github.com/dtnitsch/llm-content-optimizer/pkg/detector"
	"github.com/dtnitsch/llm-content-optimizer/pkg/extract"
	"github.com/dtnitsch/llm-content-optimizer/pkg/mapreduce"
	"github.com/dtnitsch/llm-content-optimizer/pkg/optimizer"
	"github.com/dtnitsch/llm-content-optimizer/pkg/segmenter"
	"gopkg.in/yaml.v3"
)

// pipeline bundles the stages and stores shared by every worker.
type pipeline struct {
	logger    *slog.Logger
	opt       *optimizer.Optimizer
	extractor extract.Extractor
	det       *detector.Detector
	an        *analytics.Analytics
	cache     *caching.Cache
	store     *artifacts.Manager
	database  *db.DB
	cfgDigest string
	force     bool
}

func newPipeline(logger *slog.Logger, appCfg models.AppConfig, optCfg optimizer.Config, database *db.DB, force bool) (*pipeline, error) {
	store, err := artifacts.NewManager(appCfg.ResultsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize results store: %w", err)
	}

	cache, err := caching.NewCache(appCfg.CacheDir, time.Duration(appCfg.CacheTTLHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	var seg optimizer.Segmenter
	if optCfg.EnableCJKSegmentation {
		s, segErr := segmenter.New()
		if segErr != nil {
			logger.Warn("CJK segmenter unavailable, using bigram fallback", "error", segErr)
		} else {
			seg = s
		}
	}

	// The cache key includes a config digest so tuning changes invalidate
	// stored runs.
	cfgYAML, err := yaml.Marshal(optCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to digest config: %w", err)
	}

	return &pipeline{
		logger:    logger,
		opt:       optimizer.New(optCfg, seg),
		extractor: extract.NewReadability(),
		det:       detector.New(),
		an:        &analytics.Analytics{},
		cache:     cache,
		store:     store,
		database:  database,
		cfgDigest: common.ContentHash(cfgYAML),
		force:     force,
	}, nil
}

func (p *pipeline) run(jobs []Job, workerCount int, batchID int64) ([]Result, map[string]int, error) {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}

	p.logger.Info("Starting concurrent optimize phase", "input_count", len(jobs), "workers", workerCount, "force", p.force)
	var wg sync.WaitGroup
	jobsCh := make(chan Job, len(jobs))
	resultsCh := make(chan Result, len(jobs))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go p.worker(w, batchID, &wg, jobsCh, resultsCh)
	}

	for _, job := range jobs {
		jobsCh <- job
	}
	close(jobsCh)

	wg.Wait()
	close(resultsCh)
	p.logger.Info("All optimize workers finished")

	allResults := make([]Result, 0, len(jobs))
	var runErr error
	for result := range resultsCh {
		allResults = append(allResults, result)
		if result.Error != nil {
			runErr = fmt.Errorf("one or more inputs failed")
		}
	}

	p.logger.Info("Starting MapReduce phase")
	intermediateResults := []map[string]int{}
	for _, result := range allResults {
		if result.WordCounts != nil {
			intermediateResults = append(intermediateResults, result.WordCounts)
		}
	}
	finalWordCounts := mapreduce.Reduce(intermediateResults)

	return allResults, finalWordCounts, runErr
}

func (p *pipeline) worker(id int, batchID int64, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		p.logger.Info("Worker started job", "worker_id", id, "source", job.Source)
		result := p.process(id, job, batchID)
		results <- result
		p.logger.Info("Worker finished job", "worker_id", id, "source", job.Source, "status", result.Status)
	}
}

func (p *pipeline) process(id int, job Job, batchID int64) Result {
	result := Result{Job: job}

	raw, err := readInput(job.Source)
	if err != nil {
		p.logger.Error("Error reading input", "worker_id", id, "source", job.Source, "error", err)
		result.Status = models.OptimizationFailed
		result.Error = err
		result.ErrorType = "read_error"
		p.recordRun(result, batchID)
		return result
	}
	result.InputBytes = int64(len(raw))
	result.ContentHash = common.ContentHash(raw)

	// URLs are metadata for scoring and reports; a broken one is dropped,
	// never fatal.
	pageURL := ""
	if job.URL != "" {
		cleaned := common.SanitizeURL(job.URL)
		if common.IsValidURL(cleaned) {
			pageURL = cleaned
		} else {
			p.logger.Warn("Dropping invalid URL metadata", "worker_id", id, "source", job.Source, "url", job.URL)
		}
	}

	result.RunID = artifacts.RunID(firstNonEmpty(pageURL, job.Source))

	cacheKey := result.ContentHash + ":" + p.cfgDigest
	if !p.force {
		if data, ok := p.cache.Get(cacheKey); ok {
			var cached cachedRun
			if err := yaml.Unmarshal(data, &cached); err == nil {
				p.logger.Info("Cache hit, replaying stored run", "worker_id", id, "source", job.Source)
				result.Status = StatusSkipped
				result.Report = &cached.Report
				result.Optimized = []byte(cached.OptimizedHTML)
				result.RunDir = p.store.RunDir(result.RunID)
				result.WordCounts = p.outputKeywords(cached.OptimizedHTML)
				return result
			}
		}
	}

	title := job.Title
	if extracted, extErr := p.extractor.Extract(string(raw), pageURL); extErr == nil {
		if title == "" {
			title = extracted.Title
		}
		lang := p.det.Analyze(extracted.Text)
		result.Language = lang.Language
		result.LanguageConfidence = lang.Confidence
		p.logger.Info("Analyzed input", "worker_id", id, "source", job.Source,
			"language", lang.Language, "script", lang.Script, "cjk_ratio", lang.CJKRatio)
	} else {
		p.logger.Warn("Readability extraction failed, continuing without metadata",
			"worker_id", id, "source", job.Source, "error", extErr)
	}

	out, report := p.opt.Optimize(string(raw), optimizer.Request{
		URL:   pageURL,
		Title: title,
		Query: job.Query,
	})
	result.Report = &report
	result.Optimized = []byte(out)
	result.Status = report.Optimization

	if report.Optimization == models.OptimizationFailed {
		result.Error = fmt.Errorf("optimization failed: %s", report.Error)
		result.ErrorType = "optimize_error"
	} else {
		result.WordCounts = p.outputKeywords(out)
	}

	p.persist(id, &result, cacheKey)
	p.recordRun(result, batchID)

	return result
}

// persist writes the run artifacts and caches successful optimizations.
func (p *pipeline) persist(id int, result *Result, cacheKey string) {
	if result.Report == nil {
		return
	}

	reportYAML, err := yaml.Marshal(result.Report)
	if err != nil {
		p.logger.Warn("Failed to marshal report", "worker_id", id, "source", result.Job.Source, "error", err)
		return
	}

	runDir, err := p.store.WriteRun(result.RunID, result.Optimized, reportYAML)
	if err != nil {
		p.logger.Warn("Failed to write run artifacts", "worker_id", id, "source", result.Job.Source, "error", err)
		return
	}
	result.RunDir = runDir

	if result.Status == models.OptimizationApplied {
		envelope, err := yaml.Marshal(cachedRun{
			OptimizedHTML: string(result.Optimized),
			Report:        *result.Report,
		})
		if err == nil {
			if err := p.cache.Set(cacheKey, envelope); err != nil {
				p.logger.Warn("Failed to cache run", "worker_id", id, "source", result.Job.Source, "error", err)
			}
		}
	}
}

// recordRun inserts the run into the history database. Failures are logged,
// never fatal. Cache replays are not recorded; they did no new work.
func (p *pipeline) recordRun(result Result, batchID int64) {
	if p.database == nil {
		return
	}

	rec := db.RunRecord{
		BatchID:      db.NewNullInt64(batchID),
		Source:       result.Job.Source,
		ContentHash:  result.ContentHash,
		Optimization: result.Status,
		InputBytes:   result.InputBytes,
		OutputBytes:  int64(len(result.Optimized)),
	}
	if result.Error != nil {
		rec.ErrorMessage = db.NewNullString(result.Error.Error())
	}
	if r := result.Report; r != nil {
		rec.URL = db.NewNullString(r.URL)
		rec.Optimization = r.Optimization
		rec.ScoringMode = db.NewNullString(r.ScoringMode)
		rec.ScoreThreshold = db.NewNullFloat64(r.ScoreThreshold)
		rec.CandidateBlocks = int64(r.Stages.Candidates)
		rec.SelectedBlocks = int64(r.Stages.Selected)
		rec.DurationMS = r.DurationMS
		if r.Error != "" {
			rec.ErrorMessage = db.NewNullString(r.Error)
		}
	}

	if _, err := p.database.InsertRun(rec); err != nil {
		p.logger.Warn("Failed to record run in database", "source", result.Job.Source, "error", err)
	}
}

// outputKeywords counts content words in the optimized page for summaries.
func (p *pipeline) outputKeywords(optimizedHTML string) map[string]int {
	plain, err := extract.Plain{}.Extract(optimizedHTML, "")
	if err != nil || plain.Text == "" {
		return nil
	}
	return mapreduce.Map(plain.Text, p.an)
}

// readInput loads the input HTML from a file, or stdin when source is "-".
func readInput(source string) ([]byte, error) {
	var data []byte
	var err error
	if source == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("input %s is empty", source)
	}
	return data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
