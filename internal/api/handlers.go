package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dtnitsch/llm-content-optimizer/internal/common"
	"github.com/dtnitsch/llm-content-optimizer/models"
	"github.com/dtnitsch/llm-content-optimizer/pkg/extract"
	"github.com/dtnitsch/llm-content-optimizer/pkg/optimizer"
)

// OptimizeRequest is the /optimize request body.
type OptimizeRequest struct {
	HTML  string `json:"html"`
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
	Query string `json:"query,omitempty"`
}

// OptimizeResponse carries the filtered page and its report.
type OptimizeResponse struct {
	Optimization string        `json:"optimization"`
	HTML         string        `json:"html,omitempty"`
	Language     string        `json:"language,omitempty"`
	Report       models.Report `json:"report"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		jsonError(w, "html is required", http.StatusBadRequest)
		return
	}

	// Metadata only; nothing is fetched. A bad URL is dropped, not fatal.
	if req.URL != "" {
		cleaned := common.SanitizeURL(req.URL)
		if common.IsValidURL(cleaned) {
			req.URL = cleaned
		} else {
			s.log.Warn("dropping invalid url", "url", req.URL)
			req.URL = ""
		}
	}

	start := time.Now()
	out, report := s.opt.Optimize(req.HTML, optimizer.Request{
		URL:   req.URL,
		Title: req.Title,
		Query: req.Query,
	})
	optimizeDuration.Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(report.Optimization).Inc()
	inputBytes.Add(float64(len(req.HTML)))
	outputBytes.Add(float64(len(out)))

	resp := OptimizeResponse{
		Optimization: report.Optimization,
		Report:       report,
	}
	if report.Optimization != models.OptimizationFailed {
		resp.HTML = out
	}
	if plain, err := (extract.Plain{}).Extract(req.HTML, req.URL); err == nil {
		resp.Language = s.det.Analyze(plain.Text).Language
	}

	status := http.StatusOK
	if report.Optimization == models.OptimizationFailed {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
