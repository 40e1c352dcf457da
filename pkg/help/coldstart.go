package help

const ColdstartYAML = `# llm-content-optimizer Quick Start

what_it_does: |
  Pre-filters noisy HTML into a compact, content-dense page before it is
  handed to an LLM parser. Input is local HTML (file or stdin); nothing is
  ever fetched from the network.

scoring_modes:
  coverage: "No query given: score blocks against the page centroid (default)"
  query: "Score blocks against --query (or the page title when present)"
  structural: "Fallback when the corpus is too small or degenerate for TF-IDF"

commands:
  basic_optimize: |
    lco optimize page.html

  optimize_stdin: |
    curl -s https://example.com | lco optimize -

  with_query: |
    lco optimize page.html --query "goroutine scheduler"

  with_metadata: |
    lco optimize page.html --url "https://example.com/post" --title "Scheduling in Go"

  json_output: |
    lco optimize page.html --output json

  report_only_fields: |
    lco optimize page.html --fields "optimization,stages,scoring_mode"

  batch: |
    lco batch --inputs inputs.yaml --workers 4

  analyze_results: |
    lco analyze

  serve: |
    lco serve --addr :8080
    curl -s localhost:8080/optimize -d '{"html": "<html>...</html>"}'

  db_commands: |
    lco db runs
    lco db run 5
    lco db report 5
    lco db html page.html
    lco db batches
    lco db stats

key_files:
  - "lco-results/FIELDS.yaml (report field reference)"
  - "lco-results/index.yaml (all batches)"
  - "lco-results/runs/{run-id}/optimized.html (the filtered page)"
  - "lco-results/runs/{run-id}/report.yaml (what was kept and why)"
  - "lco-results/batches/{batch-id}/summary.yaml (batch rollup)"

batch_input_format: |
  # inputs.yaml
  inputs:
    - path: pages/scheduler.html
      url: https://example.com/scheduler   # optional metadata
      title: Scheduling in Go              # optional, used as query
    - path: pages/gc.html
      query: garbage collector             # optional, overrides title

run_system:
  - "Runs tracked in SQLite next to the binary"
  - "Run IDs on disk: {slug}-{hash} derived from the source"
  - "Same content + same config = cache hit, run recorded as skipped"
  - "Use 'lco db runs' to list recent runs"
  - "Use 'lco db run <id>' for one run's details"

query_examples:
  list_recent_runs: 'lco db runs'
  show_run_5: 'lco db run 5'
  aggregate_stats: 'lco db stats'
  failed_runs_only: 'yq ".[] | select(.optimization == \"failed\")" lco-results/runs/*/report.yaml'
  structural_fallbacks: 'yq "select(.scoring_mode == \"structural\")" lco-results/runs/*/report.yaml'

error_behavior:
  - "Unreadable inputs: fail fast before optimizing"
  - "Optimization never panics; failures land in the report as optimization: failed"
  - "Exit codes: 0=success, 1=partial failure, 2=complete failure"
`
