package help

const ColdstartYAML = `# hwp-bridge Quick Start

workflow:
  scan: "Hash local .hwp files into corpus/manifest.json (metadata only)"
  label: "Hand-edit category A/B/C per item in the manifest"
  gate: "Run the hwp binary over the corpus and enforce thresholds"

commands:
  first_scan: |
    hwp-bridge scan

  run_gate: |
    hwp-bridge gate

  gate_with_markdown: |
    hwp-bridge gate --check-markdown

  smoke_run: |
    # Quick sanity pass over a handful of files, no size gate
    hwp-bridge gate --max-files 5 --min-corpus-size 0

  ci_run: |
    hwp-bridge gate --ci --quiet

  parallel_run: |
    hwp-bridge gate --workers 4

categories:
  A: "Must-pass documents, default minimum success rate 0.95"
  B: "Expected-pass documents, default minimum success rate 0.85"
  C: "Best-effort documents, default minimum success rate 0.80"
  _: "Unlabeled documents, tracked in the summary but never gated"

key_files:
  - "corpus/manifest.json (hashes + labels, safe to commit)"
  - "corpus/local/ (your .hwp files, keep gitignored)"
  - "reports/v1_gate/<timestamp>_summary.json (run summary)"
  - "reports/v1_gate/<timestamp>_details.jsonl (one line per file)"

per_file_checks:
  - "hwp info once: surfaces encrypted/distribution documents early"
  - "hwp json twice: outputs must hash-match (determinism)"
  - "hwp markdown twice when --check-markdown is set"

failure_types:
  encrypted: "Output mentions encrypted/encryption"
  distribution: "Output mentions distribution (DRM) documents"
  size_limit: "Output mentions a size limit being exceeded"
  timeout: "Invocation exceeded --timeout, exit code 124"
  parse_error: "Everything else"

labeling_example: |
  # In corpus/manifest.json, set the category field per item:
  #   "category": "A"
  # Rescans preserve categories, flags, source, and notes.

exit_codes:
  - "0: thresholds met"
  - "2: thresholds not met (summary printed to stdout)"
  - "3: setup missing (corpus dir, .hwp files, or hwp binary)"
`
