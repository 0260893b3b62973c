package srcfix

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// BackupFunc is called with a file's pre-run content just before write-back,
// so the caller can record undo state.
type BackupFunc func(path string, content []byte)

// Runner applies catalog jobs file by file. Each file is independent: a read
// or write failure is recorded in that file's report and the batch moves on.
type Runner struct {
	resolver *PathResolver
	log      *zap.Logger
	dryRun   bool
	backup   BackupFunc
	progress func(current, total int)
}

func NewRunner(resolver *PathResolver, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{resolver: resolver, log: log}
}

func (r *Runner) SetDryRun(dryRun bool)         { r.dryRun = dryRun }
func (r *Runner) SetBackup(fn BackupFunc)       { r.backup = fn }
func (r *Runner) SetProgress(fn func(int, int)) { r.progress = fn }

// Run processes every job and returns one report per file, never silent.
func (r *Runner) Run(cat *Catalog) []FileReport {
	reports := make([]FileReport, 0, len(cat.Jobs))
	for i, job := range cat.Jobs {
		reports = append(reports, r.runJob(job))
		if r.progress != nil {
			r.progress(i+1, len(cat.Jobs))
		}
	}
	return reports
}

func (r *Runner) runJob(job FileJob) FileReport {
	abs := r.resolver.Resolve(job.Path)
	report := FileReport{Path: abs}

	raw, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			r.log.Warn("file not found, skipped", zap.String("path", abs))
			report.Outcome = OutcomeSkipped
			return report
		}
		r.log.Warn("read failed", zap.String("path", abs), zap.Error(err))
		report.Outcome = OutcomeError
		report.Err = err
		return report
	}

	original := string(raw)
	text := r.transform(original, job, &report)

	if text == original {
		report.Outcome = OutcomeUnchanged
		return report
	}
	report.Outcome = OutcomeFixed

	if r.dryRun {
		diff, err := UnifiedPreview(r.resolver.Rel(abs), original, text)
		if err == nil {
			report.Diff = diff
		}
		return report
	}

	if r.backup != nil {
		r.backup(abs, raw)
	}
	if err := WriteFileAtomic(abs, []byte(text), 0644); err != nil {
		r.log.Warn("write failed", zap.String("path", abs), zap.Error(err))
		report.Outcome = OutcomeError
		report.Err = fmt.Errorf("write back: %w", err)
	}
	return report
}

// transform runs the full per-file pipeline in memory: the useCallback
// import first when any callback spec is present, then every rule in catalog
// order. Structural misses are collected as warnings and the remaining rules
// still run.
func (r *Runner) transform(text string, job FileJob, report *FileReport) string {
	if job.HasWrapRules() {
		patched, _, err := EnsureImport(text, "useCallback")
		if err != nil {
			r.warnf(report, "useCallback import: %v", err)
		}
		text = patched
	}

	for _, rule := range job.Rules {
		if rule.Wrap == nil {
			text = applyRule(text, rule)
			continue
		}

		spec := *rule.Wrap
		patched, applied := WrapCallback(text, spec)
		if !applied {
			r.warnf(report, "callback %s: anchor not found (missing or already wrapped)", spec.Name)
		}
		text = patched

		text, _ = EnsureDep(text, spec.Name)
	}
	return text
}

func (r *Runner) warnf(report *FileReport, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.log.Warn(msg, zap.String("path", report.Path))
	report.Warnings = append(report.Warnings, msg)
}
