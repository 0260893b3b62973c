package srcfix

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"
)

type Config struct {
	CatalogPath string
	Base        string
	DryRun      bool
	Undo        bool
	Redo        bool
	NoNvim      bool
	Extensions  []string
	Files       []string
}

type ProgressUpdate func(current, total int)

type App struct {
	cfg              *Config
	log              *zap.Logger
	sourceProvider   *SourceProvider
	fileManager      *FileManager
	progressCallback ProgressUpdate
	reports          []FileReport
}

type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

func NewApp(cfg *Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		cfg:            cfg,
		log:            log,
		sourceProvider: NewSourceProvider(),
		fileManager:    NewFileManager(),
	}, nil
}

func (a *App) SetProgressCallback(cb ProgressUpdate) { a.progressCallback = cb }

// Reports returns the per-file records of the last Execute call, including
// dry-run diffs.
func (a *App) Reports() []FileReport { return a.reports }

func (a *App) Execute() (summary Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()

	switch {
	case a.cfg.Undo:
		return a.undoLastRun()
	case a.cfg.Redo:
		return a.redoLastRun()
	default:
		return a.runBatch()
	}
}

func (a *App) runBatch() (Summary, error) {
	cat, err := a.loadCatalog()
	if err != nil {
		return Summary{}, err
	}
	if cat == nil || len(cat.Jobs) == 0 {
		return Summary{Message: "Nothing to do"}, nil
	}

	return a.ApplyCatalog(cat)
}

// ApplyCatalog runs an already-parsed catalog. This is the library surface;
// the CLI path goes through Execute.
func (a *App) ApplyCatalog(cat *Catalog) (Summary, error) {
	base := a.cfg.Base
	if base == "" {
		base = cat.Base
	}
	resolver, err := NewPathResolver(base)
	if err != nil {
		return Summary{}, err
	}

	jobs := a.filterJobs(cat.Jobs, resolver)
	if len(jobs) == 0 {
		return Summary{Message: "Nothing to do"}, nil
	}

	sm, err := NewStateManager(resolver.Base())
	if err != nil {
		return Summary{}, err
	}

	oldHashes := make(map[string]string)
	runner := NewRunner(resolver, a.log)
	runner.SetDryRun(a.cfg.DryRun)
	runner.SetProgress(a.reportProgress)
	runner.SetBackup(func(path string, content []byte) {
		if _, ok := oldHashes[path]; ok {
			return
		}
		h := hashBytes(content)
		oldHashes[path] = h
		_ = WriteBlob(sm.StateDir, h, content)
	})

	a.reports = runner.Run(&Catalog{Base: cat.Base, Jobs: jobs})
	s := a.summarize(a.reports)

	if !a.cfg.DryRun {
		sm.Write(sm.CreateOperations(s.Fixed, oldHashes))
		a.reloadBuffers(s.Fixed, &s)
	}

	s.Message = fmt.Sprintf("%d fixed, %d attempted", len(s.Fixed), s.Attempted())
	a.relativizeSummaryPaths(&s)
	return s, nil
}

func (a *App) loadCatalog() (*Catalog, error) {
	if a.cfg.CatalogPath != "" {
		return LoadCatalog(a.cfg.CatalogPath)
	}

	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	return ParseMarkdownCatalog(content)
}

func (a *App) filterJobs(jobs []FileJob, resolver *PathResolver) []FileJob {
	allowed := make(map[string]struct{})
	for _, f := range a.cfg.Files {
		allowed[resolver.Resolve(f)] = struct{}{}
	}

	var out []FileJob
	for _, j := range jobs {
		if !HasAllowedExtension(j.Path, a.cfg.Extensions) {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[resolver.Resolve(j.Path)]; !ok {
				continue
			}
		}
		out = append(out, j)
	}
	return out
}

func (a *App) summarize(reports []FileReport) Summary {
	var s Summary
	for _, rep := range reports {
		switch rep.Outcome {
		case OutcomeFixed:
			s.Fixed = append(s.Fixed, rep.Path)
		case OutcomeUnchanged:
			s.Unchanged = append(s.Unchanged, rep.Path)
		case OutcomeSkipped:
			s.Skipped = append(s.Skipped, rep.Path)
		case OutcomeError:
			s.Failed = append(s.Failed, fmt.Sprintf("%s: %v", rep.Path, rep.Err))
		}
		for _, w := range rep.Warnings {
			s.Warnings = append(s.Warnings, fmt.Sprintf("%s: %s", rep.Path, w))
		}
	}
	return s
}

func (a *App) reloadBuffers(fixed []string, s *Summary) {
	if a.cfg.NoNvim || len(fixed) == 0 {
		return
	}

	reloader, err := NewNvimReloader()
	if err != nil {
		s.Warnings = append(s.Warnings, err.Error())
		return
	}
	if reloader == nil {
		return
	}
	defer reloader.Close()

	if err := reloader.Reload(); err != nil {
		s.Warnings = append(s.Warnings, fmt.Sprintf("nvim reload: %v", err))
	}
}

func (a *App) undoLastRun() (Summary, error) {
	sm, err := a.stateManager()
	if err != nil {
		return Summary{}, err
	}

	ops := sm.GetOperationsToUndo()
	if len(ops) == 0 {
		return Summary{Message: "No undo"}, nil
	}
	s := a.fileManager.Undo(ops, sm.StateDir)
	s.Message = "Undone"
	a.relativizeSummaryPaths(&s)
	return s, nil
}

func (a *App) redoLastRun() (Summary, error) {
	sm, err := a.stateManager()
	if err != nil {
		return Summary{}, err
	}

	ops := sm.GetOperationsToRedo()
	if len(ops) == 0 {
		return Summary{Message: "No redo"}, nil
	}
	s := a.fileManager.Redo(ops, sm.StateDir)
	s.Message = "Redone"
	a.relativizeSummaryPaths(&s)
	return s, nil
}

func (a *App) stateManager() (*StateManager, error) {
	resolver, err := NewPathResolver(a.cfg.Base)
	if err != nil {
		return nil, err
	}
	return NewStateManager(resolver.Base())
}

func (a *App) reportProgress(current, total int) {
	if a.progressCallback != nil {
		a.progressCallback(current, total)
	}
}

func (a *App) relativizeSummaryPaths(s *Summary) {
	wd, _ := os.Getwd()
	relPath := func(p string) string {
		if r, err := filepath.Rel(wd, p); err == nil {
			return r
		}
		return p
	}

	relList := func(paths []string) []string {
		var res []string
		for _, p := range paths {
			if head, tail, found := strings.Cut(p, ": "); found {
				res = append(res, fmt.Sprintf("%s: %s", relPath(head), tail))
			} else {
				res = append(res, relPath(p))
			}
		}
		return res
	}
	s.Fixed = relList(s.Fixed)
	s.Unchanged = relList(s.Unchanged)
	s.Skipped = relList(s.Skipped)
	s.Failed = relList(s.Failed)
	s.Warnings = relList(s.Warnings)
}

func HasAllowedExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
