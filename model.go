package srcfix

import "regexp"

// Rule is one ordered transformation step for a file. Exactly one of the
// three forms is set:
//
//   - Match: literal substring replacement
//   - Pattern: compiled regex replacement, $1-style templates in Replace
//   - Wrap: a callback spec (wrap in useCallback, patch effect deps)
type Rule struct {
	Match   string
	Pattern *regexp.Regexp
	Replace string

	Wrap *FunctionSpec
}

// FunctionSpec names a plain async callback assignment to be re-emitted as a
// memoized useCallback, and the dependency inputs the wrapper is keyed on.
type FunctionSpec struct {
	Name string
	Deps []string
}

// FileJob is one catalog entry: a target path (relative to the catalog base
// unless absolute) and its ordered rules.
type FileJob struct {
	Path  string
	Rules []Rule
}

// Catalog is the full batch: a base directory and the per-file jobs.
// Files are processed independently, with no cross-file state.
type Catalog struct {
	Base string
	Jobs []FileJob
}

// Outcome classifies what happened to one file.
type Outcome int

const (
	OutcomeFixed Outcome = iota
	OutcomeUnchanged
	OutcomeSkipped
	OutcomeError
)

// FileReport is the per-file result: one outcome per file, never silent.
// Warnings carry per-rule not-found conditions that did not stop the
// remaining rules for the same file.
type FileReport struct {
	Path     string
	Outcome  Outcome
	Err      error
	Warnings []string
	Diff     string // populated in dry-run mode only
}

type Summary struct {
	Fixed     []string
	Unchanged []string
	Skipped   []string
	Failed    []string
	Warnings  []string
	Message   string
}

// Attempted is the number of files the batch tried to process.
func (s Summary) Attempted() int {
	return len(s.Fixed) + len(s.Unchanged) + len(s.Skipped) + len(s.Failed)
}
