package srcfix

import "github.com/pmezard/go-difflib/difflib"

// UnifiedPreview renders the would-be change for one file as a unified diff,
// used by dry-run mode instead of writing.
func UnifiedPreview(relPath, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + relPath,
		ToFile:   "b/" + relPath,
		Context:  3,
	})
}
