package srcfix

import "fmt"

// Apply runs a parsed catalog without the CLI, for embedding srcfix as a
// library. The returned map mirrors the console summary sections.
func Apply(cat *Catalog, config Config) (map[string][]string, error) {
	app, err := NewApp(&config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize srcfix app: %w", err)
	}

	summary, err := app.ApplyCatalog(cat)
	if err != nil {
		return nil, err
	}

	return map[string][]string{
		"Fixed":     summary.Fixed,
		"Unchanged": summary.Unchanged,
		"Skipped":   summary.Skipped,
		"Warnings":  summary.Warnings,
		"Failed":    summary.Failed,
	}, nil
}
