package srcfix

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogDoc struct {
	Base  string     `yaml:"base"`
	Files []fileNode `yaml:"files"`
}

type fileNode struct {
	Path  string     `yaml:"path"`
	Rules []ruleNode `yaml:"rules"`
}

type ruleNode struct {
	Match   string   `yaml:"match"`
	Pattern string   `yaml:"pattern"`
	Replace string   `yaml:"replace"`
	Wrap    string   `yaml:"wrap"`
	Deps    []string `yaml:"deps"`
}

// ParseCatalog decodes a YAML catalog and compiles it into runnable form.
// Every pattern is compiled here, before any file is touched, so a malformed
// catalog fails the whole run up front instead of mid-batch.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return compileCatalog(&doc)
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read catalog: %w", err)
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// ParseMarkdownCatalog extracts fenced yaml blocks from a markdown document
// (a fix plan pasted from a PR description or model output) and merges them
// into one catalog. Content with no fenced blocks is parsed as plain YAML.
func ParseMarkdownCatalog(content string) (*Catalog, error) {
	blocks, err := ExtractCodeBlocks([]byte(content))
	if err != nil {
		return nil, err
	}

	merged := &Catalog{}
	seen := false
	for _, b := range blocks {
		if b.Lang != "yaml" && b.Lang != "yml" {
			continue
		}
		cat, err := ParseCatalog([]byte(b.Content))
		if err != nil {
			return nil, err
		}
		seen = true
		if cat.Base != "" {
			merged.Base = cat.Base
		}
		merged.Jobs = append(merged.Jobs, cat.Jobs...)
	}

	if !seen {
		return ParseCatalog([]byte(content))
	}
	return merged, nil
}

func compileCatalog(doc *catalogDoc) (*Catalog, error) {
	cat := &Catalog{Base: doc.Base}
	for _, f := range doc.Files {
		if strings.TrimSpace(f.Path) == "" {
			return nil, fmt.Errorf("catalog entry with empty path")
		}
		job := FileJob{Path: f.Path}
		for i, rn := range f.Rules {
			rule, err := compileRule(rn)
			if err != nil {
				return nil, fmt.Errorf("%s: rule %d: %w", f.Path, i+1, err)
			}
			job.Rules = append(job.Rules, rule)
		}
		cat.Jobs = append(cat.Jobs, job)
	}
	return cat, nil
}

func compileRule(rn ruleNode) (Rule, error) {
	forms := 0
	for _, set := range []bool{rn.Match != "", rn.Pattern != "", rn.Wrap != ""} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return Rule{}, fmt.Errorf("exactly one of match, pattern or wrap must be set")
	}

	switch {
	case rn.Wrap != "":
		if rn.Replace != "" {
			return Rule{}, fmt.Errorf("wrap does not take a replacement")
		}
		return Rule{Wrap: &FunctionSpec{Name: rn.Wrap, Deps: rn.Deps}}, nil

	case rn.Pattern != "":
		re, err := regexp.Compile(rn.Pattern)
		if err != nil {
			return Rule{}, fmt.Errorf("bad pattern: %w", err)
		}
		return Rule{Pattern: re, Replace: rn.Replace}, nil

	default:
		if len(rn.Deps) > 0 {
			return Rule{}, fmt.Errorf("deps is only valid with wrap")
		}
		return Rule{Match: rn.Match, Replace: rn.Replace}, nil
	}
}

// HasWrapRules reports whether any rule in the job is a callback spec.
func (j FileJob) HasWrapRules() bool {
	for _, r := range j.Rules {
		if r.Wrap != nil {
			return true
		}
	}
	return false
}
