package srcfix

import "strings"

// ApplyRules runs each non-wrap rule in list order against the current
// buffer, so later rules see the output of earlier ones. A rule that matches
// nothing is a no-op, not an error. Returns the final buffer and whether it
// differs from the input.
//
// Rule ordering is significant: a rule that strips a symbol from an import
// list and a rule that renames usages may target overlapping text, and each
// must act on what the previous one produced.
func ApplyRules(text string, rules []Rule) (string, bool) {
	original := text
	for _, r := range rules {
		text = applyRule(text, r)
	}
	return text, text != original
}

func applyRule(text string, r Rule) string {
	switch {
	case r.Pattern != nil:
		return r.Pattern.ReplaceAllString(text, r.Replace)
	case r.Match != "":
		return strings.ReplaceAll(text, r.Match, r.Replace)
	default:
		return text
	}
}
