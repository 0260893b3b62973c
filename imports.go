package srcfix

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoImportLine reports that the aggregated React import line was absent,
// so the symbol could not be inserted. Callers log this as a warning; the
// text is returned unchanged.
var ErrNoImportLine = errors.New("no aggregated import line")

var reactImportRegex = regexp.MustCompile(`import React, \{ ([^}]+) \} from 'react';`)

// EnsureImport inserts symbol into the file's aggregated React import line
// unless the symbol already occurs anywhere in the text. The precheck is a
// deliberate coarse containment test: a false positive (the symbol appearing
// in a comment or a longer identifier) yields a safe no-op, never a
// duplicate insertion.
func EnsureImport(text, symbol string) (string, bool, error) {
	if strings.Contains(text, symbol) {
		return text, false, nil
	}

	m := reactImportRegex.FindStringSubmatch(text)
	if m == nil {
		return text, false, ErrNoImportLine
	}

	newLine := fmt.Sprintf("import React, { %s, %s } from 'react';", m[1], symbol)
	return strings.Replace(text, m[0], newLine, 1), true, nil
}
