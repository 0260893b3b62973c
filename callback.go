package srcfix

import (
	"fmt"
	"strings"
)

// WrapCallback re-emits the plain async callback assignment named by spec as
// a memoized useCallback with spec.Deps as the invalidation key list:
//
//	const loadX = async () => { ... };
//	const loadX = useCallback(async () => { ... }, [userId]);
//
// The anchor is the un-wrapped form only, so running this against its own
// output finds no anchor and returns applied=false. That is the idempotence
// guard: detect-already-done rather than double-wrap. An unbalanced body
// also returns applied=false; one malformed callback must not block the
// remaining specs for the same file.
func WrapCallback(text string, spec FunctionSpec) (string, bool) {
	anchor := fmt.Sprintf("const %s = async", spec.Name)
	start := strings.Index(text, anchor)
	if start == -1 {
		return text, false
	}

	arrow := strings.Index(text[start:], "=>")
	if arrow == -1 {
		return text, false
	}
	bodyOpen := strings.IndexByte(text[start+arrow:], '{')
	if bodyOpen == -1 {
		return text, false
	}
	bodyOpen += start + arrow

	bodyClose, ok := FindMatchingClose(text, bodyOpen, '{', '}')
	if !ok {
		return text, false
	}

	// The callback expression starts right after "const NAME = " so the
	// original parameter list is carried over unchanged.
	exprStart := start + len("const ") + len(spec.Name) + len(" = ")
	callback := text[exprStart : bodyClose+1]

	after := text[bodyClose+1:]
	// Consume the statement terminator so it is not doubled in the output.
	after = strings.TrimPrefix(after, ";")

	var b strings.Builder
	b.WriteString(text[:start])
	fmt.Fprintf(&b, "const %s = useCallback(%s, [%s]);", spec.Name, callback, strings.Join(spec.Deps, ", "))
	b.WriteString(after)
	return b.String(), true
}
