package srcfix

import "strings"

const effectAnchor = "useEffect("

// EnsureDep finds every useEffect block whose body invokes name and appends
// name to the effect's dependency array when it is not already a member:
//
//	useEffect(() => { loadX(); }, [userId]);
//	useEffect(() => { loadX(); }, [userId, loadX]);
//
// Membership is checked against the exact identifiers in the array, so
// re-running on already-patched text changes nothing. An effect without a
// dependency array is left untouched.
func EnsureDep(text, name string) (string, bool) {
	changed := false
	pos := 0

	for {
		idx := strings.Index(text[pos:], effectAnchor)
		if idx == -1 {
			break
		}
		idx += pos

		parenOpen := idx + len(effectAnchor) - 1
		parenClose, ok := FindMatchingClose(text, parenOpen, '(', ')')
		if !ok {
			break
		}

		patched, next := patchEffect(text, parenOpen, parenClose, name)
		if patched != "" {
			text = patched
			changed = true
			pos = next
		} else {
			pos = parenClose + 1
		}
	}
	return text, changed
}

// patchEffect patches a single useEffect argument list spanning
// (parenOpen, parenClose). Returns the new text and the offset to resume
// scanning from, or "" when nothing was inserted.
func patchEffect(text string, parenOpen, parenClose int, name string) (string, int) {
	bodyOpen := strings.IndexByte(text[parenOpen:parenClose], '{')
	if bodyOpen == -1 {
		return "", 0
	}
	bodyOpen += parenOpen

	bodyClose, ok := FindMatchingClose(text, bodyOpen, '{', '}')
	if !ok || bodyClose > parenClose {
		return "", 0
	}

	if !strings.Contains(text[bodyOpen:bodyClose+1], name+"(") {
		return "", 0
	}

	depsOpen := strings.IndexByte(text[bodyClose:parenClose], '[')
	if depsOpen == -1 {
		return "", 0
	}
	depsOpen += bodyClose

	depsClose, ok := FindMatchingClose(text, depsOpen, '[', ']')
	if !ok || depsClose > parenClose {
		return "", 0
	}

	inner := text[depsOpen+1 : depsClose]
	if listContains(inner, name) {
		return "", 0
	}

	member := strings.TrimRight(inner, " \t\n")
	if strings.TrimSpace(member) == "" {
		member = name
	} else {
		member += ", " + name
	}

	patched := text[:depsOpen+1] + member + text[depsClose:]
	return patched, depsClose + len(member) - len(inner) + 1
}

func listContains(list, name string) bool {
	for _, m := range strings.Split(list, ",") {
		if strings.TrimSpace(m) == name {
			return true
		}
	}
	return false
}
