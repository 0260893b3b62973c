package srcfix

// FindMatchingClose scans forward from openOffset, which must index a byte
// equal to open, and returns the offset of the close byte at which the
// nesting depth returns to zero. Returns -1, false if openOffset does not
// index open or if the text ends before the construct is balanced.
//
// Delimiters inside string and comment literals are counted like any other
// byte. The target corpus does not put braces in literals, so the scan stays
// a plain depth count.
func FindMatchingClose(text string, openOffset int, open, close byte) (int, bool) {
	if openOffset < 0 || openOffset >= len(text) || text[openOffset] != open {
		return -1, false
	}

	depth := 0
	for i := openOffset; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}
