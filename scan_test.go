package srcfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatchingClose(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   int
		ok     bool
	}{
		{
			name:   "flat pair",
			text:   "{}",
			offset: 0,
			want:   1,
			ok:     true,
		},
		{
			name:   "skips inner pair",
			text:   "{ a { b } c }",
			offset: 0,
			want:   12,
			ok:     true,
		},
		{
			name:   "deeply nested",
			text:   "x{{{{}}}}y",
			offset: 1,
			want:   8,
			ok:     true,
		},
		{
			name:   "open mid-text matches its own close",
			text:   "{ a { b } c }",
			offset: 4,
			want:   8,
			ok:     true,
		},
		{
			name:   "truncated input",
			text:   "{ a { b }",
			offset: 0,
			ok:     false,
		},
		{
			name:   "offset not on open delimiter",
			text:   "{ a }",
			offset: 1,
			ok:     false,
		},
		{
			name:   "offset past end",
			text:   "{}",
			offset: 5,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindMatchingClose(tt.text, tt.offset, '{', '}')
			if !tt.ok {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, byte('}'), tt.text[got])
		})
	}
}

func TestFindMatchingClose_Parens(t *testing.T) {
	text := "useEffect(() => { load(); }, [id]);"
	got, ok := FindMatchingClose(text, 9, '(', ')')
	require.True(t, ok)
	assert.Equal(t, len(text)-2, got)
}
