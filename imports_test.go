package srcfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureImport(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		symbol  string
		want    string
		changed bool
		wantErr error
	}{
		{
			name:    "inserts into aggregated import",
			input:   "import React, { useState, useEffect } from 'react';\n",
			symbol:  "useCallback",
			want:    "import React, { useState, useEffect, useCallback } from 'react';\n",
			changed: true,
		},
		{
			name:    "symbol already imported",
			input:   "import React, { useState, useCallback } from 'react';\n",
			symbol:  "useCallback",
			want:    "import React, { useState, useCallback } from 'react';\n",
			changed: false,
		},
		{
			name:    "symbol anywhere suppresses insertion",
			input:   "import React, { useState } from 'react';\n// mentions useCallback in a comment\n",
			symbol:  "useCallback",
			want:    "import React, { useState } from 'react';\n// mentions useCallback in a comment\n",
			changed: false,
		},
		{
			name:    "no import line",
			input:   "const x = 1;\n",
			symbol:  "useCallback",
			want:    "const x = 1;\n",
			changed: false,
			wantErr: ErrNoImportLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := EnsureImport(tt.input, tt.symbol)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestEnsureImport_Idempotent(t *testing.T) {
	input := "import React, { useState } from 'react';\n"

	once, changed, err := EnsureImport(input, "useCallback")
	require.NoError(t, err)
	require.True(t, changed)

	twice, changed, err := EnsureImport(once, "useCallback")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, once, twice)
}
