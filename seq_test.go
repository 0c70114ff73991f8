package ratchet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSeq(t *testing.T) {
	cases := []struct {
		name     string
		aad      string
		wantStep uint64
		wantOK   bool
	}{
		{"simple", "seq:3", 3, true},
		{"with trailing fields", "sender:alice|seq:42|id:abc", 42, true},
		{"no marker", "sender:alice|id:abc", 0, false},
		{"empty digits", "seq:|id:abc", 0, false},
		{"garbage after marker", "seq:12a", 0, false},
		{"zero", "seq:0", 0, true},
		{"empty aad", "", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			step, ok := parseSeq([]byte(tc.aad))
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				require.Equal(t, tc.wantStep, step)
			}
		})
	}
}
