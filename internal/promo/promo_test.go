package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Lookup(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		code    string
		wantPct int
		wantOK  bool
	}{
		{
			name:    "Exact match",
			code:    "FAMILY20",
			wantPct: 20,
			wantOK:  true,
		},
		{
			name:    "Lowercase matches",
			code:    "family20",
			wantPct: 20,
			wantOK:  true,
		},
		{
			name:    "Mixed case matches",
			code:    "StUdEnT15",
			wantPct: 15,
			wantOK:  true,
		},
		{
			name:    "Surrounding whitespace is ignored",
			code:    " vip25 ",
			wantPct: 25,
			wantOK:  true,
		},
		{
			name:   "Unknown code",
			code:   "NOPE99",
			wantOK: false,
		},
		{
			name:   "Empty code",
			code:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, ok := r.Lookup(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantPct, pct)
			}
		})
	}
}

func TestDefaultCodes(t *testing.T) {
	codes := DefaultCodes()
	assert.Equal(t, 10, codes["FIRST10"])
	assert.Equal(t, 15, codes["STUDENT15"])
	assert.Equal(t, 20, codes["FAMILY20"])
	assert.Equal(t, 25, codes["VIP25"])
}

func TestNewRegistry_CanonicalisesCodes(t *testing.T) {
	r := NewRegistry(map[string]int{" summer5 ": 5})

	pct, ok := r.Lookup("SUMMER5")
	assert.True(t, ok)
	assert.Equal(t, 5, pct)
	assert.Equal(t, 1, r.Size())
}
