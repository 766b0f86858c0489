package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestParseRate testa o parsing de expressões de cota
func TestParseRate(t *testing.T) {
	tests := []struct {
		name        string
		expr        string
		expected    Rate
		expectError bool
	}{
		{
			name:     "Should parse per-day rate",
			expr:     "5/day",
			expected: Rate{Count: 5, Window: 24 * time.Hour},
		},
		{
			name:     "Should parse per-hour rate",
			expr:     "100/hour",
			expected: Rate{Count: 100, Window: time.Hour},
		},
		{
			name:     "Should parse per-minute rate",
			expr:     "10/minute",
			expected: Rate{Count: 10, Window: time.Minute},
		},
		{
			name:     "Should parse per-second rate",
			expr:     "1/second",
			expected: Rate{Count: 1, Window: time.Second},
		},
		{
			name:     "Should tolerate whitespace and case",
			expr:     "  20 / Hour ",
			expected: Rate{Count: 20, Window: time.Hour},
		},
		{
			name:        "Should reject missing separator",
			expr:        "5day",
			expectError: true,
		},
		{
			name:        "Should reject non-numeric count",
			expr:        "five/day",
			expectError: true,
		},
		{
			name:        "Should reject zero count",
			expr:        "0/hour",
			expectError: true,
		},
		{
			name:        "Should reject negative count",
			expr:        "-3/hour",
			expectError: true,
		},
		{
			name:        "Should reject unknown window",
			expr:        "5/fortnight",
			expectError: true,
		},
		{
			name:        "Should reject empty expression",
			expr:        "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := ParseRate(tt.expr)

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, rate)
		})
	}
}

// TestMustParseRate_PanicsOnInvalid testa o panic para expressões inválidas
func TestMustParseRate_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustParseRate("not-a-rate")
	})

	assert.NotPanics(t, func() {
		rate := MustParseRate("5/day")
		assert.Equal(t, 5, rate.Count)
	})
}

// TestRate_String testa a expressão canônica da cota
func TestRate_String(t *testing.T) {
	assert.Equal(t, "5/day", Rate{Count: 5, Window: 24 * time.Hour}.String())
	assert.Equal(t, "100/hour", Rate{Count: 100, Window: time.Hour}.String())
	assert.Equal(t, "3 per 1m30s", Rate{Count: 3, Window: 90 * time.Second}.String())
}

// TestParseRate_RoundTrip garante que String devolve algo que ParseRate aceita
func TestParseRate_RoundTrip(t *testing.T) {
	for _, expr := range []string{"5/day", "10/hour", "1/minute", "200/second"} {
		rate, err := ParseRate(expr)
		assert.NoError(t, err)
		assert.Equal(t, expr, rate.String())
	}
}
