package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rate representa uma expressão de cota no formato "<count>/<window>",
// onde window é second, minute, hour ou day
type Rate struct {
	Count  int           `json:"count"`
	Window time.Duration `json:"window"`
}

var windowDurations = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
}

// ParseRate interpreta uma expressão de cota como "5/day" ou "100/hour"
func ParseRate(expr string) (Rate, error) {
	parts := strings.SplitN(strings.TrimSpace(expr), "/", 2)
	if len(parts) != 2 {
		return Rate{}, fmt.Errorf("invalid rate expression %q: expected <count>/<window>", expr)
	}

	count, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate count in %q: %w", expr, err)
	}
	if count <= 0 {
		return Rate{}, fmt.Errorf("invalid rate count in %q: must be greater than 0", expr)
	}

	window, ok := windowDurations[strings.ToLower(strings.TrimSpace(parts[1]))]
	if !ok {
		return Rate{}, fmt.Errorf("invalid rate window in %q: must be second, minute, hour or day", expr)
	}

	return Rate{Count: count, Window: window}, nil
}

// MustParseRate é como ParseRate mas entra em pânico para expressões inválidas.
// Uso restrito a valores constantes conhecidos em tempo de compilação.
func MustParseRate(expr string) Rate {
	rate, err := ParseRate(expr)
	if err != nil {
		panic(err)
	}
	return rate
}

// String devolve a expressão canônica da cota
func (r Rate) String() string {
	for name, d := range windowDurations {
		if d == r.Window {
			return fmt.Sprintf("%d/%s", r.Count, name)
		}
	}
	return fmt.Sprintf("%d per %s", r.Count, r.Window)
}
