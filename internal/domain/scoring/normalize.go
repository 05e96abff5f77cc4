package scoring

import (
	"strconv"
	"strings"

	"github.com/okian/heptathlon/internal/domain/weighting"
)

// ParsePolicy decides what happens to raw values that are not clean numbers.
type ParsePolicy int

const (
	// Permissive reads the longest numeric prefix and treats a value with no
	// numeric prefix as 0. This matches how results were historically scored.
	Permissive ParsePolicy = iota
	// Strict rejects any value that is not a plain number once its unit
	// suffix has been removed.
	Strict
)

// String returns the policy name.
func (p ParsePolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

const secondsPerMinute = 60

// Normalize converts rawValue into the unit the formula for eventType
// expects: seconds for running, centimetres for jumping and metres for
// throwing.
func Normalize(eventType weighting.EventType, rawValue string, policy ParsePolicy) (float64, error) {
	raw := strings.TrimSpace(rawValue)
	switch eventType {
	case weighting.Running:
		return normalizeTime(raw, policy)
	case weighting.Jumping:
		// Jumps are centimetres unless they say metres.
		if v, ok := strings.CutSuffix(raw, "cm"); ok {
			return parse(v, raw, policy)
		}
		if v, ok := strings.CutSuffix(raw, "m"); ok {
			n, err := parse(v, raw, policy)
			return n * 100, err
		}
		return parse(raw, raw, policy)
	case weighting.Throwing:
		// Throws are metres unless they say centimetres.
		if v, ok := strings.CutSuffix(raw, "cm"); ok {
			n, err := parse(v, raw, policy)
			return n / 100, err
		}
		if v, ok := strings.CutSuffix(raw, "m"); ok {
			return parse(v, raw, policy)
		}
		return parse(raw, raw, policy)
	default:
		return 0, &UnsupportedEventTypeError{Type: eventType}
	}
}

// normalizeTime accepts "SS.ss" or "M:SS.ss". Hours are not supported.
func normalizeTime(raw string, policy ParsePolicy) (float64, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return parse(raw, raw, policy)
	}
	minutes, err := parse(parts[0], raw, policy)
	if err != nil {
		return 0, err
	}
	seconds, err := parse(parts[1], raw, policy)
	if err != nil {
		return 0, err
	}
	return minutes*secondsPerMinute + seconds, nil
}

// parse reads s as a float under policy. raw is the full original value,
// reported on failure.
func parse(s, raw string, policy ParsePolicy) (float64, error) {
	s = strings.TrimSpace(s)
	if policy == Strict {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &InvalidValueError{Value: raw, Err: err}
		}
		return v, nil
	}
	return leadingFloat(s), nil
}

// leadingFloat returns the value of the longest prefix of s that forms a
// decimal number, or 0 when there is none.
func leadingFloat(s string) float64 {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	// Only take an exponent when digits follow it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	return v
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
