package types

import "strconv"

// ParseLength extracts a numeric value from a free-text catch length such as
// `18.5"` or "18 in". Non-numeric characters are stripped and the leading
// number is parsed; the result is 0 when no number is present.
func ParseLength(v string) float64 {
	stripped := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if (c >= '0' && c <= '9') || c == '.' {
			stripped = append(stripped, c)
		}
	}
	if len(stripped) == 0 {
		return 0
	}

	// Take the leading well-formed number; stray extra dots are dropped.
	end := 0
	seenDot := false
	for end < len(stripped) {
		if stripped[end] == '.' {
			if seenDot {
				break
			}
			seenDot = true
		}
		end++
	}
	n, err := strconv.ParseFloat(string(stripped[:end]), 64)
	if err != nil {
		return 0
	}
	return n
}
