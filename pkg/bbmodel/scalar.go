package bbmodel

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ErrInvalidScalar is returned in strict mode for keyframe values that are
// neither numbers nor numeric strings.
var ErrInvalidScalar = errors.New("invalid keyframe value")

// Scalar is a keyframe component given either as a JSON number or as a
// string holding a number.
type Scalar struct {
	raw json.RawMessage
}

// NewScalar returns a scalar holding a number.
func NewScalar(v float32) Scalar {
	return Scalar{raw: json.RawMessage(strconv.FormatFloat(float64(v), 'g', -1, 32))}
}

// UnmarshalJSON keeps the raw value.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	s.raw = append(s.raw[:0], data...)
	return nil
}

// MarshalJSON writes the raw value back out.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("null"), nil
	}
	return s.raw, nil
}

// IsZero reports whether the value is absent or null.
func (s Scalar) IsZero() bool {
	trimmed := bytes.TrimSpace(s.raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

// Float returns the value. Absent values are 0. Values that cannot be read
// as a number are 0 unless strict is set, in which case they are an error.
func (s Scalar) Float(strict bool) (float32, error) {
	if s.IsZero() {
		return 0, nil
	}

	trimmed := bytes.TrimSpace(s.raw)
	text := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return s.fallback(strict)
		}
	}

	if !isDecimal(text) {
		return s.fallback(strict)
	}
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		// Out of range values saturate to infinity
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return float32(v), nil
		}
		return s.fallback(strict)
	}
	return float32(v), nil
}

// isDecimal rejects the digit separators and hexadecimal floats that
// strconv accepts beyond plain decimal notation.
func isDecimal(text string) bool {
	if strings.ContainsRune(text, '_') {
		return false
	}
	unsigned := strings.TrimLeft(text, "+-")
	return !strings.HasPrefix(unsigned, "0x") && !strings.HasPrefix(unsigned, "0X")
}

func (s Scalar) fallback(strict bool) (float32, error) {
	if strict {
		return 0, errors.Wrapf(ErrInvalidScalar, "%s", s.raw)
	}
	return 0, nil
}
