package history

import (
	"strconv"
	"strings"
	"unicode"

	sonic "github.com/bytedance/sonic"
)

// Score keeps the provider's raw score value. Providers send numbers,
// numeric strings, empty strings or null, so parsing is deferred to the
// reader that knows which leniency it needs.
type Score struct {
	raw     string
	present bool
}

// ScoreOf wraps a raw provider value. An empty string is present but
// unparseable; JSON null decodes to MissingScore.
func ScoreOf(raw string) Score {
	return Score{raw: raw, present: true}
}

func IntScore(v int) Score {
	return ScoreOf(strconv.Itoa(v))
}

// MissingScore is a score field the provider omitted.
func MissingScore() Score {
	return Score{}
}

func (s Score) Present() bool {
	return s.present
}

// Int parses the leading integer: optional whitespace, an optional sign
// and at least one digit. "2", " 3 ", "1.5" and "4 (pen)" all parse; "",
// "-" and "abc" do not.
func (s Score) Int() (int, bool) {
	if !s.present {
		return 0, false
	}
	return parseLeadingInt(s.raw)
}

// OrZeroInt treats an absent or empty value as 0 before parsing, so only a
// non-empty unparseable value reports false.
func (s Score) OrZeroInt() (int, bool) {
	if !s.present || s.raw == "" {
		return 0, true
	}
	return parseLeadingInt(s.raw)
}

// OrZero parses the value and falls back to 0 on anything unparseable.
func (s Score) OrZero() int {
	v, ok := s.Int()
	if !ok {
		return 0
	}
	return v
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.present || s.raw == "" {
		return []byte("null"), nil
	}
	if v, err := strconv.Atoi(s.raw); err == nil {
		return []byte(strconv.Itoa(v)), nil
	}
	return sonic.Marshal(s.raw)
}

// String renders the raw value for digests, "?" when missing.
func (s Score) String() string {
	if !s.present {
		return "?"
	}
	return s.raw
}

func parseLeadingInt(raw string) (int, bool) {
	text := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := 0
	if end < len(text) && (text[end] == '+' || text[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	v, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
