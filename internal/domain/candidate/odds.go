package candidate

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/valyala/bytebufferpool"
)

const missingPrice = "N/A"

// Odds is one bookmaker's prices for the lines shown to reviewers.
type Odds struct {
	Bookmaker string     `json:"bookmaker"`
	Lines     []OddsLine `json:"lines"`
}

// OddsLine is a single betting line such as "1X2" or "O/U 2.5".
type OddsLine struct {
	Name   string  `json:"name"`
	Quotes []Quote `json:"quotes"`
}

type Quote struct {
	Label string              `json:"label"`
	Price decimal.NullDecimal `json:"price"`
}

// ParsePrice converts a provider price; blank or malformed values become
// an invalid NullDecimal and render as N/A.
func ParsePrice(raw string) decimal.NullDecimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func (q Quote) priceText() string {
	if !q.Price.Valid {
		return missingPrice
	}
	return q.Price.Decimal.String()
}

func (l OddsLine) priced() bool {
	for _, q := range l.Quotes {
		if q.Price.Valid {
			return true
		}
	}
	return false
}

// FormatOdds renders the odds block appended to analysis prompts. Lines
// without a single price are dropped; it returns "" when nothing remains.
func FormatOdds(odds *Odds) string {
	if odds == nil {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("\n5. BETTING ODDS (" + odds.Bookmaker + "):\n")
	written := 0
	for _, line := range odds.Lines {
		if !line.priced() {
			continue
		}
		_, _ = buf.WriteString("   - " + line.Name + ": ")
		for i, q := range line.Quotes {
			if i > 0 {
				_, _ = buf.WriteString(" | ")
			}
			_, _ = buf.WriteString(q.Label + " " + q.priceText())
		}
		_ = buf.WriteByte('\n')
		written++
	}
	if written == 0 {
		return ""
	}
	return buf.String()
}
