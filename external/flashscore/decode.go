package flashscore

import (
	"bytes"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
	crerr "github.com/cockroachdb/errors"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
)

type flexKind uint8

const (
	flexMissing flexKind = iota
	flexNull
	flexString
	flexNumber
	flexOther
)

// flexValue accepts any JSON scalar and remembers what it was. The provider
// mixes numbers and numeric strings for ids, scores and timestamps.
type flexValue struct {
	kind flexKind
	text string
}

func (v *flexValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		v.kind = flexMissing
	case bytes.Equal(trimmed, []byte("null")):
		v.kind = flexNull
	case trimmed[0] == '"':
		var s string
		if err := sonic.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		v.kind, v.text = flexString, s
	case trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9'):
		v.kind, v.text = flexNumber, string(trimmed)
	default:
		v.kind, v.text = flexOther, string(trimmed)
	}
	return nil
}

func (v flexValue) String() string {
	if v.kind == flexString || v.kind == flexNumber {
		return v.text
	}
	return ""
}

// truthy follows JavaScript truthiness for the kinds the provider sends.
func (v flexValue) truthy() bool {
	switch v.kind {
	case flexString:
		return v.text != ""
	case flexNumber:
		f, err := strconv.ParseFloat(v.text, 64)
		return err != nil || (f != 0 && !math.IsNaN(f))
	case flexOther:
		return v.text != "false"
	default:
		return false
	}
}

func (v flexValue) int64() (int64, bool) {
	if v.kind != flexString && v.kind != flexNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

func (v flexValue) bool() *bool {
	if v.kind != flexOther {
		return nil
	}
	var b bool
	switch v.text {
	case "true":
		b = true
	case "false":
	default:
		return nil
	}
	return &b
}

func (v flexValue) score() history.Score {
	switch v.kind {
	case flexMissing, flexNull:
		return history.MissingScore()
	default:
		return history.ScoreOf(v.text)
	}
}

func firstTruthy(values ...flexValue) string {
	for _, v := range values {
		if v.truthy() {
			return v.String()
		}
	}
	return ""
}

type rawTournament struct {
	Name    flexValue  `json:"name"`
	Matches []rawMatch `json:"matches"`
}

type rawMatch struct {
	MatchID   flexValue `json:"match_id"`
	ID        flexValue `json:"id"`
	EventID   flexValue `json:"eventId"`
	Timestamp flexValue `json:"timestamp"`
	HomeTeam  *rawSide  `json:"home_team"`
	AwayTeam  *rawSide  `json:"away_team"`
}

type rawSide struct {
	Name      flexValue `json:"name"`
	Score     flexValue `json:"score"`
	FirstHalf flexValue `json:"score_1st_half"`
}

func (s *rawSide) name() string {
	if s == nil {
		return ""
	}
	return s.Name.String()
}

type h2hEnvelope struct {
	Data sonic.NoCopyRawMessage `json:"DATA"`
}

type rawBookmaker struct {
	Name flexValue       `json:"name"`
	Odds []rawOddsMarket `json:"odds"`
}

type rawOddsMarket struct {
	BettingType  string         `json:"bettingType"`
	BettingScope string         `json:"bettingScope"`
	Odds         []rawOddsQuote `json:"odds"`
}

type rawOddsQuote struct {
	Value              flexValue    `json:"value"`
	EventParticipantID flexValue    `json:"eventParticipantId"`
	Selection          flexValue    `json:"selection"`
	Handicap           *rawHandicap `json:"handicap"`
	BothTeamsToScore   flexValue    `json:"bothTeamsToScore"`
}

type rawHandicap struct {
	Value flexValue `json:"value"`
}

func leadingByte(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func isNullPayload(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`))
}

// collectionValues returns the raw elements of a JSON array, or the raw
// values of a JSON object in JavaScript property order: array-index keys
// ascending, then the remaining keys as they appear.
func collectionValues(raw []byte) ([]string, error) {
	root, err := sonic.Get(raw)
	if err != nil {
		return nil, crerr.Wrap(err, "parse payload")
	}

	switch root.TypeSafe() {
	case ast.V_ARRAY:
		out := make([]string, 0, 16)
		var rawErr error
		if err := root.ForEach(func(_ ast.Sequence, node *ast.Node) bool {
			value, err := node.Raw()
			if err != nil {
				rawErr = err
				return false
			}
			out = append(out, value)
			return true
		}); err != nil {
			return nil, crerr.Wrap(err, "iterate payload array")
		}
		if rawErr != nil {
			return nil, crerr.Wrap(rawErr, "read payload element")
		}
		return out, nil

	case ast.V_OBJECT:
		type entry struct {
			index   uint64
			isIndex bool
			raw     string
		}
		entries := make([]entry, 0, 16)
		var rawErr error
		if err := root.ForEach(func(path ast.Sequence, node *ast.Node) bool {
			value, err := node.Raw()
			if err != nil {
				rawErr = err
				return false
			}
			e := entry{raw: value}
			if path.Key != nil {
				e.index, e.isIndex = arrayIndex(*path.Key)
			}
			entries = append(entries, e)
			return true
		}); err != nil {
			return nil, crerr.Wrap(err, "iterate payload object")
		}
		if rawErr != nil {
			return nil, crerr.Wrap(rawErr, "read payload value")
		}
		sort.SliceStable(entries, func(i, j int) bool {
			left, right := entries[i], entries[j]
			if left.isIndex && right.isIndex {
				return left.index < right.index
			}
			return left.isIndex && !right.isIndex
		})
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.raw)
		}
		return out, nil

	case ast.V_NULL:
		return nil, ErrEmptyResponse
	default:
		return nil, nil
	}
}

// arrayIndex reports whether key is a canonical array index such as "0"
// or "17" (no sign, no leading zero, below 2^32-1).
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n >= math.MaxUint32 {
		return 0, false
	}
	return n, true
}

// headToHeadRows splits a head-to-head payload into raw rows. The provider
// answers with a bare array or an object carrying a DATA array.
func headToHeadRows(raw []byte) ([]string, error) {
	switch leadingByte(raw) {
	case '[':
		return collectionValues(raw)
	case '{':
		var envelope h2hEnvelope
		if err := sonic.Unmarshal(raw, &envelope); err != nil {
			return nil, crerr.Wrap(err, "decode envelope")
		}
		if isNullPayload(envelope.Data) {
			return nil, nil
		}
		if leadingByte(envelope.Data) != '[' {
			return nil, crerr.Newf("DATA is not an array: %s", abbreviateBody(envelope.Data))
		}
		return collectionValues(envelope.Data)
	default:
		return nil, crerr.Newf("unexpected payload: %s", abbreviateBody(raw))
	}
}

func decodeHistoryMatch(item rawMatch) history.Match {
	m := history.Match{
		HomeTeam: item.HomeTeam.name(),
		AwayTeam: item.AwayTeam.name(),
	}
	if item.HomeTeam != nil {
		m.HomeScore = item.HomeTeam.Score.score()
		m.HomeFirstHalf = item.HomeTeam.FirstHalf.score()
	}
	if item.AwayTeam != nil {
		m.AwayScore = item.AwayTeam.Score.score()
		m.AwayFirstHalf = item.AwayTeam.FirstHalf.score()
	}
	if ts, ok := item.Timestamp.int64(); ok && item.Timestamp.truthy() {
		m.KickoffAt = time.Unix(ts, 0).UTC()
	}
	return m
}
