package fixture

import (
	"testing"
	"time"
)

func TestFallbackID(t *testing.T) {
	tests := []struct {
		name string
		ts   int64
		home string
		away string
		want string
	}{
		{name: "regular names", ts: 1760000000, home: "Arsenal", away: "Chelsea", want: "1760000000_ARS_CHE"},
		{name: "short name", ts: 1760000000, home: "Ba", away: "Chelsea", want: "1760000000_BA_CHE"},
		{name: "missing names", ts: 1760000000, home: "", away: "", want: "1760000000_UNK_UNK"},
		{name: "multibyte", ts: 1760000000, home: "Şanlıurfaspor", away: "Göztepe", want: "1760000000_ŞAN_GÖZ"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FallbackID(tc.ts, tc.home, tc.away); got != tc.want {
				t.Fatalf("FallbackID()=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestFixture_Label(t *testing.T) {
	f := Fixture{HomeTeam: "Arsenal", AwayTeam: "Chelsea", KickoffAt: time.Unix(1760000000, 0)}
	if f.Label() != "Arsenal vs Chelsea" {
		t.Fatalf("unexpected label %q", f.Label())
	}
	if f.KickoffUnix() != 1760000000 {
		t.Fatalf("unexpected kickoff unix %d", f.KickoffUnix())
	}
}
