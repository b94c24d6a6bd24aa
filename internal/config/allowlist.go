package config

import (
	_ "embed"
	"os"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/league"
)

//go:embed leagues.yaml
var defaultLeagues []byte

type allowListDocument struct {
	Leagues []string `yaml:"leagues"`
}

// LoadAllowList reads the league allow-list from path, or the embedded
// default list when path is empty.
func LoadAllowList(path string) (league.AllowList, error) {
	if path == "" {
		return ParseAllowList(defaultLeagues)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return league.AllowList{}, crerr.Wrapf(err, "read allowed leagues file %q", path)
	}
	list, err := ParseAllowList(raw)
	if err != nil {
		return league.AllowList{}, crerr.Wrapf(err, "allowed leagues file %q", path)
	}
	return list, nil
}

// ParseAllowList decodes a YAML document of the form "leagues: [...]".
func ParseAllowList(raw []byte) (league.AllowList, error) {
	var doc allowListDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return league.AllowList{}, crerr.Wrap(err, "decode allowed leagues")
	}

	list := league.NewAllowList(doc.Leagues)
	if list.Len() == 0 {
		return league.AllowList{}, crerr.New("allowed leagues list is empty")
	}
	return list, nil
}
