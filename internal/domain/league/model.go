package league

import "strings"

// AllowList is the ordered set of canonical league labels eligible for
// analysis, e.g. "ENGLAND: Premier League". It is immutable once built.
type AllowList struct {
	labels     []string
	normalized []string
}

func NewAllowList(labels []string) AllowList {
	out := AllowList{
		labels:     make([]string, 0, len(labels)),
		normalized: make([]string, 0, len(labels)),
	}
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		out.labels = append(out.labels, label)
		out.normalized = append(out.normalized, Normalize(label))
	}
	return out
}

// IsAllowed reports whether name matches any label by bidirectional
// substring containment of the normalized forms. The first hit wins.
func (a AllowList) IsAllowed(name string) bool {
	if name == "" {
		return false
	}
	candidate := Normalize(name)
	for _, allowed := range a.normalized {
		if strings.Contains(candidate, allowed) || strings.Contains(allowed, candidate) {
			return true
		}
	}
	return false
}

func (a AllowList) Len() int {
	return len(a.labels)
}
