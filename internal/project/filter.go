package project

import (
	"net/url"
	"strings"
)

// Query narrows the project list. An empty or "all" status matches every project.
type Query struct {
	Search string
	Status string
}

func QueryFromValues(v url.Values) Query {
	q := Query{Search: strings.TrimSpace(v.Get("q")), Status: v.Get("status")}
	if q.Status == "" {
		q.Status = "all"
	}
	return q
}

func (q Query) Matches(p Project) bool {
	if q.Status != "" && q.Status != "all" && string(p.Status) != q.Status {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search))
}

func Filter(projects []Project, q Query) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Active returns projects that are not completed.
func Active(projects []Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Status != StatusCompleted {
			out = append(out, p)
		}
	}
	return out
}
