package project

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() []Project {
	return []Project{
		{ID: "1", Name: "Website Redesign", Status: StatusOnTrack, Budget: Budget{Spent: 45000, Total: 60000}},
		{ID: "2", Name: "Mobile App Development", Status: StatusOnTrack},
		{ID: "3", Name: "Marketing Campaign", Status: StatusAtRisk},
		{ID: "5", Name: "API Platform", Status: StatusCompleted},
	}
}

func names(ps []Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	got := Filter(fixtures(), Query{Search: "APP", Status: "all"})
	assert.Equal(t, []string{"Mobile App Development"}, names(got))
}

func TestFilter_Status(t *testing.T) {
	got := Filter(fixtures(), Query{Status: "on-track"})
	assert.Equal(t, []string{"Website Redesign", "Mobile App Development"}, names(got))

	got = Filter(fixtures(), Query{Status: "at-risk", Search: "web"})
	assert.Empty(t, got)
}

func TestFilter_AllMatchesEverything(t *testing.T) {
	assert.Len(t, Filter(fixtures(), Query{Status: "all"}), 4)
	assert.Len(t, Filter(fixtures(), Query{}), 4)
}

func TestQueryFromValues(t *testing.T) {
	q := QueryFromValues(url.Values{"q": {"  web "}})
	assert.Equal(t, Query{Search: "web", Status: "all"}, q)
}

func TestActive(t *testing.T) {
	assert.Len(t, Active(fixtures()), 3)
}

func TestBudgetLabels(t *testing.T) {
	b := Budget{Spent: 45000, Total: 120000}
	assert.Equal(t, "$45k", b.SpentLabel())
	assert.Equal(t, "$120,000", b.TotalLabel())
	assert.Equal(t, "At Risk", StatusAtRisk.Label())
}

func TestMemoryRepo_KeepsSeedOrder(t *testing.T) {
	r := NewMemoryRepo(fixtures())
	got, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Website Redesign", "Mobile App Development", "Marketing Campaign", "API Platform"}, names(got))
	assert.Equal(t, StatusAtRisk, got[2].Status)
}
