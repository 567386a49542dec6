package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func roster() *Roster {
	return NewRoster([]Member{
		{ID: "1", Name: "John Doe", Email: "john.doe@company.com", Role: "Project Manager", Avatar: "JD", Status: StatusOnline},
		{ID: "2", Name: "Sarah Miller", Email: "sarah.miller@company.com", Role: "UI/UX Designer", Avatar: "SM", Status: StatusOnline},
		{ID: "3", Name: "Alex Kim", Email: "alex.kim@company.com", Role: "Full Stack Developer", Avatar: "AK", Status: StatusAway},
		{ID: "5", Name: "Lisa Taylor", Email: "lisa.taylor@company.com", Role: "Frontend Developer", Avatar: "LT", Status: StatusOffline},
	})
}

func TestSearch(t *testing.T) {
	r := roster()
	assert.Len(t, r.Search(""), 4)
	assert.Len(t, r.Search("developer"), 2)
	assert.Len(t, r.Search("SARAH.MILLER@"), 1)
	assert.Equal(t, "John Doe", r.Search("manager")[0].Name)
	assert.Empty(t, r.Search("nobody"))
}

func TestCountByStatus(t *testing.T) {
	got := roster().CountByStatus()
	assert.Equal(t, map[Status]int{StatusOnline: 2, StatusAway: 1, StatusOffline: 1}, got)
}

func TestByInitials(t *testing.T) {
	m, ok := roster().ByInitials("AK")
	assert.True(t, ok)
	assert.Equal(t, "Alex Kim", m.Name)

	_, ok = roster().ByInitials("ZZ")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	r := roster()
	all := r.All()
	all[0].Name = "changed"
	assert.Equal(t, "John Doe", r.All()[0].Name)
}
