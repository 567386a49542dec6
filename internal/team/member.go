// Package team holds the roster shown on the team page.
package team

import "strings"

type Status string

const (
	StatusOnline  Status = "online"
	StatusAway    Status = "away"
	StatusOffline Status = "offline"
)

type TaskCounts struct {
	Completed int `json:"completed" yaml:"completed"`
	Active    int `json:"active" yaml:"active"`
}

type Member struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Email    string     `json:"email" yaml:"email"`
	Role     string     `json:"role" yaml:"role"`
	Avatar   string     `json:"avatar" yaml:"avatar"`
	Status   Status     `json:"status" yaml:"status"`
	Projects int        `json:"projects" yaml:"projects"`
	Tasks    TaskCounts `json:"tasks" yaml:"tasks"`
}

// Roster is an ordered, read-only member list.
type Roster struct {
	members []Member
}

func NewRoster(members []Member) *Roster {
	return &Roster{members: append([]Member(nil), members...)}
}

func (r *Roster) All() []Member {
	return append([]Member(nil), r.members...)
}

// Search matches name, email or role case-insensitively. A blank query matches all.
func (r *Roster) Search(query string) []Member {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		if q == "" ||
			strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Email), q) ||
			strings.Contains(strings.ToLower(m.Role), q) {
			out = append(out, m)
		}
	}
	return out
}

func (r *Roster) CountByStatus() map[Status]int {
	counts := map[Status]int{StatusOnline: 0, StatusAway: 0, StatusOffline: 0}
	for _, m := range r.members {
		counts[m.Status]++
	}
	return counts
}

// ByInitials resolves avatar initials used by project cards.
func (r *Roster) ByInitials(initials string) (Member, bool) {
	for _, m := range r.members {
		if m.Avatar == initials {
			return m, true
		}
	}
	return Member{}, false
}
