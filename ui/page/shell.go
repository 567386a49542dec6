package page

import (
	"github.com/sahuAhmadzafar/PMT/internal/notify"
	"github.com/sahuAhmadzafar/PMT/internal/settings"
)

type NavItem struct {
	Name   string
	Href   string
	Icon   string
	Active bool
}

var navigation = []NavItem{
	{Name: "Dashboard", Href: "/dashboard", Icon: "layout-dashboard"},
	{Name: "Projects", Href: "/projects", Icon: "folder-kanban"},
	{Name: "Kanban Board", Href: "/kanban", Icon: "kanban-square"},
	{Name: "Gantt Chart", Href: "/gantt", Icon: "gantt-chart"},
	{Name: "Team Chat", Href: "/chat", Icon: "message-square"},
	{Name: "Time Tracking", Href: "/time-tracking", Icon: "clock"},
	{Name: "Team", Href: "/team", Icon: "users"},
	{Name: "Settings", Href: "/settings", Icon: "settings"},
}

// Navigation returns the sidebar items with the one matching path marked
// active. Matching is exact.
func Navigation(path string) []NavItem {
	out := make([]NavItem, len(navigation))
	for i, item := range navigation {
		item.Active = item.Href == path
		out[i] = item
	}
	return out
}

// Shell is the frame every dashboard page renders inside.
type Shell struct {
	Title         string
	Path          string
	Collapsed     bool
	Profile       settings.Profile
	Notifications notify.Snapshot
}

func (s Shell) Nav() []NavItem { return Navigation(s.Path) }

// ShowBadge reports whether the header bell carries a count.
func (s Shell) ShowBadge() bool { return s.Notifications.UnreadCount > 0 }
