package page

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/sahuAhmadzafar/PMT/internal/chat"
	"github.com/sahuAhmadzafar/PMT/internal/dashboard"
	"github.com/sahuAhmadzafar/PMT/internal/gantt"
	"github.com/sahuAhmadzafar/PMT/internal/kanban"
	"github.com/sahuAhmadzafar/PMT/internal/project"
	"github.com/sahuAhmadzafar/PMT/internal/settings"
	"github.com/sahuAhmadzafar/PMT/internal/team"
	"github.com/sahuAhmadzafar/PMT/internal/timetrack"
)

// withShell renders the named body template inside Layout.
func withShell(name string, shell Shell, body any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Layout(shell).Render(templ.WithChildren(ctx, render(name, body)), w)
	})
}

func DashboardPage(shell Shell, ov dashboard.Overview) templ.Component {
	return withShell("dashboard", shell, ov)
}

type ProjectsView struct {
	Query    project.Query
	Projects []project.Project
	Statuses []project.Status
}

func ProjectsPage(shell Shell, v ProjectsView) templ.Component {
	v.Statuses = []project.Status{project.StatusOnTrack, project.StatusAtRisk, project.StatusCompleted}
	return withShell("projects", shell, v)
}

type KanbanView struct {
	Board    kanban.Board
	Dragging bool
	Drag     kanban.Drag
}

type GanttView struct {
	Cells []gantt.DayCell
	Rows  []gantt.Row
	Title string
}

func barStyle(b gantt.Bar) string {
	return "left: " + formatPct(b.LeftPct) + "%; width: " + formatPct(b.WidthPct) + "%"
}

type ChatMessage struct {
	chat.Message
	When string
}

type ChatView struct {
	Channels []chat.Channel
	DMs      []chat.Channel
	Selected chat.Channel
	Messages []ChatMessage
}

func NewChatView(room *chat.Room, now time.Time) ChatView {
	sel := room.Selected()
	msgs := room.Messages(sel.ID)
	out := make([]ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ChatMessage{Message: m, When: chat.FormatTime(m.Timestamp, now)})
	}
	return ChatView{
		Channels: room.Channels(chat.KindChannel),
		DMs:      room.Channels(chat.KindDM),
		Selected: sel,
		Messages: out,
	}
}

func ChatPage(shell Shell, v ChatView) templ.Component {
	return withShell("chat", shell, v)
}

type TimeTrackingView struct {
	Status   timetrack.Status
	Projects []string
	Entries  []timetrack.Entry
	Summary  timetrack.Summary
	Error    string
}

func (v TimeTrackingView) Tracking() bool { return v.Status.State != timetrack.StateIdle }

func (v TimeTrackingView) Paused() bool { return v.Status.State == timetrack.StatePaused }

func TimeTrackingPage(shell Shell, v TimeTrackingView) templ.Component {
	return withShell("timetrack", shell, v)
}

type TeamView struct {
	Query   string
	Members []team.Member
	Counts  map[team.Status]int
}

// Count is the number of members with the given status.
func (v TeamView) Count(status string) int { return v.Counts[team.Status(status)] }

func TeamPage(shell Shell, v TeamView) templ.Component {
	return withShell("team", shell, v)
}

type SettingsView struct {
	Section  string
	Sections []string
	Profile  settings.Profile
	Rules    []settings.Rule
	Saved    bool
	Error    string
}

func SettingsPage(shell Shell, v SettingsView) templ.Component {
	v.Sections = settings.Sections
	if v.Section == "" {
		v.Section = "Profile"
	}
	return withShell("settings", shell, v)
}
