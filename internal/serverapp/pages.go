package serverapp

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/sahuAhmadzafar/PMT/internal/chat"
	"github.com/sahuAhmadzafar/PMT/internal/clock"
	"github.com/sahuAhmadzafar/PMT/internal/config"
	"github.com/sahuAhmadzafar/PMT/internal/dashboard"
	"github.com/sahuAhmadzafar/PMT/internal/gantt"
	"github.com/sahuAhmadzafar/PMT/internal/kanban"
	"github.com/sahuAhmadzafar/PMT/internal/notify"
	"github.com/sahuAhmadzafar/PMT/internal/project"
	"github.com/sahuAhmadzafar/PMT/internal/seed"
	"github.com/sahuAhmadzafar/PMT/internal/session"
	"github.com/sahuAhmadzafar/PMT/internal/settings"
	"github.com/sahuAhmadzafar/PMT/internal/team"
	"github.com/sahuAhmadzafar/PMT/internal/timetrack"
	"github.com/sahuAhmadzafar/PMT/ui/page"
)

const sidebarCookie = "pmt_sidebar"

// pages renders the dashboard views from each domain's session state.
type pages struct {
	cfg    *config.Config
	logger *zap.Logger
	clock  clock.Clock
	store  *notify.Store

	overview *dashboard.Service
	projects project.Repository
	boards   kanban.Repo
	charts   *gantt.Handler
	rooms    *chat.Handler
	timers   *timetrack.Handler
	timeData seed.TimeTracking
	entries  []timetrack.Entry
	roster   *team.Roster
	prefs    *settings.Handler
}

func sessionID(r *http.Request) string {
	if id := session.Resolve(r); id != "" {
		return id
	}
	return "default"
}

func (p *pages) shell(r *http.Request, title string) page.Shell {
	return page.Shell{
		Title:         title,
		Path:          r.URL.Path,
		Collapsed:     p.collapsed(r),
		Profile:       p.prefs.SettingsFor(r).Profile(),
		Notifications: p.store.Snapshot(),
	}
}

// collapsed reads the sidebar cookie, falling back to the configured default.
func (p *pages) collapsed(r *http.Request) bool {
	c, err := r.Cookie(sidebarCookie)
	if err != nil {
		return p.cfg.UI.Sidebar.Collapsed
	}
	return c.Value == "collapsed"
}

func (p *pages) render(w http.ResponseWriter, r *http.Request, c templ.Component, opts ...func(*templ.ComponentHandler)) {
	templ.Handler(c, opts...).ServeHTTP(w, r)
}

func (p *pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("page_failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// GET /dashboard
func (p *pages) dashboardPage(w http.ResponseWriter, r *http.Request) {
	ov, err := p.overview.Overview(r.Context(), p.clock.Now())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, page.DashboardPage(p.shell(r, "Dashboard"), ov))
}

// GET /projects (query: q, status)
func (p *pages) projectsPage(w http.ResponseWriter, r *http.Request) {
	all, err := p.projects.List(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	q := project.QueryFromValues(r.URL.Query())
	p.render(w, r, page.ProjectsPage(p.shell(r, "Projects"), page.ProjectsView{
		Query:    q,
		Projects: project.Filter(all, q),
	}))
}

// GET /kanban
func (p *pages) kanbanPage(w http.ResponseWriter, r *http.Request) {
	m, err := p.boards.Load(sessionID(r))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	d, dragging := m.Dragging()
	p.render(w, r, page.KanbanPage(p.shell(r, "Kanban Board"), page.KanbanView{
		Board:    m.Board(),
		Dragging: dragging,
		Drag:     d,
	}))
}

// GET /gantt
func (p *pages) ganttPage(w http.ResponseWriter, r *http.Request) {
	win := p.charts.Window()
	p.render(w, r, page.GanttPage(p.shell(r, "Gantt Chart"), page.GanttView{
		Cells: win.Cells(),
		Rows:  p.charts.ForestFor(r).Rows(win, p.charts.IndentPx()),
		Title: win.Start.Format("January 2006"),
	}))
}

// GET /chat (query: channel)
func (p *pages) chatPage(w http.ResponseWriter, r *http.Request) {
	room := p.rooms.RoomFor(r)
	if id := r.URL.Query().Get("channel"); id != "" {
		if !room.Select(id) {
			p.notFound(w, r)
			return
		}
	}
	p.render(w, r, page.ChatPage(p.shell(r, "Team Chat"), page.NewChatView(room, p.clock.Now())))
}

// GET /time-tracking (query: error)
func (p *pages) timeTrackingPage(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, page.TimeTrackingPage(p.shell(r, "Time Tracking"), page.TimeTrackingView{
		Status:   p.timers.StopwatchFor(r).Status(),
		Projects: p.timeData.Projects,
		Entries:  p.entries,
		Summary:  timetrack.Summary{Projects: p.timeData.Weekly},
		Error:    r.URL.Query().Get("error"),
	}))
}

// GET /team (query: q)
func (p *pages) teamPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	p.render(w, r, page.TeamPage(p.shell(r, "Team"), page.TeamView{
		Query:   q,
		Members: p.roster.Search(q),
		Counts:  p.roster.CountByStatus(),
	}))
}

// GET /settings (query: section, saved, error)
func (p *pages) settingsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s := p.prefs.SettingsFor(r)
	section := ""
	for _, name := range settings.Sections {
		if name == q.Get("section") {
			section = name
		}
	}
	p.render(w, r, page.SettingsPage(p.shell(r, "Settings"), page.SettingsView{
		Section: section,
		Profile: s.Profile(),
		Rules:   s.Rules(),
		Saved:   q.Get("saved") == "1",
		Error:   q.Get("error"),
	}))
}

// POST /sidebar/toggle
func (p *pages) toggleSidebar(w http.ResponseWriter, r *http.Request) {
	next := "collapsed"
	if p.collapsed(r) {
		next = "expanded"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sidebarCookie,
		Value:    next,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.cfg.Server.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, back(r), http.StatusSeeOther)
}

func (p *pages) notFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, page.NotFoundPage(p.shell(r, "Not found")), templ.WithStatus(http.StatusNotFound))
}

// back is the local page a form was posted from, or the dashboard.
func back(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || !strings.HasPrefix(ref.Path, "/") || ref.Path == "/sidebar/toggle" {
		return "/dashboard"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
