package serverapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sahuAhmadzafar/PMT/internal/activity"
	"github.com/sahuAhmadzafar/PMT/internal/chat"
	"github.com/sahuAhmadzafar/PMT/internal/clock"
	"github.com/sahuAhmadzafar/PMT/internal/config"
	"github.com/sahuAhmadzafar/PMT/internal/dashboard"
	"github.com/sahuAhmadzafar/PMT/internal/gantt"
	"github.com/sahuAhmadzafar/PMT/internal/httpmw"
	"github.com/sahuAhmadzafar/PMT/internal/kanban"
	"github.com/sahuAhmadzafar/PMT/internal/live"
	"github.com/sahuAhmadzafar/PMT/internal/notify"
	"github.com/sahuAhmadzafar/PMT/internal/project"
	"github.com/sahuAhmadzafar/PMT/internal/seed"
	"github.com/sahuAhmadzafar/PMT/internal/server"
	"github.com/sahuAhmadzafar/PMT/internal/session"
	"github.com/sahuAhmadzafar/PMT/internal/settings"
	"github.com/sahuAhmadzafar/PMT/internal/site"
	"github.com/sahuAhmadzafar/PMT/internal/team"
	"github.com/sahuAhmadzafar/PMT/internal/timetrack"
	staticfiles "github.com/sahuAhmadzafar/PMT/static"
	"github.com/sahuAhmadzafar/PMT/ui/page"
)

type Options struct {
	Config *config.Config
	Logger *zap.Logger
	Clock  clock.Clock
	// Seed defaults to the embedded data set.
	Seed *seed.Data
	// Ticker drives the stopwatches. Required.
	Ticker timetrack.Ticker
	// Hub defaults to a new hub; the caller runs it either way.
	Hub *live.Hub
}

// App is the assembled dashboard and portfolio. Handler is ready to serve
// once Hub.Run has been started.
type App struct {
	Handler       http.Handler
	Routes        *server.RouteRegistry
	Hub           *live.Hub
	Notifications *notify.Store
	Activity      *activity.MemoryRepository
	Sessions      *session.Store

	logger      *zap.Logger
	idle        time.Duration
	timers      *timetrack.MemoryRepo
	unsubscribe func()
}

// Close stops every running stopwatch and detaches the live hub from the
// notification store.
func (a *App) Close() {
	a.timers.CloseAll()
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// ExpireSessions releases the state of every session idle for longer than
// the configured timeout. Sessions with an open page are kept.
func (a *App) ExpireSessions() []string {
	ids := a.Sessions.Expire(a.idle)
	if len(ids) > 0 {
		a.logger.Info("sessions_expired", zap.Int("count", len(ids)), zap.Int("active", a.Sessions.Len()))
	}
	return ids
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Ticker == nil {
		return nil, errors.New("ticker is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Seed == nil {
		d, err := seed.Default()
		if err != nil {
			return nil, err
		}
		opts.Seed = d
	}
	if opts.Hub == nil {
		opts.Hub = live.NewHub(opts.Logger.Named("live"))
	}
	cfg, data, logger := opts.Config, opts.Seed, opts.Logger

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	sessions := session.NewStore(opts.Clock)
	sessions.SetKeep(opts.Hub.Connected)
	app := &App{
		Routes:   rr,
		Hub:      opts.Hub,
		Sessions: sessions,
		logger:   logger,
		idle:     cfg.Session.IdleTimeout(),
	}

	staticDir := ""
	if cfg.Server.DevStatic {
		staticDir = cfg.Server.StaticDir
	}
	staticHandler := http.FileServer(http.FS(staticfiles.Assets(staticDir)))
	server.Handle(mux, rr, "GET /static/", "static assets", "", http.StripPrefix("/static/", staticHandler))

	server.HandleFunc(mux, rr, "GET /healthz", "liveness", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "pmt",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	// notifications
	store := notify.NewStore(opts.Clock, notify.FromSeed(opts.Clock, data.Notifications))
	app.Notifications = store
	app.unsubscribe = store.Subscribe(func(s notify.Snapshot) {
		opts.Hub.Broadcast(live.Message{Type: live.TypeNotifications, Data: s})
	})
	notifyHandler := notify.NewHandler(store)
	server.HandleFunc(mux, rr, "GET /notifications", "notification list", "", notifyHandler.List)
	server.HandleFunc(mux, rr, "POST /notifications/read/{id}", "mark one read", "", notifyHandler.MarkRead)
	server.HandleFunc(mux, rr, "POST /notifications/read-all", "mark all read", "", notifyHandler.MarkAllRead)

	// activity + dashboard
	feed := activity.FromSeed(opts.Clock, data.Dashboard.Activity)
	app.Activity = feed
	projects := project.NewMemoryRepo(data.Projects)
	overview := dashboard.NewService(data.Dashboard.Stats, projects, feed)

	// kanban
	board, err := kanban.NewBoard(data.Kanban)
	if err != nil {
		return nil, fmt.Errorf("kanban seed: %w", err)
	}
	boards := kanban.NewMemoryRepo(board)
	sessions.OnExpire(boards.Discard)
	kanbanHandler := kanban.NewHandler(boards)
	kanbanHandler.SetSessionResolver(session.Resolve)
	server.HandleFunc(mux, rr, "GET /kanban/state", "board state", "", kanbanHandler.GetState)
	server.HandleFunc(mux, rr, "POST /kanban/cmd", "drag-and-drop command", `{"cmd":"drag.begin","args":{"taskId":"1","columnId":"todo"}}`, kanbanHandler.Command)

	// gantt
	start, err := cfg.Gantt.StartTime(time.Local)
	if err != nil {
		return nil, err
	}
	forest, err := gantt.Build(data.Gantt, time.Local)
	if err != nil {
		return nil, fmt.Errorf("gantt seed: %w", err)
	}
	charts := gantt.NewMemoryRepo(forest)
	sessions.OnExpire(charts.Discard)
	ganttHandler := gantt.NewHandler(charts, gantt.NewWindow(start, cfg.Gantt.DaysInView), cfg.Gantt.IndentPx)
	ganttHandler.SetSessionResolver(session.Resolve)
	server.HandleFunc(mux, rr, "GET /gantt/rows", "visible gantt rows", "", ganttHandler.Rows)
	server.HandleFunc(mux, rr, "POST /gantt/toggle/{id}", "expand or collapse a task", "", ganttHandler.Toggle)

	// settings
	prefs := settings.NewMemoryRepo(data.Settings)
	sessions.OnExpire(prefs.Discard)
	settingsHandler := settings.NewHandler(prefs)
	settingsHandler.SetSessionResolver(session.Resolve)
	server.HandleFunc(mux, rr, "POST /settings/profile", "save profile", "name=...&email=...&role=...", settingsHandler.SaveProfile)
	server.HandleFunc(mux, rr, "POST /settings/automation", "save automation rules", "rule=auto-assign", settingsHandler.SaveAutomation)
	server.HandleFunc(mux, rr, "POST /settings/automation/{id}/toggle", "toggle one rule", "", settingsHandler.ToggleRule)

	// time tracking
	timers := timetrack.NewMemoryRepo(opts.Ticker, cfg.Timer.Interval())
	timers.SetOnTick(func(sessionID string, st timetrack.Status) {
		opts.Hub.SendTo(sessionID, live.Message{Type: live.TypeTimer, Data: st})
	})
	app.timers = timers
	sessions.OnExpire(timers.Discard)
	timeHandler := timetrack.NewHandler(timers)
	timeHandler.SetSessionResolver(session.Resolve)
	timeHandler.SetOnStop(func(st timetrack.Status) {
		store.Add("Time logged", fmt.Sprintf("%s logged on %s", st.Display, st.Task), notify.KindSuccess)
		feed.Record(data.Settings.Profile.Name, activity.ActionLogged, st.Task)
	})
	server.HandleFunc(mux, rr, "GET /time-tracking/state", "stopwatch state", "", timeHandler.State)
	server.HandleFunc(mux, rr, "POST /time-tracking/start", "start the stopwatch", "task=...&project=...", timeHandler.Start)
	server.HandleFunc(mux, rr, "POST /time-tracking/pause", "pause or resume", "", timeHandler.Pause)
	server.HandleFunc(mux, rr, "POST /time-tracking/stop", "stop and reset", "", timeHandler.Stop)

	// chat
	rooms := chat.NewMemoryRepo(opts.Clock, data.Chat)
	sessions.OnExpire(rooms.Discard)
	chatHandler := chat.NewHandler(rooms)
	chatHandler.SetSessionResolver(session.Resolve)
	chatHandler.SetOnSend(func(ch chat.Channel, m chat.Message) {
		target := ch.Name
		if ch.Kind == chat.KindChannel {
			target = "#" + ch.Name
		}
		feed.Record(m.User, activity.ActionPosted, target)
	})
	server.HandleFunc(mux, rr, "POST /chat/{channel}/messages", "send a message", "content=...", chatHandler.Send)

	// live
	liveHandler := live.NewHandler(opts.Hub)
	liveHandler.SetSessionResolver(session.Resolve)
	liveHandler.SetSnapshot(func(sessionID string) []live.Message {
		msgs := []live.Message{{Type: live.TypeNotifications, Data: store.Snapshot()}}
		if sessionID != "" {
			msgs = append(msgs, live.Message{Type: live.TypeTimer, Data: timers.Load(sessionID).Status()})
		}
		return msgs
	})
	server.HandleFunc(mux, rr, "GET /live", "websocket for notifications and timer", "", liveHandler.ServeWS)

	// pages
	p := &pages{
		cfg:      cfg,
		logger:   logger,
		clock:    opts.Clock,
		store:    store,
		overview: overview,
		projects: projects,
		boards:   boards,
		charts:   ganttHandler,
		rooms:    chatHandler,
		timers:   timeHandler,
		timeData: data.TimeTracking,
		entries:  timetrack.EntriesFromSeed(opts.Clock, data.TimeTracking.Entries),
		roster:   team.NewRoster(data.Team),
		prefs:    settingsHandler,
	}
	server.HandleFunc(mux, rr, "GET /{$}", "redirect to dashboard", "", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	server.HandleFunc(mux, rr, "GET /dashboard", "dashboard page", "", p.dashboardPage)
	server.HandleFunc(mux, rr, "GET /projects", "projects page", "", p.projectsPage)
	server.HandleFunc(mux, rr, "GET /kanban", "kanban page", "", p.kanbanPage)
	server.HandleFunc(mux, rr, "GET /gantt", "gantt page", "", p.ganttPage)
	server.HandleFunc(mux, rr, "GET /chat", "chat page", "", p.chatPage)
	server.HandleFunc(mux, rr, "GET /time-tracking", "time tracking page", "", p.timeTrackingPage)
	server.HandleFunc(mux, rr, "GET /team", "team page", "", p.teamPage)
	server.HandleFunc(mux, rr, "GET /settings", "settings page", "", p.settingsPage)
	server.HandleFunc(mux, rr, "POST /sidebar/toggle", "collapse or expand the sidebar", "", p.toggleSidebar)
	server.HandleFunc(mux, rr, "/", "not found", "", p.notFound)

	// portfolio
	s, err := newSite(cfg, data, opts.Clock, logger.Named("site"))
	if err != nil {
		return nil, err
	}
	server.Handle(mux, rr, "/site/", "portfolio site", "", http.StripPrefix("/site", s.Router()))

	server.HandleFunc(mux, rr, "GET /readyz", "readiness", "", func(w http.ResponseWriter, r *http.Request) {
		if _, err := projects.List(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "project data unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "pmt",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	server.RegisterIndex(mux, rr)

	app.Handler = httpmw.Chain(
		session.Middleware(cfg.Server.CookieSecure, sessions)(mux),
		httpmw.WithAccessLog(logger.Named("http")),
		httpmw.WithRequestID,
		httpmw.WithRecover(logger),
	)
	return app, nil
}

func newSite(cfg *config.Config, data *seed.Data, c clock.Clock, logger *zap.Logger) (*site.Site, error) {
	catalog, err := site.NewCatalog(data.Site.Projects, data.Site.Categories)
	if err != nil {
		return nil, fmt.Errorf("site seed: %w", err)
	}
	return site.New(site.Deps{
		Theme:          site.NewThemeController(cfg.Site.ThemeCookie),
		Nav:            site.NewNavController(data.Site.Nav),
		Reveal:         site.DefaultReveal(),
		Filter:         site.NewFilterController(catalog),
		Modal:          site.NewModalController(catalog),
		Contact:        site.NewContactController(site.NewMemoryInbox(c.Now)),
		Pages:          page.SitePages{},
		Logger:         logger,
		BasePath:       "/site",
		AllowedOrigins: cfg.Site.AllowedOrigins,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
