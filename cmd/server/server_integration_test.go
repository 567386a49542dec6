package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sahuAhmadzafar/PMT/internal/config"
	"github.com/sahuAhmadzafar/PMT/internal/live"
	"github.com/sahuAhmadzafar/PMT/internal/serverapp"
	"github.com/sahuAhmadzafar/PMT/internal/timetrack"
)

type liveApp struct {
	srv    *httptest.Server
	app    *serverapp.App
	ticker *timetrack.ManualTicker
	client *http.Client
}

func newLiveApp(t *testing.T) *liveApp {
	t.Helper()
	ticker := timetrack.NewManualTicker()
	app, err := serverapp.New(serverapp.Options{
		Config: config.Default(),
		Logger: zaptest.NewLogger(t),
		Ticker: ticker,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = app.Hub.Run(ctx)
	}()

	srv := httptest.NewServer(app.Handler)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
		cancel()
		<-done
	})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &liveApp{srv: srv, app: app, ticker: ticker, client: &http.Client{Jar: jar}}
}

func (a *liveApp) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	u, err := url.Parse(a.srv.URL)
	require.NoError(t, err)

	header := http.Header{}
	for _, c := range a.client.Jar.Cookies(u) {
		header.Add("Cookie", c.String())
	}
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(a.srv.URL, "http")+"/live", header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type rawMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// next reads until a message of the given type arrives.
func next(t *testing.T, conn *websocket.Conn, typ string) json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var m rawMessage
		require.NoError(t, conn.ReadJSON(&m))
		if m.Type == typ {
			return m.Data
		}
	}
}

func TestLive_SnapshotTimerAndNotifications(t *testing.T) {
	a := newLiveApp(t)

	res, err := a.client.Get(a.srv.URL + "/time-tracking")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	conn := a.dial(t)

	var snap struct {
		UnreadCount int `json:"unreadCount"`
	}
	require.NoError(t, json.Unmarshal(next(t, conn, live.TypeNotifications), &snap))
	assert.Equal(t, a.app.Notifications.UnreadCount(), snap.UnreadCount)

	var st timetrack.Status
	require.NoError(t, json.Unmarshal(next(t, conn, live.TypeTimer), &st))
	assert.Equal(t, timetrack.StateIdle, st.State)

	res, err = a.client.PostForm(a.srv.URL+"/time-tracking/start", url.Values{"task": {"Integration"}, "project": {"Marketing"}})
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	a.ticker.Tick(2)
	require.NoError(t, json.Unmarshal(next(t, conn, live.TypeTimer), &st))
	assert.Equal(t, 1, st.Elapsed)
	require.NoError(t, json.Unmarshal(next(t, conn, live.TypeTimer), &st))
	assert.Equal(t, 2, st.Elapsed)
	assert.Equal(t, "0:02", st.Display)

	res, err = a.client.PostForm(a.srv.URL+"/time-tracking/stop", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, 0, a.ticker.Active())

	require.NoError(t, json.Unmarshal(next(t, conn, live.TypeNotifications), &snap))
	assert.Equal(t, a.app.Notifications.UnreadCount(), snap.UnreadCount)
}

func TestRoutesCommand_PrintsRegistry(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"routes", "--config", filepath.Join(t.TempDir(), "missing.yml")})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "METHOD")
	assert.Contains(t, out.String(), "/kanban/cmd")
	assert.Contains(t, out.String(), "/time-tracking/start")
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Setenv("PMT_ADDR", ":9999")
	configPath = filepath.Join(t.TempDir(), "missing.yml")
	addr, dev = ":7000", true
	t.Cleanup(func() { configPath, addr, dev = "pmt.yml", "", false })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.True(t, cfg.Log.Development)
	assert.True(t, cfg.Server.DevStatic)

	logger, err := newLogger(cfg.Log)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
