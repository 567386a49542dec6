package chat

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

var t0 = time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)

func testSeed() Seed {
	return Seed{
		Author: Author{Name: "John Doe", Avatar: "JD"},
		Channels: []Channel{
			{ID: "1", Name: "general", Kind: KindChannel, Unread: 3},
			{ID: "2", Name: "design", Kind: KindChannel},
			{ID: "dm-1", Name: "Sarah Miller", Kind: KindDM, Unread: 2},
		},
		Messages: []MessageSeed{
			{ID: "1", Channel: "1", User: "Sarah Miller", Avatar: "SM", Content: "mockups ready", AgeMinutes: 30,
				Reactions: []Reaction{{Emoji: "👍", Count: 3}}},
			{ID: "2", Channel: "1", User: "Alex Kim", Avatar: "AK", Content: "looks great", AgeMinutes: 25},
		},
	}
}

func TestRoom_SeedAndChannels(t *testing.T) {
	room := testSeed().NewRoom(clock.NewFake(t0))

	assert.Len(t, room.Channels(KindChannel), 2)
	assert.Len(t, room.Channels(KindDM), 1)
	assert.Equal(t, "general", room.Selected().Name)

	msgs := room.Messages("1")
	require.Len(t, msgs, 2)
	assert.Equal(t, t0.Add(-30*time.Minute), msgs[0].Timestamp)
	assert.Empty(t, room.Messages("2"))
}

func TestRoom_SelectClearsUnread(t *testing.T) {
	room := testSeed().NewRoom(clock.NewFake(t0))

	assert.True(t, room.Select("dm-1"))
	assert.Equal(t, "Sarah Miller", room.Selected().Name)
	assert.Equal(t, 0, room.Channels(KindDM)[0].Unread)

	assert.False(t, room.Select("missing"))
	assert.Equal(t, "dm-1", room.Selected().ID)
}

func TestRoom_Send(t *testing.T) {
	fc := clock.NewFake(t0)
	room := testSeed().NewRoom(fc)

	_, err := room.Send("1", "   \n\t")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, room.Messages("1"), 2)

	_, err = room.Send("nope", "hi")
	assert.ErrorIs(t, err, ErrUnknownChannel)

	m, err := room.Send("1", "  hello team ")
	require.NoError(t, err)
	assert.Equal(t, "  hello team ", m.Content)
	assert.Equal(t, "John Doe", m.User)
	assert.Equal(t, t0, m.Timestamp)
	assert.NotEmpty(t, m.ID)

	msgs := room.Messages("1")
	require.Len(t, msgs, 3)
	assert.Equal(t, m.ID, msgs[2].ID)
}

func TestFormatTime(t *testing.T) {
	now := time.Date(2025, 12, 10, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		ts   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-59 * time.Minute), "59m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-26*time.Hour - 30*time.Minute), "12:30 PM"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatTime(c.ts, now))
	}
}

func TestMemoryRepo_IsolatesSessions(t *testing.T) {
	repo := NewMemoryRepo(clock.NewFake(t0), testSeed())
	a := repo.Load("a")
	assert.Same(t, a, repo.Load("a"))

	_, err := a.Send("1", "only in a")
	require.NoError(t, err)
	assert.Len(t, repo.Load("b").Messages("1"), 2)
}

func TestHandler_Send(t *testing.T) {
	h := NewHandler(NewMemoryRepo(clock.NewFake(t0), testSeed()))
	var sent []string
	h.SetOnSend(func(c Channel, m Message) { sent = append(sent, c.Name+":"+m.Content) })

	post := func(channel, content string, json bool) *httptest.ResponseRecorder {
		body := url.Values{"content": {content}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/chat/"+channel+"/messages", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if json {
			req.Header.Set("Accept", "application/json")
		}
		req.SetPathValue("channel", channel)
		rr := httptest.NewRecorder()
		h.Send(rr, req)
		return rr
	}

	rr := post("1", "hello", false)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/chat?channel=1", rr.Header().Get("Location"))

	rr = post("1", " ", true)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = post("zzz", "hello", true)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = post("2", "json", true)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"content":"json"`)

	assert.Equal(t, []string{"general:hello", "design:json"}, sent)
}
