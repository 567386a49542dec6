package chat

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrUnknownChannel = errors.New("unknown channel")
)

type Kind string

const (
	KindChannel Kind = "channel"
	KindDM      Kind = "dm"
)

type Channel struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Kind   Kind   `json:"type" yaml:"type"`
	Unread int    `json:"unread" yaml:"unread"`
}

type Reaction struct {
	Emoji string `json:"emoji" yaml:"emoji"`
	Count int    `json:"count" yaml:"count"`
}

type Message struct {
	ID        string     `json:"id"`
	ChannelID string     `json:"channelId"`
	User      string     `json:"user"`
	Avatar    string     `json:"avatar"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
	Reactions []Reaction `json:"reactions,omitempty"`
}

// Author is the signed-in user new messages are attributed to.
type Author struct {
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

// Room is one session's view of the workspace chat.
type Room struct {
	mu       sync.RWMutex
	clock    clock.Clock
	author   Author
	channels []Channel
	messages map[string][]Message
	selected string
}

func NewRoom(c clock.Clock, author Author, channels []Channel, messages []Message) *Room {
	r := &Room{
		clock:    c,
		author:   author,
		channels: append([]Channel(nil), channels...),
		messages: make(map[string][]Message),
	}
	for _, m := range messages {
		m.Reactions = append([]Reaction(nil), m.Reactions...)
		r.messages[m.ChannelID] = append(r.messages[m.ChannelID], m)
	}
	if len(r.channels) > 0 {
		r.selected = r.channels[0].ID
	}
	return r
}

func (r *Room) Channels(kind Kind) []Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Channel, 0, len(r.channels))
	for _, c := range r.channels {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (r *Room) Selected() Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, _ := r.channelLocked(r.selected)
	return c
}

// Select switches the open conversation and clears its unread badge.
// Soft failure: no-op if the channel doesn't exist.
func (r *Room) Select(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.channels {
		if r.channels[i].ID == id {
			r.selected = id
			r.channels[i].Unread = 0
			return true
		}
	}
	return false
}

func (r *Room) Messages(channelID string) []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Message(nil), r.messages[channelID]...)
}

// Send appends content to the channel as the session author.
// Whitespace-only input is rejected; content is otherwise kept as typed.
func (r *Room) Send(channelID, content string) (Message, error) {
	if strings.TrimSpace(content) == "" {
		return Message{}, ErrEmptyMessage
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.channelLocked(channelID); !ok {
		return Message{}, fmt.Errorf("send to %q: %w", channelID, ErrUnknownChannel)
	}
	m := Message{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		User:      r.author.Name,
		Avatar:    r.author.Avatar,
		Content:   content,
		Timestamp: r.clock.Now(),
	}
	r.messages[channelID] = append(r.messages[channelID], m)
	return m, nil
}

func (r *Room) channelLocked(id string) (Channel, bool) {
	for _, c := range r.channels {
		if c.ID == id {
			return c, true
		}
	}
	return Channel{}, false
}

// FormatTime renders a message time relative to now: "just now", "5m ago",
// "3h ago", and the clock time once a day has passed.
func FormatTime(ts, now time.Time) string {
	diff := now.Sub(ts)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return ts.Format("3:04 PM")
	}
}
