package chat

import (
	"time"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

// Seed is the yaml form of the chat workspace. Message ages are minutes
// before the room is created.
type Seed struct {
	Author   Author        `yaml:"author"`
	Channels []Channel     `yaml:"channels"`
	Messages []MessageSeed `yaml:"messages"`
}

type MessageSeed struct {
	ID         string     `yaml:"id"`
	Channel    string     `yaml:"channel"`
	User       string     `yaml:"user"`
	Avatar     string     `yaml:"avatar"`
	Content    string     `yaml:"content"`
	AgeMinutes int        `yaml:"age_minutes"`
	Reactions  []Reaction `yaml:"reactions"`
}

func (s Seed) NewRoom(c clock.Clock) *Room {
	now := c.Now()
	msgs := make([]Message, 0, len(s.Messages))
	for _, m := range s.Messages {
		msgs = append(msgs, Message{
			ID:        m.ID,
			ChannelID: m.Channel,
			User:      m.User,
			Avatar:    m.Avatar,
			Content:   m.Content,
			Timestamp: now.Add(-time.Duration(m.AgeMinutes) * time.Minute),
			Reactions: m.Reactions,
		})
	}
	return NewRoom(c, s.Author, s.Channels, msgs)
}
