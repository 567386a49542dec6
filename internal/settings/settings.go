package settings

import (
	"errors"
	"net/mail"
	"strings"
	"sync"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrUnknownRule  = errors.New("unknown automation rule")
)

// Sections listed in the settings side menu.
var Sections = []string{"Profile", "Notifications", "Security", "Automation"}

type Rule struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

func (r Rule) StateLabel() string {
	if r.Enabled {
		return "Active"
	}
	return "Inactive"
}

type Profile struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role" yaml:"role"`
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

type Seed struct {
	Profile Profile `yaml:"profile"`
	Rules   []Rule  `yaml:"rules"`
}

// Settings is one session's preferences.
type Settings struct {
	mu      sync.RWMutex
	profile Profile
	rules   []Rule
}

func New(seed Seed) *Settings {
	return &Settings{profile: seed.Profile, rules: append([]Rule(nil), seed.Rules...)}
}

func (s *Settings) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Settings) SaveProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Role = strings.TrimSpace(p.Role)
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	return nil
}

func (s *Settings) Rules() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Rule(nil), s.rules...)
}

// Toggle flips one rule and returns its new state.
func (s *Settings) Toggle(id string) (Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules[i].Enabled = !s.rules[i].Enabled
			return s.rules[i], nil
		}
	}
	return Rule{}, ErrUnknownRule
}

// ApplyRules enables exactly the listed rules. Unknown ids are ignored.
func (s *Settings) ApplyRules(enabled []string) {
	on := make(map[string]bool, len(enabled))
	for _, id := range enabled {
		on[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rules {
		s.rules[i].Enabled = on[s.rules[i].ID]
	}
}

func (s *Settings) Enabled(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rules {
		if r.ID == id {
			return r.Enabled
		}
	}
	return false
}

type MemoryRepo struct {
	mu       sync.RWMutex
	seed     Seed
	sessions map[string]*Settings
}

func NewMemoryRepo(seed Seed) *MemoryRepo {
	return &MemoryRepo{seed: seed, sessions: make(map[string]*Settings)}
}

func (r *MemoryRepo) Load(sessionID string) *Settings {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		return s
	}
	s = New(r.seed)
	r.sessions[sessionID] = s
	return s
}

func (r *MemoryRepo) Discard(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}
