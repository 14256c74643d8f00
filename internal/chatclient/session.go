package chatclient

import (
	"context"
	"log"
	"strings"
	"sync"

	"botnest/internal/models"
)

// FailureReply is shown as the bot's answer when the relay can't be reached
// or answers with an error status.
const FailureReply = "Oops! Something went wrong"

// Relay is the round trip a Session makes per sent message.
type Relay interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Session holds the client-side chat state: the transcript, the pending input,
// the loading flag and the theme. The transcript lives in memory only.
type Session struct {
	relay  Relay
	themes ThemeStore

	mu        sync.Mutex
	messages  []models.Message
	input     string
	loading   bool
	theme     Theme
	listeners []func()
}

// NewSession restores the saved theme from themes, which may be nil.
func NewSession(relay Relay, themes ThemeStore) *Session {
	s := &Session{relay: relay, themes: themes, theme: ThemeLight}
	if themes != nil {
		theme, err := themes.LoadTheme()
		if err != nil {
			log.Printf("chatclient: loading theme: %v", err)
		} else {
			s.theme = theme
		}
	}
	return s
}

// OnChange registers fn to run after every transcript change. Views use it to
// redraw and scroll to the latest message.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CanSend mirrors the Send button: enabled for non-blank input while idle.
func (s *Session) CanSend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.input) != "" && !s.loading
}

// Send submits the current input. Blank input, or a send while a request is
// still in flight, does nothing and returns false. Otherwise the user message
// is appended, the relay is called once and its reply (or FailureReply) is
// appended; Send blocks until then and returns true.
func (s *Session) Send(ctx context.Context) bool {
	s.mu.Lock()
	text := s.input
	if strings.TrimSpace(text) == "" || s.loading {
		s.mu.Unlock()
		return false
	}
	s.messages = append(s.messages, models.Message{Sender: models.SenderUser, Text: text})
	s.input = ""
	s.loading = true
	s.mu.Unlock()
	s.notify()

	reply, err := s.relay.Chat(ctx, text)
	if err != nil {
		log.Printf("chatclient: %v", err)
		reply = FailureReply
	}

	s.mu.Lock()
	s.messages = append(s.messages, models.Message{Sender: models.SenderBot, Text: reply})
	s.loading = false
	s.mu.Unlock()
	s.notify()

	return true
}

func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips between light and dark and persists the choice. The new
// theme applies even if saving fails.
func (s *Session) ToggleTheme() (Theme, error) {
	s.mu.Lock()
	s.theme = s.theme.Toggled()
	theme := s.theme
	s.mu.Unlock()

	if s.themes == nil {
		return theme, nil
	}
	return theme, s.themes.SaveTheme(theme)
}

func (s *Session) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
