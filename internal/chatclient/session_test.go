package chatclient

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botnest/internal/handlers"
	"botnest/internal/models"
	"botnest/internal/router"
)

type stubRelay struct {
	reply string
	err   error

	calls  []string
	onCall func()
}

func (s *stubRelay) Chat(ctx context.Context, message string) (string, error) {
	s.calls = append(s.calls, message)
	if s.onCall != nil {
		s.onCall()
	}
	return s.reply, s.err
}

func TestSession_SendIgnoresBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		relay := &stubRelay{reply: "unused"}
		s := NewSession(relay, nil)
		changes := 0
		s.OnChange(func() { changes++ })

		s.SetInput(input)
		assert.False(t, s.CanSend())
		assert.False(t, s.Send(context.Background()))

		assert.Empty(t, s.Messages())
		assert.Empty(t, relay.calls)
		assert.Zero(t, changes)
	}
}

func TestSession_SendSuccess(t *testing.T) {
	relay := &stubRelay{reply: "Hi there!"}
	s := NewSession(relay, nil)

	var loadingDuringCall bool
	relay.onCall = func() { loadingDuringCall = s.Loading() }

	s.SetInput("hello")
	require.True(t, s.Send(context.Background()))

	assert.True(t, loadingDuringCall)
	assert.False(t, s.Loading())
	assert.Empty(t, s.Input())
	assert.Equal(t, []string{"hello"}, relay.calls)
	assert.Equal(t, []models.Message{
		{Sender: models.SenderUser, Text: "hello"},
		{Sender: models.SenderBot, Text: "Hi there!"},
	}, s.Messages())
}

func TestSession_SendKeepsInputVerbatim(t *testing.T) {
	relay := &stubRelay{reply: "ok"}
	s := NewSession(relay, nil)

	s.SetInput("  padded  ")
	s.Send(context.Background())

	assert.Equal(t, []string{"  padded  "}, relay.calls)
	assert.Equal(t, "  padded  ", s.Messages()[0].Text)
}

func TestSession_SendFailure(t *testing.T) {
	relay := &stubRelay{err: errors.New("connection refused")}
	s := NewSession(relay, nil)

	s.SetInput("hello")
	require.True(t, s.Send(context.Background()))

	messages := s.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, models.Message{Sender: models.SenderBot, Text: FailureReply}, messages[1])
	assert.False(t, s.Loading())
}

func TestSession_SendWhileLoadingIsNoop(t *testing.T) {
	relay := &stubRelay{reply: "first"}
	s := NewSession(relay, nil)

	var nested bool
	relay.onCall = func() {
		relay.onCall = nil
		s.SetInput("second")
		assert.False(t, s.CanSend())
		nested = s.Send(context.Background())
	}

	s.SetInput("first")
	s.Send(context.Background())

	assert.False(t, nested)
	assert.Equal(t, []string{"first"}, relay.calls)
	assert.Len(t, s.Messages(), 2)
}

func TestSession_NotifiesOnEveryTranscriptChange(t *testing.T) {
	s := NewSession(&stubRelay{reply: "Hi there!"}, nil)

	var lengths []int
	s.OnChange(func() { lengths = append(lengths, len(s.Messages())) })

	s.SetInput("hello")
	s.Send(context.Background())

	assert.Equal(t, []int{1, 2}, lengths)
}

func TestSession_ToggleThemePersists(t *testing.T) {
	store := NewFileThemeStore(t.TempDir() + "/settings.yaml")
	s := NewSession(&stubRelay{}, store)
	assert.Equal(t, ThemeLight, s.Theme())

	theme, err := s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	restored := NewSession(&stubRelay{}, store)
	assert.Equal(t, ThemeDark, restored.Theme())
	assert.Empty(t, restored.Messages())
}

func TestSession_AgainstRelay(t *testing.T) {
	relayServer := httptest.NewServer(router.New(handlers.NewChatHandler(fixedCompleter("Hi there!"), nil), nil, "*"))
	defer relayServer.Close()

	s := NewSession(NewRelayClient(relayServer.URL, relayServer.Client()), nil)
	s.SetInput("hello")
	require.True(t, s.Send(context.Background()))

	assert.Equal(t, []models.Message{
		{Sender: models.SenderUser, Text: "hello"},
		{Sender: models.SenderBot, Text: "Hi there!"},
	}, s.Messages())
	assert.False(t, s.Loading())
}

func TestSession_RelayUnreachable(t *testing.T) {
	relayServer := httptest.NewServer(nil)
	url := relayServer.URL
	relayServer.Close()

	s := NewSession(NewRelayClient(url, nil), nil)
	s.SetInput("hello")
	s.Send(context.Background())

	messages := s.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, FailureReply, messages[1].Text)
	assert.False(t, s.Loading())
}

type fixedCompleter string

func (f fixedCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return string(f), nil
}

func (f fixedCompleter) Name() string { return "fixed" }
