package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"botnest/internal/chatclient"
	"botnest/internal/config"
	"botnest/internal/models"
)

type palette struct {
	user, bot, dim, reset string
}

var palettes = map[chatclient.Theme]palette{
	chatclient.ThemeLight: {user: "\033[34m", bot: "\033[30m", dim: "\033[90m", reset: "\033[0m"},
	chatclient.ThemeDark:  {user: "\033[96m", bot: "\033[97m", dim: "\033[37m", reset: "\033[0m"},
}

// view prints transcript entries as they are appended. A terminal scrolls on
// its own, so following the latest message means printing only what's new.
type view struct {
	out     io.Writer
	session *chatclient.Session
	printed int
}

func (v *view) render() {
	p := palettes[v.session.Theme()]
	messages := v.session.Messages()
	for _, msg := range messages[v.printed:] {
		color, label := p.bot, "🤖 bot"
		if msg.Sender == models.SenderUser {
			color, label = p.user, "you"
		}
		fmt.Fprintf(v.out, "%s%s> %s%s\n", color, label, msg.Text, p.reset)
	}
	v.printed = len(messages)

	if v.session.Loading() {
		fmt.Fprintf(v.out, "%sBot is typing...%s\n", p.dim, p.reset)
	}
}

func main() {
	// Log lines would interleave with the transcript; keep them on stderr.
	log.SetOutput(os.Stderr)

	cfg := config.LoadClient()

	var themes chatclient.ThemeStore
	themePath := cfg.ThemeFile
	if themePath == "" {
		if p, err := chatclient.DefaultThemePath(); err == nil {
			themePath = p
		}
	}
	if themePath != "" {
		themes = chatclient.NewFileThemeStore(themePath)
	}

	session := chatclient.NewSession(chatclient.NewRelayClient(cfg.APIBaseURL, nil), themes)
	v := &view{out: os.Stdout, session: session}
	session.OnChange(v.render)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("🤖 BotNest (%s): type a message, /theme to switch theme, /quit to exit\n", cfg.APIBaseURL)

	if err := run(ctx, os.Stdin, os.Stdout, session); err != nil {
		log.Printf("reading input: %v", err)
	}
}

// maxLineBytes caps one typed or pasted message.
const maxLineBytes = 1 << 20

// run reads one message per line from in until EOF, /quit or ctx ends.
func run(ctx context.Context, in io.Reader, out io.Writer, session *chatclient.Session) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "/quit":
			return nil
		case "/theme":
			theme, err := session.ToggleTheme()
			if err != nil {
				log.Printf("saving theme: %v", err)
			}
			fmt.Fprintf(out, "theme: %s\n", theme)
			continue
		}

		session.SetInput(line)
		session.Send(ctx)

		if ctx.Err() != nil {
			return nil
		}
	}
	return scanner.Err()
}
