package main

import (
	"bytes"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cube-combine/internal/config"
	"cube-combine/internal/scene"

	gossh "github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 chars", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty input", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes truncated by byte limit", "日本語のテスト名前", "日本語のテ"},
		{"emoji truncated by byte limit", "🎮Player🎮Name🎮", "🎮Player🎮Na"},
		{"mixed printable and control", "a\x00b\x01c\x02d", "abcd"},
		{"tabs stripped", "hello\tworld", "helloworld"},
		{"newlines stripped", "hello\nworld", "helloworld"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeName(tc.input)
			if got != tc.expect {
				t.Errorf("sanitizeName(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestAllowedTerms(t *testing.T) {
	cases := []struct {
		name    string
		term    string
		allowed bool
	}{
		{"xterm-256color", "xterm-256color", true},
		{"tmux", "tmux", true},
		{"linux", "linux", true},
		{"vt100", "vt100", true},
		{"screen", "screen", true},
		{"rxvt-unicode-256color", "rxvt-unicode-256color", true},
		{"unknown term", "evil-term", false},
		{"path traversal", "../../../etc/passwd", false},
		{"empty string", "", false},
		{"xterm-kitty", "xterm-kitty", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := allowedTerms[tc.term]
			if got != tc.allowed {
				t.Errorf("allowedTerms[%q] = %v, want %v", tc.term, got, tc.allowed)
			}
		})
	}
}

// fakeSession implements the parts of gossh.Session the hub touches.
type fakeSession struct {
	gossh.Session
	user   string
	pty    bool
	term   string
	out    bytes.Buffer
	exited int
}

func (s *fakeSession) User() string      { return s.user }
func (s *fakeSession) Environ() []string { return nil }
func (s *fakeSession) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5000}
}
func (s *fakeSession) Write(b []byte) (int, error) { return s.out.Write(b) }
func (s *fakeSession) Exit(code int) error         { s.exited = code; return nil }

func (s *fakeSession) Pty() (gossh.Pty, <-chan gossh.Window, bool) {
	if !s.pty {
		return gossh.Pty{}, nil, false
	}
	return gossh.Pty{Term: s.term, Window: gossh.Window{Width: 80, Height: 24}}, nil, true
}

func testHub(t *testing.T, maxSessions int) *hub {
	t.Helper()
	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Server.MaxSessions = maxSessions
	sc, err := scene.Default()
	if err != nil {
		t.Fatal(err)
	}
	return newHub(cfg, sc, zerolog.Nop())
}

func TestHubRunsSessionWithCleanName(t *testing.T) {
	h := testHub(t, 2)
	played := false
	h.run = func(gossh.Session, zerolog.Logger) error {
		played = true
		if h.count() != 1 {
			t.Errorf("active sessions during play = %d; want 1", h.count())
		}
		return nil
	}
	s := &fakeSession{user: "bob\x1b", pty: true, term: "xterm-256color"}
	h.handleSession(s)

	if !played {
		t.Fatal("session was not played")
	}
	if s.exited != 0 {
		t.Errorf("exit code = %d; want 0", s.exited)
	}
	if h.count() != 0 {
		t.Errorf("session not released, active = %d", h.count())
	}
}

func TestHubRejectsSessionWithoutPty(t *testing.T) {
	h := testHub(t, 2)
	h.run = func(gossh.Session, zerolog.Logger) error {
		t.Fatal("played without a PTY")
		return nil
	}
	s := &fakeSession{user: "ann"}
	h.handleSession(s)
	if s.exited != 1 || !strings.Contains(s.out.String(), "ssh -t") {
		t.Fatalf("exit = %d, output %q", s.exited, s.out.String())
	}
}

func TestHubRejectsUnknownTerminal(t *testing.T) {
	h := testHub(t, 2)
	h.run = func(gossh.Session, zerolog.Logger) error {
		t.Fatal("played on an unknown terminal")
		return nil
	}
	s := &fakeSession{user: "ann", pty: true, term: "../../etc/passwd"}
	h.handleSession(s)
	if s.exited != 1 || !strings.Contains(s.out.String(), "Unsupported terminal") {
		t.Fatalf("exit = %d, output %q", s.exited, s.out.String())
	}
}

func TestHubTurnsAwaySessionsWhenFull(t *testing.T) {
	h := testHub(t, 1)
	playing := make(chan struct{})
	release := make(chan struct{})
	h.run = func(gossh.Session, zerolog.Logger) error {
		close(playing)
		<-release
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.handleSession(&fakeSession{user: "first", pty: true, term: "tmux"})
	}()
	<-playing

	second := &fakeSession{user: "second", pty: true, term: "tmux"}
	h.handleSession(second)
	if second.exited != 1 || !strings.Contains(second.out.String(), "full") {
		t.Fatalf("second session: exit = %d, output %q", second.exited, second.out.String())
	}

	close(release)
	wg.Wait()
	if h.count() != 0 {
		t.Fatalf("active = %d after both sessions ended", h.count())
	}
}

func TestHubReportsSessionFailure(t *testing.T) {
	h := testHub(t, 1)
	h.run = func(gossh.Session, zerolog.Logger) error { return errors.New("screen init: boom") }
	s := &fakeSession{user: "ann", pty: true, term: "vt100"}
	h.handleSession(s)
	if s.exited != 1 || !strings.Contains(s.out.String(), "boom") {
		t.Fatalf("exit = %d, output %q", s.exited, s.out.String())
	}
	if h.count() != 0 {
		t.Fatal("failed session still counted")
	}
}

func TestHostKeyIsGeneratedThenReused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	first, err := loadOrCreateHostKey(path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("host key not persisted: %v", err)
	}
	second, err := loadOrCreateHostKey(path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.PublicKey().Marshal(), second.PublicKey().Marshal()) {
		t.Fatal("reloaded host key differs from the generated one")
	}
}

func TestHostKeyReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	if err := os.WriteFile(path, []byte("not a key"), 0o600); err != nil {
		t.Fatal(err)
	}
	signer, err := loadOrCreateHostKey(path, zerolog.Nop())
	if err != nil || signer == nil {
		t.Fatalf("signer = %v, err = %v", signer, err)
	}
}
