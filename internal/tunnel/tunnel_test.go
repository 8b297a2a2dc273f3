package tunnel

import (
	"testing"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/share"
)

func TestParsePublicURL(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			"cloudflared banner line",
			"2026-08-31T10:00:00Z INF |  https://tidy-otter-example.trycloudflare.com  |",
			"https://tidy-otter-example.trycloudflare.com",
		},
		{
			"plain url",
			"https://abc-123.trycloudflare.com",
			"https://abc-123.trycloudflare.com",
		},
		{"no url", "INF Starting tunnel connection", ""},
		{"wrong domain", "https://example.com/share", ""},
		{"empty line", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePublicURL(tt.line); got != tt.want {
				t.Errorf("ParsePublicURL(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestNewRunner(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 5000

	r := New(cfg, share.NewManager(cfg, nil), nil)
	if r.command != "cloudflared" {
		t.Errorf("command = %q", r.command)
	}
	if r.target != "http://127.0.0.1:5000" {
		t.Errorf("target = %q", r.target)
	}
	if r.Running() {
		t.Error("runner should not report running before Start")
	}
	if r.URL() != "" {
		t.Errorf("URL = %q before the tunnel reports one", r.URL())
	}
}
