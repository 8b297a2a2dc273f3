// Package tunnel wraps an external tunnel CLI (cloudflared by default) that
// exposes the local web server to collaborators. All tunneling logic lives in
// the external binary; this package only manages its lifecycle and relays the
// public URL it prints.
package tunnel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/logger"
	"github.com/hpungsan/promptbin/internal/share"
)

// publicURLRegex matches the ephemeral URL cloudflared prints on startup.
var publicURLRegex = regexp.MustCompile(`https://[a-z0-9-]+\.trycloudflare\.com`)

// suspensionPollInterval is how often the runner checks the share manager's
// suspension flag.
const suspensionPollInterval = 5 * time.Second

// Runner manages one tunnel subprocess for the lifetime of a serve session.
type Runner struct {
	command string
	target  string
	shares  *share.Manager
	log     logger.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	url     string
	session string
}

// New creates a Runner pointing the configured tunnel command at the local
// web server address.
func New(cfg *config.Config, shares *share.Manager, log logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{
		command: cfg.TunnelCommand,
		target:  fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port),
		shares:  shares,
		log:     log,
	}
}

// Start launches the tunnel subprocess and begins scanning its output for
// the public URL. The subprocess is bound to ctx: cancelling it tears the
// tunnel down. Returns an error only if the process fails to start.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return fmt.Errorf("tunnel already running")
	}

	cmd := exec.CommandContext(ctx, r.command, "tunnel", "--url", r.target)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("tunnel stdout pipe: %w", err)
	}
	// cloudflared logs the URL on stderr
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("tunnel stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start tunnel %q: %w", r.command, err)
	}

	r.cmd = cmd
	r.session = uuid.NewString()
	r.log.Info("tunnel starting",
		logger.String("command", r.command),
		logger.String("target", r.target),
		logger.String("session", r.session))

	go r.scan(stdout)
	go r.scan(stderr)
	go r.watchSuspension(ctx)
	go func() {
		err := cmd.Wait()
		r.mu.Lock()
		r.cmd = nil
		r.url = ""
		r.mu.Unlock()
		if err != nil && ctx.Err() == nil {
			r.log.Warn("tunnel exited", logger.Error(err))
		} else {
			r.log.Info("tunnel stopped", logger.String("session", r.session))
		}
	}()

	return nil
}

// scan watches one output stream for the public URL.
func (r *Runner) scan(stream io.Reader) {
	scanner := bufio.NewScanner(stream)
	for scanner.Scan() {
		if url := ParsePublicURL(scanner.Text()); url != "" {
			r.mu.Lock()
			r.url = url
			r.mu.Unlock()
			r.log.Info("tunnel established", logger.String("url", url))
		}
	}
}

// watchSuspension polls the share manager's state flag and logs transitions,
// so the operator sees when the share surface is paused by rate limiting.
func (r *Runner) watchSuspension(ctx context.Context) {
	ticker := time.NewTicker(suspensionPollInterval)
	defer ticker.Stop()

	suspended := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := r.shares.Suspended()
			if now && !suspended {
				r.log.Warn("share surface paused: issuance rate limit hit")
			} else if !now && suspended {
				r.log.Info("share surface resumed")
			}
			suspended = now
		}
	}
}

// URL returns the public URL once the tunnel has reported it, else "".
func (r *Runner) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.url
}

// Running reports whether the subprocess is alive.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cmd != nil
}

// Stop terminates the tunnel subprocess if it is running.
func (r *Runner) Stop() {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

// ParsePublicURL extracts the public tunnel URL from one output line, or ""
// when the line does not contain one.
func ParsePublicURL(line string) string {
	return publicURLRegex.FindString(line)
}
