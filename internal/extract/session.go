package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/chromedp/chromedp"
)

// UserAgent presented by the headless browser.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ErrSessionInit marks failures to stand up the browser session or perform
// the initial navigation. It is fatal to the whole run.
var ErrSessionInit = errors.New("session init")

// Session is one live browser session bound to the target URL. Exactly one
// exists per run and only the SessionManager may create or destroy it.
type Session struct {
	backend Backend
	cancels []context.CancelFunc
	once    sync.Once
}

// Backend returns the page-rendering backend driving this session.
func (s *Session) Backend() Backend {
	return s.backend
}

// SessionManager owns the browser process lifecycle.
type SessionManager struct {
	timing Timing
}

// NewSessionManager creates a session manager with the given settle timing.
func NewSessionManager(timing Timing) *SessionManager {
	return &SessionManager{timing: timing.withDefaults()}
}

// Acquire launches a headless browser and navigates it to url. Every
// successful Acquire must be paired with exactly one Release; callers defer
// it immediately so no exit path can leak the browser process.
func (m *SessionManager) Acquire(ctx context.Context, url string) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	sess := &Session{
		backend: newChromeBackend(browserCtx, m.timing),
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
	}

	if err := sess.backend.Navigate(ctx, url); err != nil {
		m.Release(sess)
		return nil, fmt.Errorf("%w: %v", ErrSessionInit, err)
	}

	log.Printf("Browser session opened at %s", url)
	return sess, nil
}

// Release stops the browser. Safe to call more than once; only the first
// call tears the session down.
func (m *SessionManager) Release(sess *Session) {
	if sess == nil {
		return
	}
	sess.once.Do(func() {
		if sess.backend != nil {
			_ = sess.backend.Close()
		}
		for _, cancel := range sess.cancels {
			cancel()
		}
		log.Println("Browser session closed")
	})
}
