package tui

import "time"

// toastTTL is how long a status message stays in the footer.
const toastTTL = 1500 * time.Millisecond

// sessionClock tracks how long the active session has been open. The start
// time comes from the session record, so it survives restarts.
type sessionClock struct {
	startTime time.Time
	elapsed   time.Duration
	running   bool
}

func (c *sessionClock) start(at time.Time) {
	c.startTime = at
	c.running = true
	c.elapsed = time.Since(at)
}

func (c *sessionClock) stop() {
	c.running = false
	c.elapsed = 0
}

func (c *sessionClock) tick(now time.Time) {
	if c.running {
		c.elapsed = now.Sub(c.startTime)
	}
}

func (c sessionClock) currentElapsed() time.Duration {
	if !c.running || c.elapsed < 0 {
		return 0
	}
	return c.elapsed
}

// toast is a transient status line.
type toast struct {
	text    string
	isError bool
	expires time.Time
}

func newToast(text string, isError bool, now time.Time) toast {
	return toast{text: text, isError: isError, expires: now.Add(toastTTL)}
}

func (t toast) visible(now time.Time) bool {
	return t.text != "" && now.Before(t.expires)
}
