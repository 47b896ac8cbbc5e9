package mapview

import (
	"context"
	"fmt"
	"time"
)

// DefaultPollSeconds is the live-refresh interval when none is given.
const DefaultPollSeconds = 15

// pollSession is one running live-poll timer. At most one session exists;
// starting a new one cancels the previous first. Each pass reads the current
// selection, so polling follows the operator across route changes.
type pollSession struct {
	interval time.Duration
	timer    Timer
	stopped  bool
}

// StartPolling restarts live polling for the currently selected route. The
// Data Loader runs once immediately, then once per interval. The next tick is
// armed only after the previous load completes, so slow responses cannot pile
// up requests.
func (c *Controller) StartPolling(intervalSeconds int) {
	if intervalSeconds <= 0 {
		intervalSeconds = DefaultPollSeconds
	}

	c.stopPollSession()

	c.mu.Lock()
	routeID := c.selectedRouteID
	if routeID == "" {
		c.mu.Unlock()
		c.setStatus(statusSelectRoute)
		return
	}

	sess := &pollSession{
		interval: time.Duration(intervalSeconds) * time.Second,
	}
	c.poll = sess
	c.mu.Unlock()

	c.logger.Info("live polling started", "route_id", routeID, "interval_s", intervalSeconds)
	c.setStatus(fmt.Sprintf("Polling every %ds", intervalSeconds))

	go c.pollOnce(sess)
}

// StopPolling cancels the active session if one exists. Idempotent; reports
// only when a session was actually canceled.
func (c *Controller) StopPolling() {
	if c.stopPollSession() {
		c.logger.Info("live polling stopped")
		c.setStatus(statusPollingStopped)
	}
}

func (c *Controller) stopPollSession() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.poll
	if sess == nil {
		return false
	}
	sess.stopped = true
	if sess.timer != nil {
		sess.timer.Stop()
	}
	c.poll = nil
	return true
}

// pollOnce runs one Data Loader pass and re-arms the session timer. Each pass
// re-checks that the session is still current and a route is still selected,
// defending against a clear between ticks.
func (c *Controller) pollOnce(sess *pollSession) {
	c.mu.Lock()
	if c.poll != sess || sess.stopped || c.selectedRouteID == "" {
		c.mu.Unlock()
		return
	}
	routeID := c.selectedRouteID
	c.mu.Unlock()

	c.loadRoute(context.Background(), routeID, true)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.poll != sess || sess.stopped {
		return
	}
	sess.timer = c.clock.AfterFunc(sess.interval, func() {
		c.pollOnce(sess)
	})
}
