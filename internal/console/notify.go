// Package console holds the view controllers behind each management
// screen: the generic resource manager shared by sources and
// destinations, the schedule and archive views, the user panel, and the
// log viewer. Views own their fetched lists exclusively; there is no
// cross-view cache.
package console

import (
	"fmt"
	"sync"
	"time"
)

// noticeTTL is how long a transient notification stays visible.
const noticeTTL = 2 * time.Second

// Notice is one transient notification shown after an action, success or
// failure alike.
type Notice struct {
	Message string
	Status  int
	At      time.Time
}

// Key identifies a notice for replacement: repeats of the same message
// and status replace the previous one rather than stacking.
func (n Notice) Key() string {
	return fmt.Sprintf("%s|%d", n.Message, n.Status)
}

// Success reports whether the notice announces a successful action.
func (n Notice) Success() bool {
	return n.Status < 400
}

// Notifier receives notices from view controllers.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Center collects notices and exposes the currently visible ones.
type Center struct {
	mu     sync.Mutex
	byKey  map[string]Notice
	order  []string
	now    func() time.Time
}

func NewCenter() *Center {
	return &Center{
		byKey: make(map[string]Notice),
		now:   time.Now,
	}
}

// Notify records a notice, replacing any existing one with the same key.
func (c *Center) Notify(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n.At.IsZero() {
		n.At = c.now()
	}

	key := n.Key()
	if _, exists := c.byKey[key]; !exists {
		c.order = append(c.order, key)
	}
	c.byKey[key] = n
}

// Active returns the notices still within their display window, oldest
// first, and drops the expired ones.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-noticeTTL)
	var out []Notice
	var keep []string
	for _, key := range c.order {
		n := c.byKey[key]
		if n.At.Before(cutoff) {
			delete(c.byKey, key)
			continue
		}
		keep = append(keep, key)
		out = append(out, n)
	}
	c.order = keep
	return out
}
