// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package mode

import "sync"

// Event is an external trigger the controller maps to a Mode (spec §4.8:
// "file saved, VCS pull, IDE idle, app startup").
type Event int

const (
	EventFileSaved Event = iota
	EventVCSPull
	EventIdle
	EventStartup
)

// Controller holds the current mode and the idle detector that throttles
// transitions into Balanced/Deep.
type Controller struct {
	mu      sync.Mutex
	current Mode
	idle    *IdleDetector
}

// NewController starts in Fast mode with the given idle detector.
func NewController(idle *IdleDetector) *Controller {
	return &Controller{current: Fast, idle: idle}
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// HandleEvent maps an event to a mode transition per spec §4.8 and the
// idle-based throttle spec §5 describes ("The controller throttles
// Balanced/Deep based on an idle detector and user activity"). schemaOK is
// only consulted for EventStartup.
func (c *Controller) HandleEvent(ev Event, schemaOK bool) Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev {
	case EventFileSaved:
		c.current = Fast
	case EventVCSPull:
		c.current = Balanced
	case EventIdle:
		if c.idle != nil && c.idle.IsIdle() {
			c.current = Deep
		} else {
			c.current = Balanced
		}
	case EventStartup:
		if schemaOK {
			c.current = Fast
		} else {
			c.current = Repair
		}
	}
	return c.current
}
