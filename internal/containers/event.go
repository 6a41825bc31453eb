// Package containers implements the three clause containers of the
// given-clause loop: Unprocessed, Passive and Active. Containers fire their
// observer events synchronously and exactly once per transition; re-entering
// a container from one of its own event handlers is a programmer error.
package containers

import "github.com/inpefess/vampire/pkg/kernel"

// ClauseEventHandler observes one container transition.
type ClauseEventHandler func(c *kernel.Clause)

// ClauseEvent is a synchronous observer list.
type ClauseEvent struct {
	handlers []ClauseEventHandler
}

// Subscribe registers a handler. Handlers run in subscription order.
func (e *ClauseEvent) Subscribe(h ClauseEventHandler) {
	e.handlers = append(e.handlers, h)
}

// Fire invokes every handler with c.
func (e *ClauseEvent) Fire(c *kernel.Clause) {
	for _, h := range e.handlers {
		h(c)
	}
}
