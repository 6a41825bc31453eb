package containers

import "github.com/inpefess/vampire/pkg/kernel"

// Unprocessed is the FIFO container for clauses that have not yet been
// through immediate simplification.
type Unprocessed struct {
	queue []*kernel.Clause

	Added    ClauseEvent
	Removed  ClauseEvent
	Selected ClauseEvent
}

// NewUnprocessed returns an empty container.
func NewUnprocessed() *Unprocessed {
	return &Unprocessed{}
}

// Add appends c to the queue.
func (u *Unprocessed) Add(c *kernel.Clause) {
	c.SetStore(kernel.StoreUnprocessed)
	u.queue = append(u.queue, c)
	u.Added.Fire(c)
}

// PopSelected removes and returns the oldest clause; nil when empty.
func (u *Unprocessed) PopSelected() *kernel.Clause {
	if len(u.queue) == 0 {
		return nil
	}
	c := u.queue[0]
	u.queue = u.queue[1:]
	c.SetStore(kernel.StoreNone)
	u.Selected.Fire(c)
	return c
}

// IsEmpty reports whether the container holds no clauses.
func (u *Unprocessed) IsEmpty() bool { return len(u.queue) == 0 }

// Size returns the number of held clauses.
func (u *Unprocessed) Size() int { return len(u.queue) }
