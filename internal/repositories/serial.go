package repositories

import "sync"

// serialCounter hands out S.No values for appended rows. It is seeded from the
// sheet's current row count on first use and then incremented under a lock, so
// two concurrent appends can never compute the same serial from a stale count.
type serialCounter struct {
	mu     sync.Mutex
	next   int
	seeded bool
}

// allocate returns the next serial. seed is only called on first use and must
// return the serial the next appended row should carry.
func (c *serialCounter) allocate(seed func() (int, error)) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.seeded {
		n, err := seed()
		if err != nil {
			return 0, err
		}
		c.next = n
		c.seeded = true
	}

	serial := c.next
	c.next++
	return serial, nil
}
