package cursor

// Latest is the canonical alias for "most recent completed race".
const Latest = -1

// Cursor tracks which completed race the results panel is showing. It does
// no I/O; callers pass the current completed-race count to bound the moves.
type Cursor struct {
	index int
}

func New() *Cursor {
	return &Cursor{index: Latest}
}

func (c *Cursor) Index() int {
	return c.index
}

// StepBack moves one race towards the start of the season and returns the
// new index. From Latest it lands on the second-to-last completed race.
func (c *Cursor) StepBack(completed int) int {
	if c.index == 0 {
		return c.index
	}
	if c.index == Latest {
		c.index = completed - 2
		if c.index < 0 {
			c.index = 0
		}
		return c.index
	}
	c.index--
	if c.index < 0 {
		c.index = 0
	}
	return c.index
}

// StepForward moves one race towards the most recent and returns the new
// index. Reaching the last completed race normalizes to Latest so that the
// last real index and the sentinel are the same logical position.
func (c *Cursor) StepForward(completed int) int {
	if c.index == Latest {
		return c.index
	}
	c.index++
	if c.index >= completed-1 {
		c.index = Latest
	}
	return c.index
}

// Set jumps straight to index i, applying the same normalization as
// StepForward. Used by the race search.
func (c *Cursor) Set(i, completed int) int {
	if i <= Latest {
		c.index = Latest
		return c.index
	}
	if i >= completed-1 {
		c.index = Latest
		return c.index
	}
	c.index = i
	return c.index
}

func (c *Cursor) Reset() {
	c.index = Latest
}

// Restore reinstates a previously stored index without normalization; the
// completed-race count is unknown at startup.
func (c *Cursor) Restore(i int) {
	if i < 0 {
		c.index = Latest
		return
	}
	c.index = i
}
