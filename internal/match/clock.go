package match

import "sync/atomic"

// generationClock hands out strictly increasing generation numbers. A ranking is
// published only if its generation is newer than the one already published.
type generationClock struct {
	seq atomic.Int64
}

// Next returns the next generation.
func (c *generationClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last generation handed out.
func (c *generationClock) Current() int64 {
	return c.seq.Load()
}
