package loop

import "github.com/plus3/blockfall/tetris"

// Commands buffers engine commands issued during a frame so that every
// system in the frame observes the same engine state.
type Commands struct {
	queue  []tetris.Command
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Push queues a command. Unknown commands panic here rather than at flush
// so the stack trace points at the caller.
func (c *Commands) Push(cmd tetris.Command) {
	if !cmd.Valid() {
		panic("loop: unknown command " + cmd.String())
	}
	c.queue = append(c.queue, cmd)
}

// Defer queues a function to run after the frame's commands are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued engine commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Flush applies queued commands in push order, then runs deferred
// functions, and resets the buffer.
func (c *Commands) Flush(engine *tetris.Engine) {
	for _, cmd := range c.queue {
		engine.Command(cmd)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.queue = c.queue[:0]
	c.defers = c.defers[:0]
}
