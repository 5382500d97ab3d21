// Package notifier delivers short user-facing notices and optional
// announcements of accepted registrations.
package notifier

import (
	"fmt"
	"io"
	"sync"
)

// Console prints transient notices, one per line.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Success(msg string) { c.print("✔", msg) }

func (c *Console) Error(msg string) { c.print("✖", msg) }

func (c *Console) Info(msg string) { c.print("•", msg) }

func (c *Console) print(mark, msg string) {
	if msg == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", mark, msg)
}
