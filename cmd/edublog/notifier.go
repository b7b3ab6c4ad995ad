package main

import (
	"fmt"
	"io"
	"sync"
)

// console serializes writes to the terminal. Search results arrive on a
// timer goroutine while the prompt loop is printing.
type console struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsole(out io.Writer) *console {
	return &console{out: out}
}

func (c *console) Printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Alert prints "[Title] message".
func (c *console) Alert(title, message string) {
	c.Printf("[%s] %s\n", title, message)
}
