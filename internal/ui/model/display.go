package model

import "sync"

// ChromeLines are the rows around the table canvas: two player headers,
// status and help.
const ChromeLines = 4

// TermDisplay is the terminal as a layout.Display. A terminal cell is about
// twice as tall as it is wide, so rows count double when reporting the size.
type TermDisplay struct {
	mu     sync.Mutex
	width  int
	height int
}

// SetSize records the terminal size in cells.
func (d *TermDisplay) SetSize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width, d.height = width, height
}

// Size implements layout.Display.
func (d *TermDisplay) Size() (width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height * 2
}
