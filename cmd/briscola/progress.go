package main

import (
	"fmt"
	"io"
	"sync"
)

// dotsTotal fits a batch line into an 80-column terminal
const dotsTotal = 40

// SimpleProgress prints a row of dots per batch without redrawing the line
type SimpleProgress struct {
	mu          sync.Mutex
	w           io.Writer
	dotsPrinted int
}

// NewSimpleProgress creates a progress printer for one batch
func NewSimpleProgress(w io.Writer, label string) *SimpleProgress {
	fmt.Fprintf(w, "%s: ", label)
	return &SimpleProgress{w: w}
}

// Update records that completed of total games have finished
func (p *SimpleProgress) Update(completed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total <= 0 {
		total = 1
	}
	target := min(completed*dotsTotal/total, dotsTotal)
	for ; p.dotsPrinted < target; p.dotsPrinted++ {
		fmt.Fprint(p.w, ".")
	}
	if completed >= total && p.dotsPrinted == dotsTotal {
		fmt.Fprintln(p.w, " done")
		p.dotsPrinted++
	}
}

// Finish terminates the line if the batch stopped early
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dotsPrinted <= dotsTotal {
		fmt.Fprintln(p.w, " stopped")
		p.dotsPrinted = dotsTotal + 1
	}
}
