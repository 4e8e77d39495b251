package idgen

import (
	"fmt"
	"sync"
	"time"
)

// Generator issues process-lifetime sequential identifiers. Counters start
// at 1 and are never persisted: after a restart the sequences begin again,
// so previously issued ids can be reissued. Known limitation.
//
// The date embedded in order ids is descriptive only; the counter does not
// reset at midnight.
type Generator struct {
	mu      sync.Mutex
	order   int
	kitchen int
	invoice int
	now     func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

func (g *Generator) NextOrderID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.order++
	return fmt.Sprintf("ORD-%s-%05d", g.now().UTC().Format("2006-01-02"), g.order)
}

func (g *Generator) NextKitchenTicketID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.kitchen++
	return fmt.Sprintf("KT-%04d", g.kitchen)
}

func (g *Generator) NextInvoiceID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invoice++
	return fmt.Sprintf("INV-%05d", g.invoice)
}
