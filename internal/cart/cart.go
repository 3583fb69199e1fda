package cart

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is an ordered list of lines with at most one line per Key.
// It serializes as a bare JSON array.
type Cart struct {
	lines []Line
}

// New builds a cart from lines, folding duplicate keys together.
func New(lines []Line) Cart {
	var c Cart
	for _, line := range lines {
		c.merge(line)
	}
	return c
}

// Lines returns a copy of the cart lines in order.
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Add merges qty into the line with the same key or appends a new line.
// qty below 1 is treated as 1.
func (c *Cart) Add(product ProductSnapshot, qty int, opts Options) {
	if qty < 1 {
		qty = 1
	}
	c.merge(Line{
		Product: product,
		Qty:     qty,
		Color:   optional(opts.Color),
		Size:    optional(opts.Size),
	})
}

func (c *Cart) merge(line Line) {
	line.Color = optional(line.Color)
	line.Size = optional(line.Size)
	if i := c.index(line.Key()); i >= 0 {
		c.lines[i].Qty += line.Qty
		return
	}
	c.lines = append(c.lines, line)
}

// Remove deletes the line with the given key. Absent keys are ignored.
func (c *Cart) Remove(productID uuid.UUID, opts Options) {
	i := c.index(KeyFor(productID, opts))
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
}

// UpdateQty stores qty verbatim on the matching line. Callers clamp.
func (c *Cart) UpdateQty(productID uuid.UUID, qty int, opts Options) {
	if i := c.index(KeyFor(productID, opts)); i >= 0 {
		c.lines[i].Qty = qty
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Total sums price × qty over every line.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Qty returns the quantity held for key, 0 when absent.
func (c Cart) Qty(key Key) int {
	if i := c.index(key); i >= 0 {
		return c.lines[i].Qty
	}
	return 0
}

func (c Cart) index(key Key) int {
	for i, line := range c.lines {
		if line.Key() == key {
			return i
		}
	}
	return -1
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.lines)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*c = New(lines)
	return nil
}
