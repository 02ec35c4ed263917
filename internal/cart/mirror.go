package cart

import "github.com/shopspring/decimal"

// MirrorLine is one entry in a client-held cart cache.
type MirrorLine struct {
	LineID    string          `json:"lineId"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Mirror is a client-side cache of the user's cart. It is advisory and
// display-only: the server cart is the source of truth, and callers must
// refresh the mirror with ReplaceAll after every server round trip.
//
// Mirror has value semantics. Every transition returns a new snapshot and
// leaves the receiver untouched; ItemCount is recomputed from the resulting
// lines on every transition, never adjusted incrementally.
type Mirror struct {
	Lines     []MirrorLine `json:"lines"`
	ItemCount int          `json:"itemCount"`
}

func NewMirror() Mirror {
	return Mirror{}
}

// ReplaceAll discards the current lines in favor of the server's.
func (m Mirror) ReplaceAll(lines []MirrorLine) Mirror {
	next := make([]MirrorLine, len(lines))
	copy(next, lines)
	return snapshot(next)
}

// AddLine appends a line, merging quantities when the product is already
// present.
func (m Mirror) AddLine(line MirrorLine) Mirror {
	next := make([]MirrorLine, len(m.Lines), len(m.Lines)+1)
	copy(next, m.Lines)

	for i := range next {
		if next[i].ProductID == line.ProductID {
			next[i].Quantity += line.Quantity
			return snapshot(next)
		}
	}
	return snapshot(append(next, line))
}

// SetQuantity sets the quantity on the product's line. A quantity of zero or
// less removes the line; an unknown product is a no-op.
func (m Mirror) SetQuantity(productID string, quantity int) Mirror {
	if quantity <= 0 {
		return m.RemoveLine(productID)
	}

	next := make([]MirrorLine, len(m.Lines))
	copy(next, m.Lines)
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = quantity
			break
		}
	}
	return snapshot(next)
}

// RemoveLine drops the product's line, keeping order of the rest.
func (m Mirror) RemoveLine(productID string) Mirror {
	next := make([]MirrorLine, 0, len(m.Lines))
	for _, l := range m.Lines {
		if l.ProductID != productID {
			next = append(next, l)
		}
	}
	return snapshot(next)
}

func snapshot(lines []MirrorLine) Mirror {
	m := Mirror{Lines: lines}
	for _, l := range lines {
		m.ItemCount += l.Quantity
	}
	return m
}
