package packages

import (
	"errors"
	"strconv"
	"strings"
)

var ErrNoPendingEdit = errors.New("no cell edit in progress")

// ParsePriceInput converts raw editor input into a Price. It accepts a finite
// non-negative number or the literal "ON REQUEST" (case-insensitive, tolerant
// of extra whitespace and the ON_REQUEST spelling). Anything else is rejected.
func ParsePriceInput(input string) (Price, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Price{}, ErrInvalidPrice
	}

	normalized := strings.ToUpper(strings.Join(strings.Fields(strings.ReplaceAll(trimmed, "_", " ")), " "))
	if normalized == "ON REQUEST" {
		return OnRequestPrice(), nil
	}

	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Price{}, ErrInvalidPrice
	}
	price := NumericPrice(amount)
	if !price.IsValid() {
		return Price{}, ErrInvalidPrice
	}
	return price, nil
}

// CellEditor tracks the single in-progress cell edit of a matrix authoring
// session. Typed input only reaches the matrix on Commit (Enter); Cancel
// (Escape) discards it.
type CellEditor struct {
	matrix  PricingMatrix
	pending *pendingEdit
}

type pendingEdit struct {
	periodIndex int
	tierIndex   int
	nights      int
	raw         string
}

// NewCellEditor creates an editor over the given matrix. The matrix is
// mutated in place on Commit.
func NewCellEditor(matrix PricingMatrix) *CellEditor {
	return &CellEditor{matrix: matrix}
}

// Begin starts editing a cell, replacing any previous uncommitted edit.
func (e *CellEditor) Begin(periodIndex, tierIndex, nights int) error {
	if periodIndex < 0 || periodIndex >= len(e.matrix) {
		return ErrPeriodIndexOutOfRange
	}
	if tierIndex < 0 {
		return ErrTierIndexOutOfRange
	}
	e.pending = &pendingEdit{periodIndex: periodIndex, tierIndex: tierIndex, nights: nights}
	return nil
}

// SetInput updates the uncommitted input of the current edit.
func (e *CellEditor) SetInput(raw string) error {
	if e.pending == nil {
		return ErrNoPendingEdit
	}
	e.pending.raw = raw
	return nil
}

// Editing reports whether a cell edit is in progress.
func (e *CellEditor) Editing() bool {
	return e.pending != nil
}

// Commit parses the pending input and writes it into the matrix. On parse
// failure the matrix is untouched and the edit stays open for correction.
func (e *CellEditor) Commit() error {
	if e.pending == nil {
		return ErrNoPendingEdit
	}
	price, err := ParsePriceInput(e.pending.raw)
	if err != nil {
		return err
	}
	if err := e.matrix.SetCell(e.pending.periodIndex, e.pending.tierIndex, e.pending.nights, price); err != nil {
		return err
	}
	e.pending = nil
	return nil
}

// Cancel discards the pending edit without touching the matrix.
func (e *CellEditor) Cancel() {
	e.pending = nil
}
