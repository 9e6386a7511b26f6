package packages

import (
	"errors"
	"testing"
)

func TestCellEditorCommit(t *testing.T) {
	matrix := PricingMatrix{monthPeriod("June")}
	editor := NewCellEditor(matrix)

	if err := editor.Begin(0, 0, 5); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if !editor.Editing() {
		t.Fatal("Editing() = false after Begin")
	}
	if err := editor.SetInput("480"); err != nil {
		t.Fatalf("SetInput() error = %v", err)
	}
	if err := editor.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if editor.Editing() {
		t.Error("Editing() = true after Commit")
	}

	cell, ok := matrix[0].Cell(0, 5)
	if !ok || cell.Price.Amount() != 480 {
		t.Errorf("committed cell = %+v (found=%v), want 480", cell, ok)
	}
}

func TestCellEditorCommitInvalidKeepsEditOpen(t *testing.T) {
	matrix := PricingMatrix{monthPeriod("June")}
	editor := NewCellEditor(matrix)

	if err := editor.Begin(0, 0, 5); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := editor.SetInput("-40"); err != nil {
		t.Fatalf("SetInput() error = %v", err)
	}

	if err := editor.Commit(); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("Commit() error = %v, want ErrInvalidPrice", err)
	}
	if !editor.Editing() {
		t.Error("failed commit should leave the edit open for correction")
	}
	if _, ok := matrix[0].Cell(0, 5); ok {
		t.Error("failed commit must not touch the matrix")
	}

	// Correct the input and commit again
	if err := editor.SetInput("on request"); err != nil {
		t.Fatalf("SetInput() error = %v", err)
	}
	if err := editor.Commit(); err != nil {
		t.Fatalf("Commit() after correction error = %v", err)
	}
	cell, ok := matrix[0].Cell(0, 5)
	if !ok || !cell.Price.IsOnRequest() {
		t.Error("corrected commit did not write ON_REQUEST")
	}
}

func TestCellEditorCancel(t *testing.T) {
	matrix := PricingMatrix{monthPeriod("June")}
	editor := NewCellEditor(matrix)

	if err := editor.Begin(0, 1, 3); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := editor.SetInput("700"); err != nil {
		t.Fatalf("SetInput() error = %v", err)
	}
	editor.Cancel()

	if editor.Editing() {
		t.Error("Editing() = true after Cancel")
	}
	if _, ok := matrix[0].Cell(1, 3); ok {
		t.Error("Cancel must not write to the matrix")
	}
	if err := editor.Commit(); !errors.Is(err, ErrNoPendingEdit) {
		t.Errorf("Commit() after Cancel = %v, want ErrNoPendingEdit", err)
	}
}

func TestCellEditorBeginValidation(t *testing.T) {
	editor := NewCellEditor(PricingMatrix{monthPeriod("June")})

	if err := editor.Begin(4, 0, 3); !errors.Is(err, ErrPeriodIndexOutOfRange) {
		t.Errorf("Begin() bad period = %v, want ErrPeriodIndexOutOfRange", err)
	}
	if err := editor.Begin(0, -2, 3); !errors.Is(err, ErrTierIndexOutOfRange) {
		t.Errorf("Begin() bad tier = %v, want ErrTierIndexOutOfRange", err)
	}
	if err := editor.SetInput("5"); !errors.Is(err, ErrNoPendingEdit) {
		t.Errorf("SetInput() without Begin = %v, want ErrNoPendingEdit", err)
	}
}

func TestCellEditorBeginReplacesPendingEdit(t *testing.T) {
	matrix := PricingMatrix{monthPeriod("June")}
	editor := NewCellEditor(matrix)

	if err := editor.Begin(0, 0, 3); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := editor.SetInput("100"); err != nil {
		t.Fatalf("SetInput() error = %v", err)
	}

	// Moving to another cell discards the uncommitted input
	if err := editor.Begin(0, 1, 3); err != nil {
		t.Fatalf("second Begin() error = %v", err)
	}
	if err := editor.SetInput("200"); err != nil {
		t.Fatalf("SetInput() error = %v", err)
	}
	if err := editor.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if _, ok := matrix[0].Cell(0, 3); ok {
		t.Error("abandoned edit should not have been written")
	}
	cell, ok := matrix[0].Cell(1, 3)
	if !ok || cell.Price.Amount() != 200 {
		t.Errorf("cell = %+v (found=%v), want 200", cell, ok)
	}
}
