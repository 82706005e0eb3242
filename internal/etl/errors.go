package etl

// errors.go defines the two error channels of a pipeline run: recoverable
// per-row diagnostics collected alongside the summary, and the fatal
// PhaseError that aborts the run when a phase commit fails.

import "fmt"

// DiagnosticKind classifies a recoverable problem encountered during a run.
type DiagnosticKind string

const (
	// DiagParseWarning: an unparseable date, cost, or quantity field was
	// defaulted to null/zero and processing continued.
	DiagParseWarning DiagnosticKind = "parse_warning"

	// DiagRowSkipped: a row without a usable item number was dropped
	// entirely, contributing no entities or facts.
	DiagRowSkipped DiagnosticKind = "row_skipped"

	// DiagEntityLoadError: a single insert failed and loading continued
	// with the next item in the phase.
	DiagEntityLoadError DiagnosticKind = "entity_load_error"
)

// Diagnostic is one recoverable problem, tied to its source line where known.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Line    int            `json:"line,omitempty"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", d.Kind, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Diagnostics collects recoverable problems in the order they occurred.
type Diagnostics []Diagnostic

func (ds *Diagnostics) add(kind DiagnosticKind, line int, field, msg string) {
	*ds = append(*ds, Diagnostic{Kind: kind, Line: line, Field: field, Message: msg})
}

// Count returns the number of diagnostics of the given kind.
func (ds Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Phase names one step of the dependency-ordered load.
type Phase string

const (
	PhaseCategories Phase = "categories"
	PhaseVendors    Phase = "vendors"
	PhaseProducts   Phase = "products"
	PhaseCustomers  Phase = "customers"
	PhaseInventory  Phase = "inventory"
	PhasePurchases  Phase = "purchase_orders"
	PhaseSales      Phase = "sales_transactions"
)

// PhaseError reports a failed phase transaction. It is fatal for the run:
// the failing phase is rolled back and no later phase is attempted. Phases
// committed before it stay committed.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("load phase %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
