package etl

// pipeline.go wires the pass together: stream the export, resolve and
// classify each row in source order, then load the result phase by phase.
// The run is synchronous and single-threaded end to end.

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Summary is the structured report produced by every run, successful or not.
// On failure, FailedPhase names the phase whose commit failed; counts for
// phases before it reflect committed rows, the failed phase reports zero.
type Summary struct {
	RunID    uuid.UUID     `json:"runId"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`

	RowsProcessed int `json:"rowsProcessed"`
	RowsSkipped   int `json:"rowsSkipped"`

	Categories        int `json:"categories"`
	Vendors           int `json:"vendors"`
	Products          int `json:"products"`
	Customers         int `json:"customers"`
	InventoryRows     int `json:"inventoryRows"`
	PurchaseOrders    int `json:"purchaseOrders"`
	SalesTransactions int `json:"salesTransactions"`

	FailedPhase Phase       `json:"failedPhase,omitempty"`
	Diagnostics Diagnostics `json:"diagnostics,omitempty"`
}

// String renders the run report for CLI output.
func (s *Summary) String() string {
	var b strings.Builder
	line := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "%s\nETL SUMMARY (run %s)\n%s\n", line, s.RunID, line)
	fmt.Fprintf(&b, "Rows processed:     %d (skipped %d)\n", s.RowsProcessed, s.RowsSkipped)
	fmt.Fprintf(&b, "Categories loaded:  %d\n", s.Categories)
	fmt.Fprintf(&b, "Vendors loaded:     %d\n", s.Vendors)
	fmt.Fprintf(&b, "Products loaded:    %d\n", s.Products)
	fmt.Fprintf(&b, "Customers loaded:   %d\n", s.Customers)
	fmt.Fprintf(&b, "Inventory records:  %d\n", s.InventoryRows)
	fmt.Fprintf(&b, "Purchase orders:    %d\n", s.PurchaseOrders)
	fmt.Fprintf(&b, "Sales transactions: %d\n", s.SalesTransactions)
	if s.FailedPhase != "" {
		fmt.Fprintf(&b, "FAILED at phase:    %s (phase rolled back, earlier phases committed)\n", s.FailedPhase)
	}
	if n := len(s.Diagnostics); n > 0 {
		fmt.Fprintf(&b, "Diagnostics:        %d warning(s)\n", n)
	}
	fmt.Fprintf(&b, "Duration:           %s\n%s", s.Duration.Round(time.Millisecond), line)
	return b.String()
}

// Pipeline runs the full transformation against one sink.
type Pipeline struct {
	sink Sink
	log  *slog.Logger
}

// NewPipeline returns a pipeline writing through sink.
func NewPipeline(sink Sink, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{sink: sink, log: log}
}

// Run executes one complete pass over the export and always returns a
// summary, even when the load aborts. The returned error is non-nil only
// for fatal conditions: unreadable input or a failed phase commit
// (*PhaseError). Per-row problems are reported through Summary.Diagnostics.
func (p *Pipeline) Run(ctx context.Context, export io.Reader) (*Summary, error) {
	sum := &Summary{RunID: uuid.New(), Started: time.Now()}
	defer func() { sum.Duration = time.Since(sum.Started) }()

	state := NewResolutionState()
	classifier := NewClassifier(state, &sum.Diagnostics, p.log)

	reader := NewCSVReader(export)
	header, err := reader.Read()
	if err == io.EOF {
		p.log.Warn("export is empty")
		return sum, nil
	}
	if err != nil {
		return sum, fmt.Errorf("read header: %w", err)
	}
	index := MakeHeaderIndex(header)

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("read line %d: %w", line+1, err)
		}
		line++
		if isBlankRow(fields) {
			continue
		}
		if classifier.ProcessRow(Row{Line: line, Fields: fields, Index: index}) {
			sum.RowsProcessed++
		} else {
			sum.RowsSkipped++
		}
	}

	p.log.Info("export parsed",
		"rows", sum.RowsProcessed,
		"skipped", sum.RowsSkipped,
		"purchase_facts", len(state.Purchases),
		"sale_facts", len(state.Sales),
	)

	loader := NewLoader(p.sink, &sum.Diagnostics, p.log)
	if err := loader.Load(ctx, state, sum); err != nil {
		return sum, err
	}

	p.log.Info("run complete", "run_id", sum.RunID)
	return sum, nil
}

// isBlankRow reports whether every cell is empty after cleanup.
func isBlankRow(fields []string) bool {
	for _, f := range fields {
		if CleanCell(f) != "" {
			return false
		}
	}
	return true
}
