package etl

// loader.go persists the resolved entities into the sink, one transaction
// per phase, in foreign-key dependency order. Referential safety comes from
// the ordering itself, not from deferred constraint checking.

import (
	"context"
	"fmt"
	"log/slog"
)

// Sink is the normalized datastore boundary. The pgx implementation lives in
// internal/database; tests use an in-memory fake.
type Sink interface {
	// Begin opens the transaction for one load phase.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one phase transaction against the sink.
//
// Dimension inserts (category, vendor, product, customer, inventory) are
// insert-if-absent on the natural key: re-inserting an existing key is a
// no-op, never an error and never a duplicate row. Fact inserts append.
// Implementations must isolate a failed insert so the phase transaction
// survives it (the pgx sink uses savepoints).
type Tx interface {
	InsertCategory(ctx context.Context, c Category) error
	InsertVendor(ctx context.Context, v Vendor) error
	InsertProduct(ctx context.Context, p Product) error
	InsertCustomer(ctx context.Context, c Customer) error
	InsertInventory(ctx context.Context, l InventoryLevel) error
	InsertPurchaseOrder(ctx context.Context, po PurchaseOrder) error
	InsertSaleTransaction(ctx context.Context, st SaleTransaction) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// purchaseStatus is stamped on every loaded purchase order; the export only
// contains orders that already arrived.
const purchaseStatus = "received"

// Loader writes a fully-resolved ResolutionState to the sink.
type Loader struct {
	sink  Sink
	log   *slog.Logger
	diags *Diagnostics
}

// NewLoader returns a loader writing through sink, appending recoverable
// insert failures to diags.
func NewLoader(sink Sink, diags *Diagnostics, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{sink: sink, log: log, diags: diags}
}

// Load persists the state phase by phase and fills the per-phase counts on
// sum. Each phase fully commits before the next starts. A failed insert is
// recorded and skipped; a failed phase commit rolls the phase back, zeroes
// its count, and aborts the run with a *PhaseError.
func (l *Loader) Load(ctx context.Context, state *ResolutionState, sum *Summary) error {
	loadID := sum.RunID

	categories := state.Categories()
	vendors := state.Vendors()
	products := state.Products()
	customers := state.Customers()
	inventory := state.Inventory()

	phases := []struct {
		phase  Phase
		count  *int
		total  int
		insert func(tx Tx, i int) error
	}{
		{PhaseCategories, &sum.Categories, len(categories), func(tx Tx, i int) error {
			return tx.InsertCategory(ctx, categories[i])
		}},
		{PhaseVendors, &sum.Vendors, len(vendors), func(tx Tx, i int) error {
			return tx.InsertVendor(ctx, vendors[i])
		}},
		{PhaseProducts, &sum.Products, len(products), func(tx Tx, i int) error {
			return tx.InsertProduct(ctx, products[i])
		}},
		{PhaseCustomers, &sum.Customers, len(customers), func(tx Tx, i int) error {
			return tx.InsertCustomer(ctx, customers[i])
		}},
		{PhaseInventory, &sum.InventoryRows, len(inventory), func(tx Tx, i int) error {
			return tx.InsertInventory(ctx, inventory[i])
		}},
		{PhasePurchases, &sum.PurchaseOrders, len(state.Purchases), func(tx Tx, i int) error {
			f := state.Purchases[i]
			return tx.InsertPurchaseOrder(ctx, PurchaseOrder{
				ProductID:       f.ProductID,
				VendorID:        f.VendorID,
				QuantityOrdered: f.QuantityOrdered,
				UnitCost:        f.UnitCost,
				PurchaseDate:    f.PurchaseDate,
				Status:          purchaseStatus,
				LoadID:          loadID,
			})
		}},
		{PhaseSales, &sum.SalesTransactions, len(state.Sales), func(tx Tx, i int) error {
			f := state.Sales[i]
			return tx.InsertSaleTransaction(ctx, SaleTransaction{
				ProductID:    f.ProductID,
				CustomerID:   f.CustomerID,
				QuantitySold: f.QuantitySold,
				UnitPrice:    f.UnitPrice,
				SaleDate:     f.SaleDate,
				LoadID:       loadID,
			})
		}},
	}

	for _, p := range phases {
		if err := l.runPhase(ctx, p.phase, p.total, p.count, p.insert); err != nil {
			sum.FailedPhase = p.phase
			return err
		}
		l.log.Info("phase loaded", "phase", p.phase, "rows", *p.count, "of", p.total)
	}
	return nil
}

// runPhase executes one phase in its own transaction. loaded counts
// successful inserts; on commit failure it is reset to zero and the number
// of rows lost is reported through the returned *PhaseError.
func (l *Loader) runPhase(ctx context.Context, phase Phase, total int, loaded *int, insert func(tx Tx, i int) error) error {
	tx, err := l.sink.Begin(ctx)
	if err != nil {
		return &PhaseError{Phase: phase, Err: fmt.Errorf("begin: %w", err)}
	}

	for i := 0; i < total; i++ {
		if err := insert(tx, i); err != nil {
			l.diags.add(DiagEntityLoadError, 0, string(phase), err.Error())
			l.log.Warn("insert failed, continuing", "phase", phase, "index", i, "error", err)
			continue
		}
		*loaded++
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		rolledBack := *loaded
		*loaded = 0
		return &PhaseError{Phase: phase, Err: fmt.Errorf("commit rolled back %d rows: %w", rolledBack, err)}
	}
	return nil
}
