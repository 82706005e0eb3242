package database

// store.go is the pgx implementation of the ETL sink. Each load phase runs
// in one transaction; every row insert executes inside a savepoint so a
// constraint violation on one row does not poison the phase transaction.
// Dimension inserts are ON CONFLICT DO NOTHING on the natural key, which is
// what makes re-running the pipeline against a loaded sink a no-op for
// dimensions.

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenspot/grocer/internal/etl"
)

const (
	insertCategorySQL = `INSERT INTO product_categories (category_id, category_name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (category_name) DO NOTHING`

	insertVendorSQL = `INSERT INTO vendors (vendor_id, vendor_name, address, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vendor_name) DO NOTHING`

	insertProductSQL = `INSERT INTO products (product_id, product_name, category_id, unit_of_measure, location_code, primary_vendor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO NOTHING`

	insertCustomerSQL = `INSERT INTO customers (customer_id, first_name, last_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id) DO NOTHING`

	insertInventorySQL = `INSERT INTO inventory (product_id, quantity_on_hand)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO NOTHING`

	insertPurchaseOrderSQL = `INSERT INTO purchase_orders (product_id, vendor_id, quantity_ordered, unit_cost, purchase_date, status, load_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertSaleTransactionSQL = `INSERT INTO sales_transactions (product_id, customer_id, quantity_sold, unit_price, sale_date, load_id)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// Store adapts a pgx pool to the etl.Sink interface.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a sink backed by pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Begin opens one phase transaction.
func (s *Store) Begin(ctx context.Context) (etl.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx}, nil
}

type storeTx struct {
	tx pgx.Tx
}

// exec runs one insert inside a savepoint (pgx nested Begin) so a failed
// row leaves the phase transaction usable.
func (t *storeTx) exec(ctx context.Context, sql string, args ...any) error {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return err
	}
	if _, err := sp.Exec(ctx, sql, args...); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

func (t *storeTx) InsertCategory(ctx context.Context, c etl.Category) error {
	return t.exec(ctx, insertCategorySQL, c.ID, c.Name, c.Description)
}

func (t *storeTx) InsertVendor(ctx context.Context, v etl.Vendor) error {
	return t.exec(ctx, insertVendorSQL, v.ID, v.Name, v.Address, v.City, v.State, v.Zip)
}

func (t *storeTx) InsertProduct(ctx context.Context, p etl.Product) error {
	return t.exec(ctx, insertProductSQL,
		p.ID, p.Name, p.CategoryID, p.UnitOfMeasure, p.LocationCode, toInt4(p.PrimaryVendorID))
}

func (t *storeTx) InsertCustomer(ctx context.Context, c etl.Customer) error {
	return t.exec(ctx, insertCustomerSQL, c.ID, c.FirstName, c.LastName)
}

func (t *storeTx) InsertInventory(ctx context.Context, l etl.InventoryLevel) error {
	return t.exec(ctx, insertInventorySQL, l.ProductID, l.QuantityOnHand)
}

func (t *storeTx) InsertPurchaseOrder(ctx context.Context, po etl.PurchaseOrder) error {
	return t.exec(ctx, insertPurchaseOrderSQL,
		po.ProductID, po.VendorID, po.QuantityOrdered, toNumeric(po.UnitCost),
		toDate(po.PurchaseDate), po.Status, toUUID(po.LoadID))
}

func (t *storeTx) InsertSaleTransaction(ctx context.Context, st etl.SaleTransaction) error {
	return t.exec(ctx, insertSaleTransactionSQL,
		st.ProductID, toInt4(st.CustomerID), st.QuantitySold, toNumeric(st.UnitPrice),
		toDate(st.SaleDate), toUUID(st.LoadID))
}

func (t *storeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *storeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
