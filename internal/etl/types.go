// Package etl transforms the flat point-of-sale export into the normalized
// relational schema.
//
// The package is responsible for:
//   - Canonicalizing raw field values (units, locations, vendor strings, dates)
//   - Resolving entity identity (categories, vendors, products, customers)
//   - Classifying each source row into product/purchase/sale facts
//   - Loading the resolved entities into the sink in foreign-key order
//
// Design constraints:
//   - One sequential pass in source order. Surrogate id assignment, the
//     primary-vendor tie-break, and inventory last-write-wins all depend on
//     row order, so nothing here is safe for parallel use.
//   - Field parsing is best-effort and never fails a run; problems are
//     collected as diagnostics alongside the summary.
package etl

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is a product category dimension row. Name is the natural key.
type Category struct {
	ID          int
	Name        string
	Description string
}

// VendorFields holds the components parsed out of a raw vendor string.
type VendorFields struct {
	Name    string
	Address string
	City    string
	State   string
	Zip     string
}

// Vendor is a vendor dimension row. Name is the natural key; two raw strings
// that differ only in address text resolve to the same vendor.
type Vendor struct {
	ID      int
	Name    string
	Address string
	City    string
	State   string
	Zip     string
}

// Product is a product dimension row. The id is the source item number,
// not a surrogate.
type Product struct {
	ID              int
	Name            string
	CategoryID      int
	UnitOfMeasure   string
	LocationCode    string
	PrimaryVendorID *int
}

// Customer is a customer dimension row. The source carries only the id;
// the name fields are synthesized placeholders, not real PII.
type Customer struct {
	ID        int
	FirstName string
	LastName  string
}

// InventoryLevel is the on-hand quantity for a product. One row per product
// that ever appeared in a purchase fact; the value is the last one seen in
// source order.
type InventoryLevel struct {
	ProductID      int
	QuantityOnHand int
}

// PurchaseFact is an inbound stock event parsed from a source row that
// carries both a vendor and a parseable cost.
type PurchaseFact struct {
	ProductID       int
	VendorID        int
	QuantityOrdered int
	UnitCost        decimal.Decimal
	PurchaseDate    *time.Time
}

// SaleFact is an outbound stock event parsed from a source row that carries
// both a price and a sale date.
type SaleFact struct {
	ProductID    int
	CustomerID   *int
	QuantitySold int
	UnitPrice    decimal.Decimal
	SaleDate     *time.Time
}

// PurchaseOrder is the loadable form of a PurchaseFact.
type PurchaseOrder struct {
	ProductID       int
	VendorID        int
	QuantityOrdered int
	UnitCost        decimal.Decimal
	PurchaseDate    *time.Time
	Status          string
	LoadID          uuid.UUID
}

// SaleTransaction is the loadable form of a SaleFact.
type SaleTransaction struct {
	ProductID    int
	CustomerID   *int
	QuantitySold int
	UnitPrice    decimal.Decimal
	SaleDate     *time.Time
	LoadID       uuid.UUID
}
