// Package analytics issues read-only aggregations against the normalized
// schema. It imposes nothing on the ETL core beyond the seven tables and
// their foreign keys; every query here is a plain aggregate over them.
package analytics

import (
	"time"

	"github.com/greenspot/grocer/internal/database"
)

// Service executes the analytics queries.
type Service struct {
	db database.DBTX
}

// New returns a service reading through db.
func New(db database.DBTX) *Service {
	return &Service{db: db}
}

// ExecutiveSummary is the high-level business rollup.
type ExecutiveSummary struct {
	TotalRevenue      float64    `json:"totalRevenue"`
	TotalCustomers    int64      `json:"totalCustomers"`
	ProductsSold      int64      `json:"productsSold"`
	TotalTransactions int64      `json:"totalTransactions"`
	AvgOrderValue     float64    `json:"avgOrderValue"`
	FirstSaleDate     *time.Time `json:"firstSaleDate"`
	LastSaleDate      *time.Time `json:"lastSaleDate"`
}

// DailySales is one day of sales activity.
type DailySales struct {
	Date            time.Time `json:"date"`
	Transactions    int64     `json:"transactions"`
	UnitsSold       int64     `json:"unitsSold"`
	Revenue         float64   `json:"revenue"`
	AvgTransaction  float64   `json:"avgTransaction"`
	UniqueCustomers int64     `json:"uniqueCustomers"`
}

// ProductPerformance is per-product sales plus current stock.
type ProductPerformance struct {
	ProductID    int     `json:"productId"`
	ProductName  string  `json:"productName"`
	CategoryName string  `json:"categoryName"`
	UnitsSold    int64   `json:"unitsSold"`
	Revenue      float64 `json:"revenue"`
	SalesCount   int64   `json:"salesCount"`
	AvgPrice     float64 `json:"avgPrice"`
	CurrentStock *int    `json:"currentStock"`
}

// CategoryPerformance is per-category sales.
type CategoryPerformance struct {
	CategoryName   string  `json:"categoryName"`
	ProductCount   int64   `json:"productCount"`
	UnitsSold      int64   `json:"unitsSold"`
	Revenue        float64 `json:"revenue"`
	AvgTransaction float64 `json:"avgTransaction"`
	Transactions   int64   `json:"transactions"`
}

// CustomerInsight is per-customer purchase history plus segment.
type CustomerInsight struct {
	CustomerID     int        `json:"customerId"`
	CustomerName   string     `json:"customerName"`
	TotalPurchases int64      `json:"totalPurchases"`
	TotalItems     int64      `json:"totalItems"`
	LifetimeValue  float64    `json:"lifetimeValue"`
	AvgOrderValue  float64    `json:"avgOrderValue"`
	LastPurchase   *time.Time `json:"lastPurchase"`
	Segment        string     `json:"segment"`
}

// InventoryStatus is per-product stock posture with its primary vendor.
type InventoryStatus struct {
	ProductID      int     `json:"productId"`
	ProductName    string  `json:"productName"`
	CategoryName   string  `json:"categoryName"`
	QuantityOnHand int     `json:"quantityOnHand"`
	ReorderLevel   int     `json:"reorderLevel"`
	MaxStockLevel  int     `json:"maxStockLevel"`
	Status         string  `json:"status"`
	VendorName     *string `json:"vendorName"`
}

// VendorPerformance is per-vendor purchasing volume.
type VendorPerformance struct {
	VendorID         int     `json:"vendorId"`
	VendorName       string  `json:"vendorName"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ProductsSupplied int64   `json:"productsSupplied"`
	TotalOrders      int64   `json:"totalOrders"`
	TotalSpent       float64 `json:"totalSpent"`
	AvgUnitCost      float64 `json:"avgUnitCost"`
}

// SegmentFor buckets a customer by lifetime value. Thresholds follow the
// original dashboard: VIP at 50, Regular at 25, Occasional at 10.
func SegmentFor(lifetimeValue float64) string {
	switch {
	case lifetimeValue >= 50:
		return "VIP"
	case lifetimeValue >= 25:
		return "Regular"
	case lifetimeValue >= 10:
		return "Occasional"
	default:
		return "New"
	}
}

// Stock status labels, ordered worst to best.
const (
	StockOutOfStock    = "OUT_OF_STOCK"
	StockReorderNeeded = "REORDER_NEEDED"
	StockLow           = "LOW_STOCK"
	StockOverstock     = "OVERSTOCK"
	StockHealthy       = "HEALTHY"
)

// StatusFor labels a stock level relative to its reorder and max levels.
// LOW_STOCK kicks in at 1.5x the reorder level.
func StatusFor(onHand, reorderLevel, maxStock int) string {
	switch {
	case onHand <= 0:
		return StockOutOfStock
	case onHand <= reorderLevel:
		return StockReorderNeeded
	case float64(onHand) <= float64(reorderLevel)*1.5:
		return StockLow
	case maxStock > 0 && onHand >= maxStock:
		return StockOverstock
	default:
		return StockHealthy
	}
}
