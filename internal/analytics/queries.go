package analytics

// queries.go holds the aggregate SQL. Revenue is computed inline as
// quantity_sold * unit_price; every SUM/AVG is coalesced so an empty sink
// yields zeros instead of NULL scan failures.

import (
	"context"
	"fmt"
)

const executiveSummarySQL = `
	SELECT
		COALESCE(SUM(quantity_sold * unit_price), 0) AS total_revenue,
		COUNT(DISTINCT customer_id)                  AS total_customers,
		COUNT(DISTINCT product_id)                   AS products_sold,
		COUNT(*)                                     AS total_transactions,
		COALESCE(AVG(quantity_sold * unit_price), 0) AS avg_order_value,
		MIN(sale_date)                               AS first_sale_date,
		MAX(sale_date)                               AS last_sale_date
	FROM sales_transactions`

// GetExecutiveSummary returns the top-level business rollup.
func (s *Service) GetExecutiveSummary(ctx context.Context) (*ExecutiveSummary, error) {
	var sum ExecutiveSummary
	err := s.db.QueryRow(ctx, executiveSummarySQL).Scan(
		&sum.TotalRevenue,
		&sum.TotalCustomers,
		&sum.ProductsSold,
		&sum.TotalTransactions,
		&sum.AvgOrderValue,
		&sum.FirstSaleDate,
		&sum.LastSaleDate,
	)
	if err != nil {
		return nil, fmt.Errorf("executive summary: %w", err)
	}
	return &sum, nil
}

const dailySalesSQL = `
	SELECT
		sale_date,
		COUNT(*)                                     AS transactions,
		COALESCE(SUM(quantity_sold), 0)              AS units_sold,
		COALESCE(SUM(quantity_sold * unit_price), 0) AS revenue,
		COALESCE(AVG(quantity_sold * unit_price), 0) AS avg_transaction,
		COUNT(DISTINCT customer_id)                  AS unique_customers
	FROM sales_transactions
	WHERE sale_date IS NOT NULL
	GROUP BY sale_date
	ORDER BY sale_date`

// GetDailySales returns the per-day sales trend.
func (s *Service) GetDailySales(ctx context.Context) ([]DailySales, error) {
	rows, err := s.db.Query(ctx, dailySalesSQL)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()

	var out []DailySales
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Date, &d.Transactions, &d.UnitsSold, &d.Revenue, &d.AvgTransaction, &d.UniqueCustomers); err != nil {
			return nil, fmt.Errorf("daily sales scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

const productPerformanceSQL = `
	SELECT
		p.product_id,
		p.product_name,
		pc.category_name,
		COALESCE(SUM(st.quantity_sold), 0)                 AS units_sold,
		COALESCE(SUM(st.quantity_sold * st.unit_price), 0) AS revenue,
		COUNT(st.transaction_id)                           AS sales_count,
		COALESCE(AVG(st.unit_price), 0)                    AS avg_price,
		i.quantity_on_hand                                 AS current_stock
	FROM products p
	JOIN product_categories pc ON pc.category_id = p.category_id
	LEFT JOIN sales_transactions st ON st.product_id = p.product_id
	LEFT JOIN inventory i ON i.product_id = p.product_id
	GROUP BY p.product_id, p.product_name, pc.category_name, i.quantity_on_hand
	ORDER BY revenue DESC`

// GetProductPerformance returns per-product sales metrics and stock.
func (s *Service) GetProductPerformance(ctx context.Context) ([]ProductPerformance, error) {
	rows, err := s.db.Query(ctx, productPerformanceSQL)
	if err != nil {
		return nil, fmt.Errorf("product performance: %w", err)
	}
	defer rows.Close()

	var out []ProductPerformance
	for rows.Next() {
		var p ProductPerformance
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.CategoryName, &p.UnitsSold, &p.Revenue, &p.SalesCount, &p.AvgPrice, &p.CurrentStock); err != nil {
			return nil, fmt.Errorf("product performance scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const categoryPerformanceSQL = `
	SELECT
		pc.category_name,
		COUNT(DISTINCT p.product_id)                       AS product_count,
		COALESCE(SUM(st.quantity_sold), 0)                 AS units_sold,
		COALESCE(SUM(st.quantity_sold * st.unit_price), 0) AS revenue,
		COALESCE(AVG(st.quantity_sold * st.unit_price), 0) AS avg_transaction,
		COUNT(st.transaction_id)                           AS transactions
	FROM product_categories pc
	LEFT JOIN products p ON p.category_id = pc.category_id
	LEFT JOIN sales_transactions st ON st.product_id = p.product_id
	GROUP BY pc.category_id, pc.category_name
	ORDER BY revenue DESC`

// GetCategoryPerformance returns per-category sales metrics.
func (s *Service) GetCategoryPerformance(ctx context.Context) ([]CategoryPerformance, error) {
	rows, err := s.db.Query(ctx, categoryPerformanceSQL)
	if err != nil {
		return nil, fmt.Errorf("category performance: %w", err)
	}
	defer rows.Close()

	var out []CategoryPerformance
	for rows.Next() {
		var c CategoryPerformance
		if err := rows.Scan(&c.CategoryName, &c.ProductCount, &c.UnitsSold, &c.Revenue, &c.AvgTransaction, &c.Transactions); err != nil {
			return nil, fmt.Errorf("category performance scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const customerInsightsSQL = `
	SELECT
		c.customer_id,
		c.first_name || ' ' || c.last_name                 AS customer_name,
		COUNT(st.transaction_id)                           AS total_purchases,
		COALESCE(SUM(st.quantity_sold), 0)                 AS total_items,
		COALESCE(SUM(st.quantity_sold * st.unit_price), 0) AS lifetime_value,
		COALESCE(AVG(st.quantity_sold * st.unit_price), 0) AS avg_order_value,
		MAX(st.sale_date)                                  AS last_purchase
	FROM customers c
	LEFT JOIN sales_transactions st ON st.customer_id = c.customer_id
	GROUP BY c.customer_id, c.first_name, c.last_name
	ORDER BY lifetime_value DESC`

// GetCustomerInsights returns per-customer history with segment labels.
func (s *Service) GetCustomerInsights(ctx context.Context) ([]CustomerInsight, error) {
	rows, err := s.db.Query(ctx, customerInsightsSQL)
	if err != nil {
		return nil, fmt.Errorf("customer insights: %w", err)
	}
	defer rows.Close()

	var out []CustomerInsight
	for rows.Next() {
		var c CustomerInsight
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.TotalPurchases, &c.TotalItems, &c.LifetimeValue, &c.AvgOrderValue, &c.LastPurchase); err != nil {
			return nil, fmt.Errorf("customer insights scan: %w", err)
		}
		c.Segment = SegmentFor(c.LifetimeValue)
		out = append(out, c)
	}
	return out, rows.Err()
}

const inventoryStatusSQL = `
	SELECT
		p.product_id,
		p.product_name,
		pc.category_name,
		i.quantity_on_hand,
		i.reorder_level,
		i.max_stock_level,
		v.vendor_name
	FROM products p
	JOIN inventory i ON i.product_id = p.product_id
	JOIN product_categories pc ON pc.category_id = p.category_id
	LEFT JOIN vendors v ON v.vendor_id = p.primary_vendor_id
	ORDER BY p.product_name`

// GetInventoryStatus returns per-product stock posture, worst first.
func (s *Service) GetInventoryStatus(ctx context.Context) ([]InventoryStatus, error) {
	rows, err := s.db.Query(ctx, inventoryStatusSQL)
	if err != nil {
		return nil, fmt.Errorf("inventory status: %w", err)
	}
	defer rows.Close()

	var out []InventoryStatus
	for rows.Next() {
		var st InventoryStatus
		if err := rows.Scan(&st.ProductID, &st.ProductName, &st.CategoryName, &st.QuantityOnHand, &st.ReorderLevel, &st.MaxStockLevel, &st.VendorName); err != nil {
			return nil, fmt.Errorf("inventory status scan: %w", err)
		}
		st.Status = StatusFor(st.QuantityOnHand, st.ReorderLevel, st.MaxStockLevel)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortByStatusSeverity(out)
	return out, nil
}

// statusRank orders stock statuses worst first for display.
var statusRank = map[string]int{
	StockOutOfStock:    0,
	StockReorderNeeded: 1,
	StockLow:           2,
	StockOverstock:     3,
	StockHealthy:       4,
}

func sortByStatusSeverity(items []InventoryStatus) {
	// Stable insertion keeps the name ordering from SQL within a status.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && statusRank[items[j].Status] < statusRank[items[j-1].Status]; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

const vendorPerformanceSQL = `
	SELECT
		v.vendor_id,
		v.vendor_name,
		COALESCE(v.city, '')                         AS city,
		COALESCE(v.state, '')                        AS state,
		COUNT(DISTINCT p.product_id)                 AS products_supplied,
		COUNT(po.purchase_id)                        AS total_orders,
		COALESCE(SUM(po.quantity_ordered * po.unit_cost), 0) AS total_spent,
		COALESCE(AVG(po.unit_cost), 0)               AS avg_unit_cost
	FROM vendors v
	LEFT JOIN products p ON p.primary_vendor_id = v.vendor_id
	LEFT JOIN purchase_orders po ON po.vendor_id = v.vendor_id
	GROUP BY v.vendor_id, v.vendor_name, v.city, v.state
	ORDER BY total_spent DESC`

// GetVendorPerformance returns per-vendor purchasing volume.
func (s *Service) GetVendorPerformance(ctx context.Context) ([]VendorPerformance, error) {
	rows, err := s.db.Query(ctx, vendorPerformanceSQL)
	if err != nil {
		return nil, fmt.Errorf("vendor performance: %w", err)
	}
	defer rows.Close()

	var out []VendorPerformance
	for rows.Next() {
		var v VendorPerformance
		if err := rows.Scan(&v.VendorID, &v.VendorName, &v.City, &v.State, &v.ProductsSupplied, &v.TotalOrders, &v.TotalSpent, &v.AvgUnitCost); err != nil {
			return nil, fmt.Errorf("vendor performance scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
