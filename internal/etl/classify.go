package etl

// classify.go inspects each raw row and decides which facts it carries.
// A single row may define a product, record a purchase, and record a sale
// all at once; the three checks are independent, not branches.

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Source column names, matched case-insensitively against the header row.
const (
	colItemNum      = "item num"
	colDescription  = "description"
	colItemType     = "item type"
	colUnit         = "unit"
	colLocation     = "location"
	colVendor       = "vendor"
	colCost         = "cost"
	colQuantity     = "quantity"
	colPurchaseDate = "purchase date"
	colOnHand       = "quantity on-hand"
	colPrice        = "price"
	colCustomer     = "cust"
	colQuantitySold = "quantity sold"
	colDateSold     = "date sold"
)

// HeaderIndex maps lower-cased column names to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from the export's header row.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[strings.ToLower(CleanCell(h))] = i
	}
	return idx
}

// CleanCell strips common spreadsheet artifacts from a cell: surrounding
// whitespace, Excel formula prefixes (="value"), and stray quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}
	return strings.Trim(s, `"'`)
}

// Row is one record of the export plus the header mapping needed to
// address its cells by column name.
type Row struct {
	Line   int
	Fields []string
	Index  HeaderIndex
}

// Get returns the cleaned cell under the named column, or "" when the
// column is absent or the row is too short.
func (r Row) Get(col string) string {
	i, ok := r.Index[col]
	if !ok || i >= len(r.Fields) {
		return ""
	}
	return CleanCell(r.Fields[i])
}

// Classifier applies the per-row fact checks against a ResolutionState.
type Classifier struct {
	State *ResolutionState
	Diags *Diagnostics
	Log   *slog.Logger
}

// NewClassifier returns a classifier writing into state and diags.
func NewClassifier(state *ResolutionState, diags *Diagnostics, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{State: state, Diags: diags, Log: log}
}

// ProcessRow runs the three independent checks on one row:
//
//  1. First sighting of the item number defines the product.
//  2. Vendor plus parseable cost yields a purchase fact and an inventory
//     snapshot (overwriting any earlier snapshot for the product).
//  3. Price plus sale date yields a sale fact.
//
// Returns false when the row has no usable item number and was skipped.
func (c *Classifier) ProcessRow(row Row) bool {
	itemRaw := row.Get(colItemNum)
	if itemRaw == "" {
		c.Diags.add(DiagRowSkipped, row.Line, colItemNum, "blank item number")
		return false
	}
	itemNum, err := strconv.Atoi(itemRaw)
	if err != nil {
		c.Diags.add(DiagRowSkipped, row.Line, colItemNum, fmt.Sprintf("item number %q is not an integer", itemRaw))
		c.Log.Warn("row skipped", "line", row.Line, "item_num", itemRaw)
		return false
	}

	c.defineProduct(row, itemNum)
	c.recordPurchase(row, itemNum)
	c.recordSale(row, itemNum)
	return true
}

func (c *Classifier) defineProduct(row Row, itemNum int) {
	if c.State.HasProduct(itemNum) {
		return
	}
	category := row.Get(colItemType)
	if category == "" {
		category = "General"
	}
	name := row.Get(colDescription)
	if name == "" {
		name = fmt.Sprintf("Product %d", itemNum)
	}
	c.State.AddProduct(&Product{
		ID:            itemNum,
		Name:          name,
		CategoryID:    c.State.ResolveCategory(category),
		UnitOfMeasure: NormalizeUnit(row.Get(colUnit)),
		LocationCode:  NormalizeLocation(row.Get(colLocation)),
	})
}

func (c *Classifier) recordPurchase(row Row, itemNum int) {
	vendorRaw := row.Get(colVendor)
	costRaw := row.Get(colCost)
	if vendorRaw == "" || costRaw == "" {
		return
	}
	cost, ok := ParseMoney(costRaw)
	if !ok {
		c.Diags.add(DiagParseWarning, row.Line, colCost, fmt.Sprintf("unparseable cost %q, purchase dropped", costRaw))
		c.Log.Warn("unparseable cost", "line", row.Line, "value", costRaw)
		return
	}
	fields, ok := ParseVendor(vendorRaw)
	if !ok {
		return
	}
	vendorID := c.State.ResolveVendor(fields)
	c.State.Purchases = append(c.State.Purchases, PurchaseFact{
		ProductID:       itemNum,
		VendorID:        vendorID,
		QuantityOrdered: c.intField(row, colQuantity),
		UnitCost:        cost,
		PurchaseDate:    c.dateField(row, colPurchaseDate),
	})
	c.State.SetInventory(itemNum, c.intField(row, colOnHand))
}

func (c *Classifier) recordSale(row Row, itemNum int) {
	priceRaw := row.Get(colPrice)
	dateRaw := row.Get(colDateSold)
	if priceRaw == "" || dateRaw == "" {
		return
	}
	price, ok := ParseMoney(priceRaw)
	if !ok {
		c.Diags.add(DiagParseWarning, row.Line, colPrice, fmt.Sprintf("unparseable price %q, sale dropped", priceRaw))
		c.Log.Warn("unparseable price", "line", row.Line, "value", priceRaw)
		return
	}

	var customerID *int
	if custRaw := row.Get(colCustomer); custRaw != "" {
		id, err := strconv.Atoi(custRaw)
		if err != nil {
			c.Diags.add(DiagParseWarning, row.Line, colCustomer, fmt.Sprintf("unparseable customer id %q", custRaw))
		} else {
			customerID = &id
			c.State.RegisterCustomer(id)
		}
	}

	// The original export ships one shared quantity column; a dedicated
	// "quantity sold" column takes precedence when present.
	qtyCol := colQuantitySold
	if _, ok := row.Index[colQuantitySold]; !ok {
		qtyCol = colQuantity
	}

	c.State.Sales = append(c.State.Sales, SaleFact{
		ProductID:    itemNum,
		CustomerID:   customerID,
		QuantitySold: c.intField(row, qtyCol),
		UnitPrice:    price,
		SaleDate:     c.dateField(row, colDateSold),
	})
}

// intField parses an integer cell, defaulting to 0. A non-empty value that
// fails to parse is recorded as a warning.
func (c *Classifier) intField(row Row, col string) int {
	raw := row.Get(col)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.Diags.add(DiagParseWarning, row.Line, col, fmt.Sprintf("unparseable quantity %q, defaulting to 0", raw))
		return 0
	}
	return n
}

// dateField parses a date cell, defaulting to nil. A non-empty value that
// fails to parse is recorded as a warning; the row itself is never skipped.
func (c *Classifier) dateField(row Row, col string) *time.Time {
	raw := row.Get(col)
	if raw == "" {
		return nil
	}
	t, ok := ParseDate(raw)
	if !ok {
		c.Diags.add(DiagParseWarning, row.Line, col, fmt.Sprintf("unparseable date %q, defaulting to null", raw))
		c.Log.Warn("unparseable date", "line", row.Line, "field", col, "value", raw)
		return nil
	}
	return &t
}
