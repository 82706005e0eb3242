package etl

// resolve.go maintains the identity maps built during the single pass over
// the export. All state lives on ResolutionState; there is no package-level
// state, so two pipelines never share resolution results.

import "strconv"

// ResolutionState accumulates entity identity and parsed facts while the
// export is scanned in source order.
//
// Category and vendor ids are 1-based and assigned in first-seen order.
// Products are keyed by their source item number. None of this is safe for
// concurrent use: id assignment, the primary-vendor tie-break, and inventory
// last-write-wins all depend on strict source order.
type ResolutionState struct {
	categories    map[string]int
	categoryOrder []string

	vendors     map[string]*Vendor
	vendorOrder []string

	products     map[int]*Product
	productOrder []int

	customers     map[int]bool
	customerOrder []int

	inventory      map[int]int
	inventoryOrder []int

	// Purchases and Sales are append-only fact lists in source order.
	Purchases []PurchaseFact
	Sales     []SaleFact
}

// NewResolutionState returns an empty state ready for one pipeline pass.
func NewResolutionState() *ResolutionState {
	return &ResolutionState{
		categories: make(map[string]int),
		vendors:    make(map[string]*Vendor),
		products:   make(map[int]*Product),
		customers:  make(map[int]bool),
		inventory:  make(map[int]int),
	}
}

// ResolveCategory returns the id for a category name, creating it if absent.
func (s *ResolutionState) ResolveCategory(name string) int {
	if id, ok := s.categories[name]; ok {
		return id
	}
	id := len(s.categories) + 1
	s.categories[name] = id
	s.categoryOrder = append(s.categoryOrder, name)
	return id
}

// ResolveVendor returns the id for a parsed vendor, creating it if absent.
// Identity is the parsed name only: later mentions with different address
// text reuse the first vendor's id and address.
func (s *ResolutionState) ResolveVendor(f VendorFields) int {
	if v, ok := s.vendors[f.Name]; ok {
		return v.ID
	}
	v := &Vendor{
		ID:      len(s.vendors) + 1,
		Name:    f.Name,
		Address: f.Address,
		City:    f.City,
		State:   f.State,
		Zip:     f.Zip,
	}
	s.vendors[f.Name] = v
	s.vendorOrder = append(s.vendorOrder, f.Name)
	return v.ID
}

// HasProduct reports whether a product with this item number was seen.
func (s *ResolutionState) HasProduct(id int) bool {
	_, ok := s.products[id]
	return ok
}

// AddProduct records a product definition. First definition wins; the
// classifier only calls this for unseen item numbers.
func (s *ResolutionState) AddProduct(p *Product) {
	if _, ok := s.products[p.ID]; ok {
		return
	}
	s.products[p.ID] = p
	s.productOrder = append(s.productOrder, p.ID)
}

// RegisterCustomer records a customer id seen on a sale.
func (s *ResolutionState) RegisterCustomer(id int) {
	if s.customers[id] {
		return
	}
	s.customers[id] = true
	s.customerOrder = append(s.customerOrder, id)
}

// SetInventory records an on-hand snapshot for a product. A later snapshot
// overwrites an earlier one (last write in source order wins).
func (s *ResolutionState) SetInventory(productID, quantity int) {
	if _, ok := s.inventory[productID]; !ok {
		s.inventoryOrder = append(s.inventoryOrder, productID)
	}
	s.inventory[productID] = quantity
}

// Categories returns the category dimension rows in first-seen order.
func (s *ResolutionState) Categories() []Category {
	out := make([]Category, 0, len(s.categoryOrder))
	for _, name := range s.categoryOrder {
		out = append(out, Category{
			ID:          s.categories[name],
			Name:        name,
			Description: name + " products",
		})
	}
	return out
}

// Vendors returns the vendor dimension rows in first-seen order.
func (s *ResolutionState) Vendors() []Vendor {
	out := make([]Vendor, 0, len(s.vendorOrder))
	for _, name := range s.vendorOrder {
		out = append(out, *s.vendors[name])
	}
	return out
}

// Products returns the product dimension rows in first-seen order, with
// PrimaryVendorID resolved from the first purchase fact for each product.
func (s *ResolutionState) Products() []Product {
	out := make([]Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		p := *s.products[id]
		p.PrimaryVendorID = s.PrimaryVendor(id)
		out = append(out, p)
	}
	return out
}

// PrimaryVendor returns the vendor id of the first purchase fact for the
// product, or nil if it was never purchased. First in source order wins;
// the tie-break is preserved from the original system as-is.
func (s *ResolutionState) PrimaryVendor(productID int) *int {
	for _, f := range s.Purchases {
		if f.ProductID == productID {
			id := f.VendorID
			return &id
		}
	}
	return nil
}

// Customers returns the customer dimension rows in first-seen order with
// placeholder names (the source has no real name data).
func (s *ResolutionState) Customers() []Customer {
	out := make([]Customer, 0, len(s.customerOrder))
	for _, id := range s.customerOrder {
		out = append(out, Customer{
			ID:        id,
			FirstName: "Customer",
			LastName:  strconv.Itoa(id),
		})
	}
	return out
}

// Inventory returns the on-hand rows in first-snapshot order, each carrying
// the last quantity observed for its product.
func (s *ResolutionState) Inventory() []InventoryLevel {
	out := make([]InventoryLevel, 0, len(s.inventoryOrder))
	for _, id := range s.inventoryOrder {
		out = append(out, InventoryLevel{ProductID: id, QuantityOnHand: s.inventory[id]})
	}
	return out
}
