package etl

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestResolveCategory_SequentialFirstSeen(t *testing.T) {
	s := NewResolutionState()

	if got := s.ResolveCategory("Canned"); got != 1 {
		t.Errorf("first category id = %d, want 1", got)
	}
	if got := s.ResolveCategory("Produce"); got != 2 {
		t.Errorf("second category id = %d, want 2", got)
	}
	if got := s.ResolveCategory("Canned"); got != 1 {
		t.Errorf("repeated category id = %d, want 1", got)
	}

	cats := s.Categories()
	if len(cats) != 2 {
		t.Fatalf("len(Categories()) = %d, want 2", len(cats))
	}
	if cats[0].Name != "Canned" || cats[1].Name != "Produce" {
		t.Errorf("category order = %q, %q; want Canned, Produce", cats[0].Name, cats[1].Name)
	}
	if cats[0].Description != "Canned products" {
		t.Errorf("category description = %q, want %q", cats[0].Description, "Canned products")
	}
}

func TestResolveVendor_IdentityIsName(t *testing.T) {
	s := NewResolutionState()

	first := s.ResolveVendor(VendorFields{Name: "Bennet Farms", Address: "Rt. 17", City: "Evansville", State: "IL", Zip: "55446"})
	if first != 1 {
		t.Errorf("first vendor id = %d, want 1", first)
	}

	// Same name with different address text reuses the first record.
	again := s.ResolveVendor(VendorFields{Name: "Bennet Farms", Address: "PO Box 9"})
	if again != first {
		t.Errorf("repeat vendor id = %d, want %d", again, first)
	}

	vendors := s.Vendors()
	if len(vendors) != 1 {
		t.Fatalf("len(Vendors()) = %d, want 1", len(vendors))
	}
	if vendors[0].Address != "Rt. 17" {
		t.Errorf("vendor address = %q, want first-seen %q", vendors[0].Address, "Rt. 17")
	}
}

func TestAddProduct_FirstDefinitionWins(t *testing.T) {
	s := NewResolutionState()

	s.AddProduct(&Product{ID: 1001, Name: "Beans, canned"})
	s.AddProduct(&Product{ID: 1001, Name: "Different"})

	products := s.Products()
	if len(products) != 1 {
		t.Fatalf("len(Products()) = %d, want 1", len(products))
	}
	if products[0].Name != "Beans, canned" {
		t.Errorf("product name = %q, want first definition", products[0].Name)
	}
}

func TestPrimaryVendor_FirstPurchaseWins(t *testing.T) {
	s := NewResolutionState()
	s.AddProduct(&Product{ID: 1001})

	a := s.ResolveVendor(VendorFields{Name: "Vendor A"})
	b := s.ResolveVendor(VendorFields{Name: "Vendor B"})
	cost := decimal.NewFromFloat(1.50)

	s.Purchases = append(s.Purchases,
		PurchaseFact{ProductID: 1001, VendorID: a, UnitCost: cost},
		PurchaseFact{ProductID: 1001, VendorID: b, UnitCost: cost},
	)

	got := s.PrimaryVendor(1001)
	if got == nil {
		t.Fatal("PrimaryVendor(1001) = nil, want vendor A")
	}
	if *got != a {
		t.Errorf("PrimaryVendor(1001) = %d, want %d (first purchase)", *got, a)
	}

	products := s.Products()
	if products[0].PrimaryVendorID == nil || *products[0].PrimaryVendorID != a {
		t.Errorf("Products()[0].PrimaryVendorID = %v, want %d", products[0].PrimaryVendorID, a)
	}
}

func TestPrimaryVendor_NeverPurchased(t *testing.T) {
	s := NewResolutionState()
	s.AddProduct(&Product{ID: 2002})

	if got := s.PrimaryVendor(2002); got != nil {
		t.Errorf("PrimaryVendor(2002) = %v, want nil", *got)
	}
}

func TestSetInventory_LastWriteWins(t *testing.T) {
	s := NewResolutionState()

	s.SetInventory(1001, 40)
	s.SetInventory(1002, 7)
	s.SetInventory(1001, 25)

	inv := s.Inventory()
	if len(inv) != 2 {
		t.Fatalf("len(Inventory()) = %d, want 2", len(inv))
	}
	// First-snapshot order is preserved; quantity is the last observed.
	if inv[0].ProductID != 1001 || inv[0].QuantityOnHand != 25 {
		t.Errorf("inventory[0] = %+v, want product 1001 qty 25", inv[0])
	}
	if inv[1].ProductID != 1002 || inv[1].QuantityOnHand != 7 {
		t.Errorf("inventory[1] = %+v, want product 1002 qty 7", inv[1])
	}
}

func TestCustomers_PlaceholderNames(t *testing.T) {
	s := NewResolutionState()
	s.RegisterCustomer(198)
	s.RegisterCustomer(205)
	s.RegisterCustomer(198)

	customers := s.Customers()
	if len(customers) != 2 {
		t.Fatalf("len(Customers()) = %d, want 2", len(customers))
	}
	if customers[0].FirstName != "Customer" || customers[0].LastName != "198" {
		t.Errorf("customer[0] = %+v, want placeholder Customer 198", customers[0])
	}
}
