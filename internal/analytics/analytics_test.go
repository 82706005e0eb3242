package analytics

import "testing"

func TestSegmentFor(t *testing.T) {
	tests := []struct {
		lifetimeValue float64
		want          string
	}{
		{120, "VIP"},
		{50, "VIP"},
		{49.99, "Regular"},
		{25, "Regular"},
		{24.99, "Occasional"},
		{10, "Occasional"},
		{9.99, "New"},
		{0, "New"},
	}
	for _, tt := range tests {
		if got := SegmentFor(tt.lifetimeValue); got != tt.want {
			t.Errorf("SegmentFor(%v) = %q, want %q", tt.lifetimeValue, got, tt.want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name                       string
		onHand, reorder, maxStock int
		want                       string
	}{
		{"zero on hand", 0, 10, 100, StockOutOfStock},
		{"negative on hand", -3, 10, 100, StockOutOfStock},
		{"at reorder level", 10, 10, 100, StockReorderNeeded},
		{"below reorder level", 4, 10, 100, StockReorderNeeded},
		{"within low band", 15, 10, 100, StockLow},
		{"just above low band", 16, 10, 100, StockHealthy},
		{"at max stock", 100, 10, 100, StockOverstock},
		{"above max stock", 140, 10, 100, StockOverstock},
		{"healthy middle", 50, 10, 100, StockHealthy},
		{"no max stock configured", 500, 10, 0, StockHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.onHand, tt.reorder, tt.maxStock); got != tt.want {
				t.Errorf("StatusFor(%d, %d, %d) = %q, want %q",
					tt.onHand, tt.reorder, tt.maxStock, got, tt.want)
			}
		})
	}
}

func TestSortByStatusSeverity(t *testing.T) {
	items := []InventoryStatus{
		{ProductName: "apples", Status: StockHealthy},
		{ProductName: "beans", Status: StockOutOfStock},
		{ProductName: "corn", Status: StockLow},
		{ProductName: "dates", Status: StockOutOfStock},
		{ProductName: "eggs", Status: StockReorderNeeded},
	}
	sortByStatusSeverity(items)

	wantOrder := []string{"beans", "dates", "eggs", "corn", "apples"}
	for i, want := range wantOrder {
		if items[i].ProductName != want {
			t.Errorf("items[%d] = %q, want %q (worst status first, stable within status)",
				i, items[i].ProductName, want)
		}
	}
}
