// Command datagen produces a synthetic point-of-sale export in the same
// messy shape the store's register software writes: one flat CSV where a
// row may describe a purchase, a sale, or both, units are spelled
// inconsistently, and a handful of rows are missing their item number.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
)

var header = []string{
	"Item Num", "Description", "Item Type", "Unit", "Location",
	"Vendor", "Cost", "Quantity", "Purchase Date", "Quantity On-Hand",
	"Price", "Cust", "Date Sold",
}

// unitSpellings mirrors the register's inconsistent unit entry. The
// pipeline is expected to fold these down to canonical forms.
var unitSpellings = []string{
	"12 oz can", "12 ounce can", "12-oz can", "36 oz can",
	"bunch", "dozen", "each", "",
}

var itemTypes = []string{"Canned", "Produce", "Dairy", "Bakery", "Dry Goods", ""}

var locations = []string{"A1", "A2", "B1", "B3", "C2", "D4", ""}

type product struct {
	itemNum  int
	desc     string
	itemType string
	unit     string
	location string
	vendor   string
	cost     float64
	price    float64
}

func main() {
	var (
		rows     = flag.Int("rows", 200, "number of data rows to generate")
		out      = flag.String("out", "export.csv", "output file path")
		seed     = flag.Int64("seed", 0, "random seed (0 for nondeterministic)")
		products = flag.Int("products", 30, "distinct products to draw rows from")
		vendors  = flag.Int("vendors", 8, "distinct vendors to draw purchases from")
	)
	flag.Parse()

	faker := gofakeit.New(*seed)

	vendorPool := make([]string, *vendors)
	for i := range vendorPool {
		vendorPool[i] = makeVendor(faker)
	}

	catalog := make([]product, *products)
	for i := range catalog {
		cost := faker.Price(0.25, 20)
		catalog[i] = product{
			itemNum:  1000 + i,
			desc:     faker.ProductName(),
			itemType: faker.RandomString(itemTypes),
			unit:     faker.RandomString(unitSpellings),
			location: faker.RandomString(locations),
			vendor:   faker.RandomString(vendorPool),
			cost:     cost,
			price:    cost * (1.2 + faker.Float64Range(0, 0.8)),
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		log.Fatalf("write header: %v", err)
	}

	for i := 0; i < *rows; i++ {
		p := catalog[faker.Number(0, len(catalog)-1)]
		record := makeRow(faker, p)

		// A few rows arrive without an item number and should be skipped
		// by any downstream consumer.
		if faker.Number(1, 50) == 1 {
			record[0] = ""
		}

		if err := w.Write(record); err != nil {
			log.Fatalf("write row %d: %v", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush: %v", err)
	}
	fmt.Printf("wrote %d rows to %s\n", *rows, *out)
}

// makeRow emits one export row for p: a purchase, a sale, both on the same
// line, or a bare catalog entry, the way the register batches its day-end
// dump.
func makeRow(faker *gofakeit.Faker, p product) []string {
	record := make([]string, len(header))
	record[0] = strconv.Itoa(p.itemNum)
	record[1] = p.desc
	record[2] = p.itemType
	record[3] = p.unit
	record[4] = p.location

	// 0 purchase, 1 sale, 2 both, 3 definition only.
	kind := faker.Number(0, 3)
	if kind == 0 || kind == 2 {
		record[5] = p.vendor
		record[6] = fmt.Sprintf("$%.2f", p.cost)
		record[7] = strconv.Itoa(faker.Number(1, 120))
		record[8] = exportDate(faker)
		record[9] = strconv.Itoa(faker.Number(0, 80))
	}
	if kind == 1 || kind == 2 {
		record[7] = strconv.Itoa(faker.Number(1, 12))
		record[10] = fmt.Sprintf("%.2f", p.price)
		if faker.Number(1, 10) > 2 {
			record[11] = strconv.Itoa(faker.Number(1, 40))
		}
		record[12] = exportDate(faker)
	}
	return record
}

// makeVendor formats a vendor the way the register stores it: a single
// comma-joined field that may or may not carry an address and
// city/state/zip tail. Street names with embedded commas are deliberate.
func makeVendor(faker *gofakeit.Faker) string {
	name := faker.Company()
	switch faker.Number(0, 3) {
	case 0:
		return name
	case 1:
		return fmt.Sprintf("%s, %s", name, faker.Street())
	default:
		return fmt.Sprintf("%s, %s, %s, %s %s",
			name, faker.Street(), faker.City(), faker.StateAbr(), faker.Zip())
	}
}

// exportDate renders an M/D/YYYY date in 2025, unpadded like the source.
func exportDate(faker *gofakeit.Faker) string {
	return fmt.Sprintf("%d/%d/2025", faker.Number(1, 12), faker.Number(1, 28))
}
