package etl

import (
	"testing"
)

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical form passes through", "12 oz can", "12 oz can"},
		{"spelled-out ounce", "12 ounce can", "12 oz can"},
		{"hyphenated oz", "12-oz can", "12 oz can"},
		{"mixed case", "12 Ounce Can", "12 oz can"},
		{"36 oz can", "36 oz can", "36 oz can"},
		{"bunch", "bunch", "bunch"},
		{"dozen", "Dozen", "dozen"},
		{"empty defaults to each", "", "each"},
		{"whitespace only defaults to each", "   ", "each"},
		{"unknown unit lower-cased", "Case of 24", "case of 24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeUnit(tt.input); got != tt.want {
				t.Errorf("NormalizeUnit(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a1", "A1"},
		{" d4 ", "D4"},
		{"B3", "B3"},
		{"", "GENERAL"},
		{"  ", "GENERAL"},
	}
	for _, tt := range tests {
		if got := NormalizeLocation(tt.input); got != tt.want {
			t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseVendor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  VendorFields
		ok    bool
	}{
		{
			name:  "full vendor with comma in street",
			input: "Bennet Farms, Rt. 17, Evansville, IL 55446",
			want: VendorFields{
				Name:    "Bennet Farms",
				Address: "Rt. 17",
				City:    "Evansville",
				State:   "IL",
				Zip:     "55446",
			},
			ok: true,
		},
		{
			name:  "name address city state zip",
			input: "Ruby Redd Produce, 1212 Milam St., Kenosha, AL 34567",
			want: VendorFields{
				Name:    "Ruby Redd Produce",
				Address: "1212 Milam St.",
				City:    "Kenosha",
				State:   "AL",
				Zip:     "34567",
			},
			ok: true,
		},
		{
			name:  "name only",
			input: "Acme",
			want:  VendorFields{Name: "Acme"},
			ok:    true,
		},
		{
			name:  "name and address only",
			input: "Freshie Farms, 1 Orchard Ln.",
			want:  VendorFields{Name: "Freshie Farms", Address: "1 Orchard Ln."},
			ok:    true,
		},
		{
			name:  "unmatchable tail leaves location empty",
			input: "Odd Goods, 5 Elm, somewhere",
			want:  VendorFields{Name: "Odd Goods", Address: "5 Elm"},
			ok:    true,
		},
		{
			name:  "blank yields no result",
			input: "   ",
			ok:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVendor(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseVendor(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("ParseVendor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  string // YYYY-MM-DD of the parsed date
	}{
		{"11/18/2025", true, "2025-11-18"},
		{"1/2/2025", true, "2025-01-02"},
		{"01/02/2025", true, "2025-01-02"},
		{"12/31/2024", true, "2024-12-31"},
		{"13/40/2025", false, ""},
		{"2025-11-18", false, ""},
		{"not a date", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  string
	}{
		{"2.49", true, "2.49"},
		{"$2.49", true, "2.49"},
		{" $1,234.56 ", true, "1234.56"},
		{"0", true, "0"},
		{".99", true, "0.99"},
		{"free", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		got, ok := ParseMoney(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseMoney(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got.String() != tt.want {
			t.Errorf("ParseMoney(%q) = %s, want %s", tt.input, got.String(), tt.want)
		}
	}
}
