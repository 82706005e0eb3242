package web

// handlers_export.go streams any of the seven normalized tables as CSV.
// Table names are whitelisted; the handler never interpolates user input
// into SQL beyond the fixed map below.

import (
	"database/sql/driver"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/greenspot/grocer/internal/logging"
)

// exportQueries maps exportable table names to their ordered SELECTs.
var exportQueries = map[string]string{
	"product_categories": "SELECT * FROM product_categories ORDER BY category_id",
	"vendors":            "SELECT * FROM vendors ORDER BY vendor_id",
	"products":           "SELECT * FROM products ORDER BY product_id",
	"customers":          "SELECT * FROM customers ORDER BY customer_id",
	"inventory":          "SELECT * FROM inventory ORDER BY product_id",
	"purchase_orders":    "SELECT * FROM purchase_orders ORDER BY purchase_id",
	"sales_transactions": "SELECT * FROM sales_transactions ORDER BY transaction_id",
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	query, ok := exportQueries[table]
	if !ok {
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown table", Code: "EXPORT_UNKNOWN_TABLE"})
		return
	}

	rows, err := s.pool.Query(r.Context(), query)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "EXPORT_QUERY_FAILED")
		return
	}
	defer rows.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table))

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, 0, len(rows.FieldDescriptions()))
	for _, fd := range rows.FieldDescriptions() {
		header = append(header, fd.Name)
	}
	if err := cw.Write(header); err != nil {
		return
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			logError(r, err)
			return
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return
		}
	}
	if err := rows.Err(); err != nil {
		logError(r, err)
	}
}

func logError(r *http.Request, err error) {
	// The response is already streaming, so the error can only be logged.
	logging.FromContext(r.Context()).Error("export stream failed", "error", err)
}

// formatCell renders one database value for CSV output.
func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02")
	case [16]byte:
		return uuid.UUID(t).String()
	}
	if valuer, ok := v.(driver.Valuer); ok {
		if dv, err := valuer.Value(); err == nil && dv != nil {
			return formatCell(dv)
		}
		return ""
	}
	return fmt.Sprint(v)
}
