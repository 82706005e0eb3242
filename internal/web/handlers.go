package web

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		respondError(w, r, err, http.StatusServiceUnavailable, "DB_UNAVAILABLE")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExecutiveSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.analytics.GetExecutiveSummary(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "QUERY_FAILED")
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

func (s *Server) handleDailySales(w http.ResponseWriter, r *http.Request) {
	trend, err := s.analytics.GetDailySales(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "QUERY_FAILED")
		return
	}
	respondJSON(w, http.StatusOK, trend)
}

func (s *Server) handleProductPerformance(w http.ResponseWriter, r *http.Request) {
	products, err := s.analytics.GetProductPerformance(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "QUERY_FAILED")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleCategoryPerformance(w http.ResponseWriter, r *http.Request) {
	categories, err := s.analytics.GetCategoryPerformance(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "QUERY_FAILED")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCustomerInsights(w http.ResponseWriter, r *http.Request) {
	customers, err := s.analytics.GetCustomerInsights(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "QUERY_FAILED")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (s *Server) handleInventoryStatus(w http.ResponseWriter, r *http.Request) {
	inventory, err := s.analytics.GetInventoryStatus(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "QUERY_FAILED")
		return
	}
	respondJSON(w, http.StatusOK, inventory)
}

func (s *Server) handleVendorPerformance(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.analytics.GetVendorPerformance(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "QUERY_FAILED")
		return
	}
	respondJSON(w, http.StatusOK, vendors)
}
