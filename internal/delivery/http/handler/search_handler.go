package handler

import (
	"net/http"
	"strings"

	"clinic-outreach-service/internal/delivery/dto"
	"clinic-outreach-service/internal/usecase"
	"clinic-outreach-service/pkg/response"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUsecase
}

func NewSearchHandler(searchUsecase usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase}
}

// Search handles GET /search?q=&type=&start_date=&end_date=&categories=
// where categories is a comma-separated list
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &dto.SearchRequest{
		Query:     query.Get("q"),
		Type:      query.Get("type"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}
	if raw := query.Get("categories"); raw != "" {
		req.Categories = strings.Split(raw, ",")
	}

	switch req.Type {
	case "", usecase.SearchTypeAll, usecase.SearchTypePatients, usecase.SearchTypeAppointments:
	default:
		response.Error(w, http.StatusBadRequest, "type must be all, patients or appointments", nil)
		return
	}

	results, err := h.searchUsecase.Search(r.Context(), req)
	if err != nil {
		response.InternalServerError(w, "Failed to search")
		return
	}

	response.Success(w, http.StatusOK, "Search completed successfully", results)
}
