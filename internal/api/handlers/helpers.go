package handlers

import (
	"crawl-route-service/internal/api/dto"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).WithError(err).
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			Error("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, details ...string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg, Details: details})
}

// writeDomainError maps a service error onto an HTTP status.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		obs.Logger(r.Context()).WithError(err).Error("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindInvalidInput:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindUpstream:
		status = http.StatusBadGateway
	}

	msg := de.Msg
	if status == http.StatusInternalServerError {
		obs.Logger(r.Context()).WithError(err).Error("request failed")
		msg = "internal server error"
	} else {
		obs.Logger(r.Context()).WithError(err).WithField("status", status).Info("request rejected")
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	writeJSON(w, r, status, dto.ErrorResponse{Error: msg, Kind: de.Kind.String(), Details: de.Details})
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// parseFloatParam reads an optional float query parameter.
func parseFloatParam(r *http.Request, name string) (float64, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, domain.InvalidInput("parse query", "parameter must be a number", name)
	}
	return v, true, nil
}
