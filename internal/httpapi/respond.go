package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"simplemarket/internal/logger"
	"simplemarket/internal/order"
	"simplemarket/internal/product"

	"go.uber.org/zap"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func toHTTPStatus(err error) int {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrNameRequired),
		errors.Is(err, product.ErrNegativePrice),
		errors.Is(err, product.ErrNegativeQuantity),
		errors.Is(err, order.ErrQuantityRequired),
		errors.Is(err, order.ErrBuyerNameRequired),
		errors.Is(err, order.ErrProductNameRequired),
		errors.Is(err, order.ErrPriceRequired),
		errors.Is(err, order.ErrProductNotFound),
		errors.Is(err, order.ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error onto a status and a {message} body. The
// message is sent verbatim for client errors; internal failures are masked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := toHTTPStatus(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = "internal server error"
	}

	writeJSON(w, status, errorResponse{Message: msg})
}
