package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/damon-houk/inventory-tracker/internal/application/service"
	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
	"github.com/damon-houk/inventory-tracker/internal/domain/repository"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// InventoryHandler handles HTTP requests for transactions and the inventory
type InventoryHandler struct {
	service *service.InventoryService
	logger  logger.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service *service.InventoryService, log logger.Logger) *InventoryHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &InventoryHandler{
		service: service,
		logger:  log,
	}
}

// RecordTransaction handles recording a new Purchase or Sale
func (h *InventoryHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	h.logger.Info("Handling record transaction request", map[string]interface{}{
		"request_id": requestID,
		"method":     r.Method,
		"path":       r.URL.Path,
	})

	var req RecordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	product, err := h.service.RecordTransaction(r.Context(),
		entity.TransactionType(req.Type), req.ProductID, req.ProductName, req.Quantity, req.Price)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID, "recording the transaction")
		return
	}

	h.logger.Info("Transaction saved successfully", map[string]interface{}{
		"request_id": requestID,
		"product_id": product.ProductID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProductResponse(*product))
}

// ListProducts handles the inventory view
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, requestID, "listing products")
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListTransactions handles the transaction log view, with an optional
// ?type=Purchase|Sale filter.
func (h *InventoryHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	txType := entity.TransactionType(r.URL.Query().Get("type"))
	if txType != "" && txType != entity.Purchase && txType != entity.Sale {
		sendErrorResponse(w, h.logger, "Invalid type filter",
			"Type must be Purchase or Sale", http.StatusBadRequest, requestID)
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), txType)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID, "listing transactions")
		return
	}

	resp := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, toTransactionResponse(tx))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetProduct handles retrieving one product aggregate by id
func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	productID := mux.Vars(r)["id"]

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			sendErrorResponse(w, h.logger, "Product not found",
				"No product exists with the given id", http.StatusNotFound, requestID)
			return
		}
		sendServiceError(w, h.logger, err, requestID, "retrieving the product")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(*product))
}

// RegisterRoutes registers the inventory handler routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions", h.RecordTransaction).Methods("POST")
	router.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	router.HandleFunc("/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")

	h.logger.Info("Inventory routes registered", map[string]interface{}{
		"routes": []string{
			"POST /transactions",
			"GET /transactions",
			"GET /products",
			"GET /products/{id}",
		},
	})
}

// sendServiceError maps the error classes to HTTP statuses. Validation keeps
// the client's input (nothing was persisted); storage failures report that
// nothing was committed.
func sendServiceError(w http.ResponseWriter, log logger.Logger, err error, requestID, during string) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		sendErrorResponse(w, log, "Invalid transaction input",
			err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, repository.ErrNotInitialized), errors.Is(err, repository.ErrStorageUnavailable):
		sendErrorResponse(w, log, "Storage unavailable",
			"The database is not available; retry after reinitialization", http.StatusServiceUnavailable, requestID)
	default:
		log.Error("Unexpected error while "+during, map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, "Internal server error",
			"An unexpected error occurred while "+during, http.StatusInternalServerError, requestID)
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}
