package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/models"
	"github.com/cafeops/drinkshop/services"
	"github.com/cafeops/drinkshop/utils"
)

// welcomeMessage is served on the root endpoint
const welcomeMessage = "Welcome to the Coffee Shop"

// DrinksResponse is the success envelope for endpoints returning drinks
type DrinksResponse struct {
	Success bool        `json:"success"`
	Drinks  interface{} `json:"drinks"`
}

// DeleteResponse is the success envelope for the delete endpoint
type DeleteResponse struct {
	Success bool  `json:"success"`
	Delete  int64 `json:"delete"`
}

// CatalogService defines the catalog operations the handlers orchestrate
type CatalogService interface {
	// List returns all drinks
	List(ctx context.Context) ([]*models.Drink, error)

	// Create validates and inserts a new drink
	Create(ctx context.Context, payload *utils.DrinkPayload) (*models.Drink, error)

	// Update applies the supplied fields to an existing drink
	Update(ctx context.Context, id int64, payload *utils.DrinkPayload) (*models.Drink, error)

	// Delete removes a drink and returns the deleted id
	Delete(ctx context.Context, id int64) (int64, error)
}

// DrinkHandler handles drink-related HTTP requests
type DrinkHandler struct {
	catalog CatalogService
	logger  *zap.Logger
}

// NewDrinkHandler creates a new DrinkHandler
func NewDrinkHandler(catalog CatalogService, logger *zap.Logger) *DrinkHandler {
	return &DrinkHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleWelcome handles GET /
func (h *DrinkHandler) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomeMessage))
}

// HandleListDrinks handles GET /drinks; public, short projection.
// An empty catalog is reported as a 404, not an empty success list.
func (h *DrinkHandler) HandleListDrinks(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.catalog.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if len(drinks) == 0 {
		HandleServiceError(w, services.ErrNoDrinks, h.logger)
		return
	}

	projections := make([]models.DrinkShort, len(drinks))
	for i, drink := range drinks {
		short, err := drink.Short()
		if err != nil {
			h.logger.Error("failed to project drink", zap.Int64("id", drink.ID), zap.Error(err))
			HandleServiceError(w, services.ErrQueryFailed, h.logger)
			return
		}
		projections[i] = short
	}

	_ = utils.WriteJSON(w, http.StatusOK, DrinksResponse{Success: true, Drinks: projections})
}

// HandleListDrinksDetail handles GET /drinks-detail; long projection, gated
// by the get:drinks-detail permission at the router
func (h *DrinkHandler) HandleListDrinksDetail(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.catalog.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if len(drinks) == 0 {
		HandleServiceError(w, services.ErrNoDrinks, h.logger)
		return
	}

	projections := make([]models.DrinkLong, len(drinks))
	for i, drink := range drinks {
		long, err := drink.Long()
		if err != nil {
			h.logger.Error("failed to project drink", zap.Int64("id", drink.ID), zap.Error(err))
			HandleServiceError(w, services.ErrQueryFailed, h.logger)
			return
		}
		projections[i] = long
	}

	_ = utils.WriteJSON(w, http.StatusOK, DrinksResponse{Success: true, Drinks: projections})
}

// HandleCreateDrink handles POST /drinks
func (h *DrinkHandler) HandleCreateDrink(w http.ResponseWriter, r *http.Request) {
	payload, err := utils.ParseDrinkPayload(r)
	if err != nil {
		h.logger.Warn("failed to parse request body", zap.Error(err))
		HandleServiceError(w, services.ErrInvalidInput, h.logger)
		return
	}

	drink, err := h.catalog.Create(r.Context(), payload)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.writeDrinkLong(w, drink)
}

// HandleUpdateDrink handles PATCH /drinks/{id}
func (h *DrinkHandler) HandleUpdateDrink(w http.ResponseWriter, r *http.Request) {
	id, err := drinkID(r)
	if err != nil {
		HandleServiceError(w, services.ErrDrinkNotFound, h.logger)
		return
	}

	payload, err := utils.ParseDrinkPayload(r)
	if err != nil {
		h.logger.Warn("failed to parse request body", zap.Error(err))
		HandleServiceError(w, services.ErrInvalidUpdateInput, h.logger)
		return
	}

	drink, err := h.catalog.Update(r.Context(), id, payload)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.writeDrinkLong(w, drink)
}

// HandleDeleteDrink handles DELETE /drinks/{id}
func (h *DrinkHandler) HandleDeleteDrink(w http.ResponseWriter, r *http.Request) {
	id, err := drinkID(r)
	if err != nil {
		HandleServiceError(w, services.ErrDrinkNotFound, h.logger)
		return
	}

	deleted, err := h.catalog.Delete(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, DeleteResponse{Success: true, Delete: deleted})
}

// writeDrinkLong writes a single drink as a one-element long-projection list
func (h *DrinkHandler) writeDrinkLong(w http.ResponseWriter, drink *models.Drink) {
	long, err := drink.Long()
	if err != nil {
		h.logger.Error("failed to project drink", zap.Int64("id", drink.ID), zap.Error(err))
		HandleServiceError(w, services.ErrQueryFailed, h.logger)
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, DrinksResponse{Success: true, Drinks: []models.DrinkLong{long}})
}

// drinkID parses the id path parameter
func drinkID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
