package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/custom-cars-api/internal/api/shared"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/phrazzld/custom-cars-api/internal/service"
)

// CarHandler serves saved configurations (custom cars).
type CarHandler struct {
	cars   service.ConfigurationService
	logger *slog.Logger
}

// NewCarHandler creates a CarHandler.
func NewCarHandler(cars service.ConfigurationService, logger *slog.Logger) *CarHandler {
	if cars == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cars cannot be nil for CarHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CarHandler")
	}

	return &CarHandler{
		cars:   cars,
		logger: logger.With(slog.String("component", "car_handler")),
	}
}

// Routes registers the car endpoints on r.
func (h *CarHandler) Routes(r chi.Router) {
	r.Get("/", h.ListCars)
	r.Post("/", h.CreateCar)
	r.Post("/preview", h.PreviewCar)
	r.Get("/{id}", h.GetCar)
	r.Put("/{id}", h.ReplaceCar)
	r.Delete("/{id}", h.DeleteCar)
}

// ListCars handles GET /api/cars, newest first.
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	configs, err := h.cars.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, carsToResponse(configs))
}

// GetCar handles GET /api/cars/{id}.
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	cfg, err := h.cars.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, carToResponse(cfg))
}

// CreateCar handles POST /api/cars.
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	proposal, ok := decodeCarRequest(w, r)
	if !ok {
		return
	}

	cfg, err := h.cars.Create(r.Context(), proposal)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	log.Debug("custom item created", slog.Int64("configuration_id", cfg.ID))
	shared.RespondWithMessage(w, r, http.StatusCreated,
		"Custom item created successfully!", carToSummary(cfg))
}

// PreviewCar handles POST /api/cars/preview. It validates and prices the
// payload exactly like CreateCar but persists nothing.
func (h *CarHandler) PreviewCar(w http.ResponseWriter, r *http.Request) {
	proposal, ok := decodeCarRequest(w, r)
	if !ok {
		return
	}

	cfg, err := h.cars.Preview(r.Context(), proposal)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, carToResponse(cfg))
}

// ReplaceCar handles PUT /api/cars/{id}. The name, convertible flag and the
// whole option set are replaced.
func (h *CarHandler) ReplaceCar(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	proposal, ok := decodeCarRequest(w, r)
	if !ok {
		return
	}

	cfg, err := h.cars.Replace(r.Context(), id, proposal)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK,
		fmt.Sprintf("Custom item %d updated successfully!", id), carToSummary(cfg))
}

// DeleteCar handles DELETE /api/cars/{id}.
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.cars.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK,
		fmt.Sprintf("Custom item %d deleted successfully.", id), nil)
}
