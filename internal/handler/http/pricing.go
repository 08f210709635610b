package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/styleshelf/storefront/internal/models"
)

//go:generate mockgen -destination=mocks/catalog_service.go -package=mocks github.com/styleshelf/storefront/internal/handler/http CatalogService

// CatalogService is interface for the pricing catalog
type CatalogService interface {
	// ListPackages returns the pricing catalog
	ListPackages(ctx context.Context) ([]models.PricingPackage, error)
	// CreatePackage adds a package to the catalog
	CreatePackage(ctx context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error)
	// UpdatePackage replaces a package's fields
	UpdatePackage(ctx context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error)
	// DeletePackage removes a package from the catalog
	DeletePackage(ctx context.Context, id string) error
}

// PricingHandler represents HTTP handler for pricing catalog requests
type PricingHandler struct {
	svc CatalogService
}

// NewPricingHandler creates new PricingHandler instance
func NewPricingHandler(svc CatalogService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

type packageResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"package_name"`
	Description string  `json:"package_description"`
	Price       float64 `json:"package_price"`
	Discount    *int32  `json:"discount"`
	DocumentURL *string `json:"document_url"`
	CreatedAt   string  `json:"created_at"`
}

type packageRequest struct {
	Name        string  `json:"package_name"`
	Description string  `json:"package_description"`
	Price       float64 `json:"package_price"`
	Discount    *int32  `json:"discount"`
	DocumentURL *string `json:"document_url"`
}

func toPackageResponse(pkg models.PricingPackage) packageResponse {
	return packageResponse{
		ID:          pkg.ID,
		Name:        pkg.Name,
		Description: pkg.Description,
		Price:       pkg.Price,
		Discount:    pkg.Discount,
		DocumentURL: pkg.DocumentURL,
		CreatedAt:   pkg.CreatedAt.Format(time.RFC3339),
	}
}

// ListPricing returns the pricing catalog
// 200 — request handled successfully;
// 500 — internal server error.
func (ph *PricingHandler) ListPricing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packages, err := ph.svc.ListPackages(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]packageResponse, 0, len(packages))
		for _, pkg := range packages {
			resp = append(resp, toPackageResponse(pkg))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// CreatePricing adds a package to the catalog
// 200 — package created;
// 400 — malformed request;
// 422 — invalid package fields;
// 500 — internal server error.
func (ph *PricingHandler) CreatePricing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req packageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		pkg, err := ph.svc.CreatePackage(r.Context(), &models.PricingPackage{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Discount:    req.Discount,
			DocumentURL: req.DocumentURL,
		})
		if err != nil {
			if errors.Is(err, models.ErrInvalidPackage) {
				http.Error(w, "invalid pricing package", http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toPackageResponse(*pkg)); err != nil {
			return
		}
	}
}

// UpdatePricing replaces a package's fields
// 200 — package updated;
// 400 — malformed request;
// 404 — package not found;
// 422 — invalid package fields;
// 500 — internal server error.
func (ph *PricingHandler) UpdatePricing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		var req packageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		pkg, err := ph.svc.UpdatePackage(r.Context(), &models.PricingPackage{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Discount:    req.Discount,
			DocumentURL: req.DocumentURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidPackage):
				http.Error(w, "invalid pricing package", http.StatusUnprocessableEntity)
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "package not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toPackageResponse(*pkg)); err != nil {
			return
		}
	}
}

// DeletePricing removes a package from the catalog
// 200 — package removed;
// 404 — package not found;
// 500 — internal server error.
func (ph *PricingHandler) DeletePricing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err := ph.svc.DeletePackage(r.Context(), id); err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "package not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
