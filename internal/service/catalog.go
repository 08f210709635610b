package service

import (
	"context"

	"github.com/styleshelf/storefront/internal/models"
)

// PricingRepository is interface for interacting with the pricing catalog
type PricingRepository interface {
	// GetPackageByID returns pricing package by id
	GetPackageByID(ctx context.Context, id string) (*models.PricingPackage, error)
	// ListPackages returns all pricing packages
	ListPackages(ctx context.Context) ([]models.PricingPackage, error)
	// CreatePackage inserts new pricing package
	CreatePackage(ctx context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error)
	// UpdatePackage updates an existing pricing package
	UpdatePackage(ctx context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error)
	// DeletePackage removes a pricing package
	DeletePackage(ctx context.Context, id string) error
}

// CatalogService implements CatalogService interface
type CatalogService struct {
	repo PricingRepository
}

// NewCatalogService creates new CatalogService instance
func NewCatalogService(repo PricingRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListPackages returns the pricing catalog
func (cs *CatalogService) ListPackages(ctx context.Context) ([]models.PricingPackage, error) {
	return cs.repo.ListPackages(ctx)
}

// GetPackage returns a single pricing package
func (cs *CatalogService) GetPackage(ctx context.Context, id string) (*models.PricingPackage, error) {
	return cs.repo.GetPackageByID(ctx, id)
}

// CreatePackage adds a package to the catalog
func (cs *CatalogService) CreatePackage(ctx context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error) {
	if pkg.Name == "" || pkg.Price <= 0 {
		return nil, models.ErrInvalidPackage
	}
	return cs.repo.CreatePackage(ctx, pkg)
}

// UpdatePackage replaces a package's fields
func (cs *CatalogService) UpdatePackage(ctx context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error) {
	if pkg.Name == "" || pkg.Price <= 0 {
		return nil, models.ErrInvalidPackage
	}
	return cs.repo.UpdatePackage(ctx, pkg)
}

// DeletePackage removes a package from the catalog
func (cs *CatalogService) DeletePackage(ctx context.Context, id string) error {
	return cs.repo.DeletePackage(ctx, id)
}
