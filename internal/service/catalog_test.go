package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshelf/storefront/internal/models"
)

type stubPricingRepo struct {
	packages map[string]*models.PricingPackage
	created  []*models.PricingPackage
}

func newStubPricingRepo() *stubPricingRepo {
	return &stubPricingRepo{packages: make(map[string]*models.PricingPackage)}
}

func (s *stubPricingRepo) GetPackageByID(_ context.Context, id string) (*models.PricingPackage, error) {
	pkg, ok := s.packages[id]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	return pkg, nil
}

func (s *stubPricingRepo) ListPackages(_ context.Context) ([]models.PricingPackage, error) {
	out := make([]models.PricingPackage, 0, len(s.packages))
	for _, pkg := range s.packages {
		out = append(out, *pkg)
	}
	return out, nil
}

func (s *stubPricingRepo) CreatePackage(_ context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error) {
	cp := *pkg
	cp.ID = "p1"
	s.packages[cp.ID] = &cp
	s.created = append(s.created, &cp)
	return &cp, nil
}

func (s *stubPricingRepo) UpdatePackage(_ context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error) {
	if _, ok := s.packages[pkg.ID]; !ok {
		return nil, models.ErrDataNotFound
	}
	cp := *pkg
	s.packages[cp.ID] = &cp
	return &cp, nil
}

func (s *stubPricingRepo) DeletePackage(_ context.Context, id string) error {
	if _, ok := s.packages[id]; !ok {
		return models.ErrDataNotFound
	}
	delete(s.packages, id)
	return nil
}

func TestCatalogService_CreatePackage(t *testing.T) {
	repo := newStubPricingRepo()
	svc := NewCatalogService(repo)

	t.Run("valid package is stored", func(t *testing.T) {
		pkg, err := svc.CreatePackage(context.Background(), &models.PricingPackage{Name: "Starter", Price: 500})
		require.NoError(t, err)
		assert.Equal(t, "p1", pkg.ID)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := svc.CreatePackage(context.Background(), &models.PricingPackage{Price: 500})
		assert.ErrorIs(t, err, models.ErrInvalidPackage)
	})

	t.Run("non-positive price is rejected", func(t *testing.T) {
		_, err := svc.CreatePackage(context.Background(), &models.PricingPackage{Name: "Starter"})
		assert.ErrorIs(t, err, models.ErrInvalidPackage)
	})
}

func TestCatalogService_UpdatePackage(t *testing.T) {
	repo := newStubPricingRepo()
	svc := NewCatalogService(repo)

	_, err := svc.CreatePackage(context.Background(), &models.PricingPackage{Name: "Starter", Price: 500})
	require.NoError(t, err)

	t.Run("existing package is replaced", func(t *testing.T) {
		pkg, err := svc.UpdatePackage(context.Background(), &models.PricingPackage{ID: "p1", Name: "Starter", Price: 600})
		require.NoError(t, err)
		assert.Equal(t, float64(600), pkg.Price)
	})

	t.Run("unknown package is not found", func(t *testing.T) {
		_, err := svc.UpdatePackage(context.Background(), &models.PricingPackage{ID: "nope", Name: "Starter", Price: 600})
		assert.ErrorIs(t, err, models.ErrDataNotFound)
	})

	t.Run("invalid fields are rejected before the repo", func(t *testing.T) {
		_, err := svc.UpdatePackage(context.Background(), &models.PricingPackage{ID: "p1", Price: 600})
		assert.ErrorIs(t, err, models.ErrInvalidPackage)
	})
}

func TestCatalogService_DeletePackage(t *testing.T) {
	repo := newStubPricingRepo()
	svc := NewCatalogService(repo)

	_, err := svc.CreatePackage(context.Background(), &models.PricingPackage{Name: "Starter", Price: 500})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePackage(context.Background(), "p1"))
	assert.ErrorIs(t, svc.DeletePackage(context.Background(), "p1"), models.ErrDataNotFound)
}
