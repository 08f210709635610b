package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/styleshelf/storefront/internal/models"
	"github.com/styleshelf/storefront/internal/repository/postgres"
)

const pgErrUniqueViolationCode = "23505"

const (
	selectPackageByIDQuery = `
						SELECT id, package_name, package_description, package_price, discount, document_url, created_at FROM pricing
						WHERE id = $1
`
	selectPackagesQuery = `
						SELECT id, package_name, package_description, package_price, discount, document_url, created_at FROM pricing
						ORDER BY created_at
`
	insertPackageQuery = `
						INSERT INTO pricing (package_name, package_description, package_price, discount, document_url)
						values ($1, $2, $3, $4, $5)
						RETURNING id, package_name, package_description, package_price, discount, document_url, created_at
`
	updatePackageQuery = `
						UPDATE pricing
						SET package_name = $2, package_description = $3, package_price = $4, discount = $5, document_url = $6
						WHERE id = $1
`
	deletePackageQuery = `
						DELETE FROM pricing
						WHERE id = $1
`
)

// PricingRepository implements PricingRepository interface
type PricingRepository struct {
	db *postgres.DB
}

// NewPricingRepository creates new PricingRepository instance
func NewPricingRepository(db *postgres.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// GetPackageByID returns pricing package by id
func (pr *PricingRepository) GetPackageByID(ctx context.Context, id string) (*models.PricingPackage, error) {
	pkg := models.PricingPackage{}
	err := pr.db.QueryRow(ctx, selectPackageByIDQuery, id).
		Scan(&pkg.ID, &pkg.Name, &pkg.Description, &pkg.Price, &pkg.Discount, &pkg.DocumentURL, &pkg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &pkg, nil
}

// ListPackages returns all pricing packages
func (pr *PricingRepository) ListPackages(ctx context.Context) ([]models.PricingPackage, error) {
	rows, err := pr.db.Query(ctx, selectPackagesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := []models.PricingPackage{}

	for rows.Next() {
		pkg := models.PricingPackage{}
		err = rows.Scan(&pkg.ID, &pkg.Name, &pkg.Description, &pkg.Price, &pkg.Discount, &pkg.DocumentURL, &pkg.CreatedAt)
		if err != nil {
			continue
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}

// CreatePackage inserts new pricing package
func (pr *PricingRepository) CreatePackage(ctx context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error) {
	err := pr.db.QueryRow(ctx, insertPackageQuery,
		pkg.Name, pkg.Description, pkg.Price, pkg.Discount, pkg.DocumentURL).
		Scan(&pkg.ID, &pkg.Name, &pkg.Description, &pkg.Price, &pkg.Discount, &pkg.DocumentURL, &pkg.CreatedAt)
	if err != nil {
		return nil, err
	}

	return pkg, nil
}

// UpdatePackage updates an existing pricing package
func (pr *PricingRepository) UpdatePackage(ctx context.Context, pkg *models.PricingPackage) (*models.PricingPackage, error) {
	cmd, err := pr.db.Exec(ctx, updatePackageQuery,
		pkg.ID, pkg.Name, pkg.Description, pkg.Price, pkg.Discount, pkg.DocumentURL)
	if err != nil {
		return nil, err
	}

	if cmd.RowsAffected() == 0 {
		return nil, models.ErrDataNotFound
	}

	return pkg, nil
}

// DeletePackage removes a pricing package
func (pr *PricingRepository) DeletePackage(ctx context.Context, id string) error {
	cmd, err := pr.db.Exec(ctx, deletePackageQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
