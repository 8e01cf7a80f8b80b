package store

import (
	"context"
	"database/sql"
	"fmt"

	"nearme/api/models"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id_product, product_name, price, category, id_store, product_description, sold_out`

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(
		&p.IDProduct,
		&p.ProductName,
		&p.Price,
		&p.Category,
		&p.IDStore,
		&p.ProductDescription,
		&p.SoldOut,
	)
}

func (s *ProductStore) collect(rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id_product`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return s.collect(rows)
}

func (s *ProductStore) ListByStore(ctx context.Context, nit string) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id_store = $1 ORDER BY id_product`, nit)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for store %q: %w", nit, err)
	}
	return s.collect(rows)
}

func (s *ProductStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := scanProduct(s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id_product = $1`, id), &p)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &p, nil
}

func (s *ProductStore) CreateProduct(ctx context.Context, req *models.ProductCreateRequest) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products(product_name, price, category, id_store, product_description, sold_out)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_product`,
		req.ProductName,
		req.Price,
		req.Category,
		req.IDStore,
		req.ProductDescription,
		req.SoldOut,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// UpdateProduct merges the request over the stored row in a single statement:
// a nil field stays NULL in the parameter list and COALESCE keeps the current
// column value. Returns the merged row as persisted.
func (s *ProductStore) UpdateProduct(ctx context.Context, id string, req *models.ProductUpdateRequest) (*models.Product, error) {
	var p models.Product
	err := scanProduct(s.db.QueryRowContext(ctx, `
		UPDATE products SET
			product_name = COALESCE($1, product_name),
			price = COALESCE($2, price),
			category = COALESCE($3, category),
			id_store = COALESCE($4, id_store),
			product_description = COALESCE($5, product_description),
			sold_out = COALESCE($6, sold_out)
		WHERE id_product = $7
		RETURNING `+productColumns,
		req.ProductName,
		req.Price,
		req.Category,
		req.IDStore,
		req.ProductDescription,
		req.SoldOut,
		id,
	), &p)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &p, nil
}

func (s *ProductStore) UpdateStatus(ctx context.Context, id string, soldOut bool) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET sold_out = $1 WHERE id_product = $2`, soldOut, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update product %s status: %w", id, err)
	}
	return res.RowsAffected()
}

func (s *ProductStore) DeleteProduct(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id_product = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return res.RowsAffected()
}
