package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/fastfood/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

const productColumns = `id, name, price_minor, category, description, active, image_url, created_at, updated_at`

func (r *productRepository) GetByID(id int64) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetAll() ([]domain.Product, error) {
	return r.list(`SELECT `+productColumns+` FROM products ORDER BY id ASC`, nil)
}

func (r *productRepository) GetByCategory(category domain.Category) ([]domain.Product, error) {
	return r.list(`
		SELECT `+productColumns+`
		FROM products
		WHERE category = $1
		ORDER BY id ASC
	`, []any{string(category)})
}

func (r *productRepository) GetActive() ([]domain.Product, error) {
	return r.list(`
		SELECT ` + productColumns + `
		FROM products
		WHERE active
		ORDER BY id ASC
	`, nil)
}

func (r *productRepository) Add(product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price_minor, category, description, active, image_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		product.Name, product.PriceMinor, string(product.Category),
		nullString(product.Description), product.Active, nullString(product.ImageURL),
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Update(product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1,
		    price_minor = $2,
		    category = $3,
		    description = $4,
		    active = $5,
		    image_url = $6,
		    updated_at = $7
		WHERE id = $8
	`,
		product.Name, product.PriceMinor, string(product.Category),
		nullString(product.Description), product.Active, nullString(product.ImageURL),
		product.UpdatedAt, product.ID,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	return product, nil
}

func (r *productRepository) Delete(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *productRepository) Count() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) list(query string, args []any) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		product     domain.Product
		category    string
		description sql.NullString
		imageURL    sql.NullString
	)

	if err := row.Scan(
		&product.ID, &product.Name, &product.PriceMinor, &category,
		&description, &product.Active, &imageURL,
		&product.CreatedAt, &product.UpdatedAt,
	); err != nil {
		return domain.Product{}, err
	}

	product.Category = domain.Category(category)
	product.Description = description.String
	product.ImageURL = imageURL.String

	return product, nil
}

// nullString преобразует пустую строку в NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ domain.ProductRepository = (*productRepository)(nil)
