package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appubr/backoffice/internal/shared"
)

// Repository persists menu items and retail products in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const menuColumns = `id, name, description, category, selling_price, hpp, profit_margin, ingredients, allergens, status, created_at, updated_at`

func scanMenuItem(row pgx.Row) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.SellingPrice, &m.HPP, &m.ProfitMargin,
		&m.Ingredients, &m.Allergens, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// ListMenuItems returns menu items matching the filter, name ascending.
func (r *Repository) ListMenuItems(ctx context.Context, filter Filter) ([]MenuItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+menuColumns+`
FROM menu_items
WHERE ($1 = '' OR category = $1)
  AND ($2 = '' OR status = $2)
  AND ($3 = '' OR name ILIKE '%' || $3 || '%')
ORDER BY name ASC
LIMIT 500`, filter.Category, string(filter.Status), filter.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// GetMenuItem fetches one menu item by id.
func (r *Repository) GetMenuItem(ctx context.Context, id string) (MenuItem, error) {
	m, err := scanMenuItem(r.pool.QueryRow(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MenuItem{}, shared.ErrNotFound
		}
		return MenuItem{}, err
	}
	return m, nil
}

// CreateMenuItem inserts a new menu item.
func (r *Repository) CreateMenuItem(ctx context.Context, m MenuItem) (MenuItem, error) {
	m.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO menu_items (id, name, description, category, selling_price, hpp, profit_margin,
ingredients, allergens, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)`,
		m.ID, m.Name, m.Description, m.Category, m.SellingPrice, m.HPP, m.ProfitMargin,
		m.Ingredients, m.Allergens, string(m.Status), now)
	if err != nil {
		return MenuItem{}, err
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	return m, nil
}

// UpdateMenuItem overwrites the mutable fields of a menu item.
func (r *Repository) UpdateMenuItem(ctx context.Context, m MenuItem) (MenuItem, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE menu_items SET name=$2, description=$3, category=$4, selling_price=$5, hpp=$6,
profit_margin=$7, ingredients=$8, allergens=$9, status=$10, updated_at=NOW()
WHERE id=$1`,
		m.ID, m.Name, m.Description, m.Category, m.SellingPrice, m.HPP, m.ProfitMargin,
		m.Ingredients, m.Allergens, string(m.Status))
	if err != nil {
		return MenuItem{}, err
	}
	if tag.RowsAffected() == 0 {
		return MenuItem{}, shared.ErrNotFound
	}
	return r.GetMenuItem(ctx, m.ID)
}

const productColumns = `id, name, description, category, sku, barcode, selling_price, purchase_price, profit_margin,
stock, min_stock, supplier, status, created_at, updated_at`

func scanProduct(row pgx.Row) (RetailProduct, error) {
	var p RetailProduct
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.SKU, &p.Barcode,
		&p.SellingPrice, &p.PurchasePrice, &p.ProfitMargin,
		&p.Stock, &p.MinStock, &p.Supplier, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListProducts returns retail products matching the filter, name ascending.
func (r *Repository) ListProducts(ctx context.Context, filter Filter) ([]RetailProduct, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+`
FROM retail_products
WHERE ($1 = '' OR category = $1)
  AND ($2 = '' OR status = $2)
  AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR sku ILIKE '%' || $3 || '%')
ORDER BY name ASC
LIMIT 500`, filter.Category, string(filter.Status), filter.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []RetailProduct{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct fetches one retail product by id.
func (r *Repository) GetProduct(ctx context.Context, id string) (RetailProduct, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM retail_products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RetailProduct{}, shared.ErrNotFound
		}
		return RetailProduct{}, err
	}
	return p, nil
}

// CreateProduct inserts a new retail product.
func (r *Repository) CreateProduct(ctx context.Context, p RetailProduct) (RetailProduct, error) {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO retail_products (id, name, description, category, sku, barcode,
selling_price, purchase_price, profit_margin, stock, min_stock, supplier, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)`,
		p.ID, p.Name, p.Description, p.Category, p.SKU, p.Barcode,
		p.SellingPrice, p.PurchasePrice, p.ProfitMargin, p.Stock, p.MinStock, p.Supplier, string(p.Status), now)
	if err != nil {
		if isUniqueViolation(err) {
			return RetailProduct{}, ErrSKUExists
		}
		return RetailProduct{}, err
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// UpdateProduct overwrites the mutable fields of a retail product.
func (r *Repository) UpdateProduct(ctx context.Context, p RetailProduct) (RetailProduct, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE retail_products SET name=$2, description=$3, category=$4, sku=$5, barcode=$6,
selling_price=$7, purchase_price=$8, profit_margin=$9, stock=$10, min_stock=$11, supplier=$12, status=$13, updated_at=NOW()
WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Category, p.SKU, p.Barcode,
		p.SellingPrice, p.PurchasePrice, p.ProfitMargin, p.Stock, p.MinStock, p.Supplier, string(p.Status))
	if err != nil {
		if isUniqueViolation(err) {
			return RetailProduct{}, ErrSKUExists
		}
		return RetailProduct{}, err
	}
	if tag.RowsAffected() == 0 {
		return RetailProduct{}, shared.ErrNotFound
	}
	return r.GetProduct(ctx, p.ID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
