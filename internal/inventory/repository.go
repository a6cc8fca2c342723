package inventory

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

// Repository persists inventory items in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const itemColumns = `id, outlet_id, name, description, category, sku, barcode, quantity, unit, min_stock, max_stock,
purchase_price, selling_price, location, condition, notes, last_restocked, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.OutletID, &item.Name, &item.Description, &item.Category, &item.SKU, &item.Barcode,
		&item.Quantity, &item.Unit, &item.MinStock, &item.MaxStock,
		&item.PurchasePrice, &item.SellingPrice, &item.Location, &item.Condition, &item.Notes,
		&item.LastRestocked, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

// List returns items matching the filter, name ascending.
func (r *Repository) List(ctx context.Context, filter Filter, page shared.Pagination) ([]Item, int, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+`, COUNT(*) OVER() AS total
FROM inventory_items
WHERE ($1 = '' OR outlet_id = $1)
  AND ($2 = '' OR category = $2)
  AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR sku ILIKE '%' || $3 || '%')
  AND (NOT $4 OR quantity <= min_stock)
ORDER BY name ASC
LIMIT $5 OFFSET $6`,
		filter.OutletID, filter.Category, filter.Search, filter.LowStock, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []Item{}
	total := 0
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OutletID, &item.Name, &item.Description, &item.Category, &item.SKU, &item.Barcode,
			&item.Quantity, &item.Unit, &item.MinStock, &item.MaxStock,
			&item.PurchasePrice, &item.SellingPrice, &item.Location, &item.Condition, &item.Notes,
			&item.LastRestocked, &item.CreatedAt, &item.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// Get fetches one item by id.
func (r *Repository) Get(ctx context.Context, id string) (Item, error) {
	item, err := scanItem(r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, shared.ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

// Create inserts a new item.
func (r *Repository) Create(ctx context.Context, item Item) (Item, error) {
	item.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO inventory_items (id, outlet_id, name, description, category, sku, barcode,
quantity, unit, min_stock, max_stock, purchase_price, selling_price, location, condition, notes, last_restocked, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$18)`,
		item.ID, item.OutletID, item.Name, item.Description, item.Category, item.SKU, item.Barcode,
		item.Quantity, item.Unit, item.MinStock, item.MaxStock,
		item.PurchasePrice, item.SellingPrice, item.Location, string(item.Condition), item.Notes, item.LastRestocked, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Item{}, ErrSKUExists
		}
		return Item{}, err
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	return item, nil
}

// Update overwrites the mutable fields of an item.
func (r *Repository) Update(ctx context.Context, item Item) (Item, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE inventory_items SET name=$2, description=$3, category=$4, sku=$5, barcode=$6,
quantity=$7, unit=$8, min_stock=$9, max_stock=$10, purchase_price=$11, selling_price=$12, location=$13,
condition=$14, notes=$15, updated_at=NOW()
WHERE id=$1`,
		item.ID, item.Name, item.Description, item.Category, item.SKU, item.Barcode,
		item.Quantity, item.Unit, item.MinStock, item.MaxStock, item.PurchasePrice, item.SellingPrice, item.Location,
		string(item.Condition), item.Notes)
	if err != nil {
		if isUniqueViolation(err) {
			return Item{}, ErrSKUExists
		}
		return Item{}, err
	}
	if tag.RowsAffected() == 0 {
		return Item{}, shared.ErrNotFound
	}
	return r.Get(ctx, item.ID)
}

// SetQuantity adjusts the stock level and stamps last_restocked when the
// quantity went up.
func (r *Repository) SetQuantity(ctx context.Context, id string, quantity float64, restocked bool) (Item, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE inventory_items SET quantity=$2,
last_restocked = CASE WHEN $3 THEN NOW() ELSE last_restocked END,
updated_at=NOW()
WHERE id=$1`, id, quantity, restocked)
	if err != nil {
		return Item{}, err
	}
	if tag.RowsAffected() == 0 {
		return Item{}, shared.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes an item.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListLowStock returns items at or below their minimum, optionally per outlet.
func (r *Repository) ListLowStock(ctx context.Context, outletID string) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+`
FROM inventory_items
WHERE quantity <= min_stock
  AND ($1 = '' OR outlet_id = $1)
ORDER BY quantity / GREATEST(min_stock, 1) ASC
LIMIT 200`, outletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
