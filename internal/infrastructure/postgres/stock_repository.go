package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia de stock.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get devuelve los niveles de un producto; si no hay fila devuelve ceros.
func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx,
		`SELECT product_id, available, reserved, total, reorder_point, updated_at
		 FROM stock WHERE product_id = $1`,
		productID,
	).Scan(&s.ProductID, &s.Available, &s.Reserved, &s.Total, &s.ReorderPoint, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{
				ProductID:    productID,
				Available:    decimal.Zero,
				Reserved:     decimal.Zero,
				Total:        decimal.Zero,
				ReorderPoint: decimal.Zero,
				UpdatedAt:    time.Time{},
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Ensure crea la fila de stock en ceros si no existe. Idempotente.
func (r *StockRepo) Ensure(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock (product_id, available, reserved, total, reorder_point, updated_at)
		 VALUES ($1, 0, 0, 0, 0, now())
		 ON CONFLICT (product_id) DO NOTHING`,
		productID,
	)
	if err != nil {
		return fmt.Errorf("ensure stock row: %w", err)
	}
	return nil
}

// ApplyDelta suma los deltas a disponible/reservado/total en un solo UPDATE
// condicional. Las guardas de no-negatividad van en el WHERE: si alguna falla
// no se modifica la fila y se devuelve ErrInsufficientStock.
func (r *StockRepo) ApplyDelta(ctx context.Context, productID string, dAvailable, dReserved decimal.Decimal) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx,
		`UPDATE stock
		 SET available = available + $2,
		     reserved  = reserved + $3,
		     total     = total + $2 + $3,
		     updated_at = now()
		 WHERE product_id = $1
		   AND available + $2 >= 0
		   AND reserved + $3 >= 0
		 RETURNING product_id, available, reserved, total, reorder_point, updated_at`,
		productID, dAvailable, dReserved,
	).Scan(&s.ProductID, &s.Available, &s.Reserved, &s.Total, &s.ReorderPoint, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// La fila no existe o alguna guarda falló: stock insuficiente
			return nil, domain.ErrInsufficientStock
		}
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}
	return &s, nil
}

// SetReorderPoint fija el punto de reorden del producto.
func (r *StockRepo) SetReorderPoint(ctx context.Context, productID string, point decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock SET reorder_point = $2, updated_at = now() WHERE product_id = $1`,
		productID, point,
	)
	if err != nil {
		return fmt.Errorf("set reorder point: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el stock con datos del producto unidos y paginación.
func (r *StockRepo) List(ctx context.Context, f repository.StockFilter) ([]repository.StockItem, int, error) {
	where := []string{"p.deleted_at IS NULL"}
	args := []any{}
	if f.BelowReorder {
		where = append(where, "s.reorder_point > 0 AND s.available < s.reorder_point")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT count(*) FROM stock s JOIN products p ON p.id = s.product_id WHERE ` + cond
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT s.product_id, s.available, s.reserved, s.total, s.reorder_point, s.updated_at, p.sku, p.name
		FROM stock s JOIN products p ON p.id = s.product_id
		WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		cond, orderClause("s."+f.SortBy, f.SortOrder), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var items []repository.StockItem
	for rows.Next() {
		var it repository.StockItem
		if err := rows.Scan(
			&it.Stock.ProductID, &it.Stock.Available, &it.Stock.Reserved, &it.Stock.Total,
			&it.Stock.ReorderPoint, &it.Stock.UpdatedAt, &it.SKU, &it.ProductName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan stock: %w", err)
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

// ListBelowReorder devuelve los productos activos bajo punto de reorden,
// el de mayor déficit primero.
func (r *StockRepo) ListBelowReorder(ctx context.Context) ([]repository.LowStockItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.product_id, p.sku, p.name, s.available, s.reorder_point, p.cost
		FROM stock s JOIN products p ON p.id = s.product_id
		WHERE p.deleted_at IS NULL AND p.status = 'active'
		  AND s.reorder_point > 0 AND s.available < s.reorder_point
		ORDER BY (s.reorder_point - s.available) DESC`)
	if err != nil {
		return nil, fmt.Errorf("list below reorder: %w", err)
	}
	defer rows.Close()

	var items []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.Available, &it.ReorderPoint, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
