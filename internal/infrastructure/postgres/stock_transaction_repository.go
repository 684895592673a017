package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del libro de movimientos de stock sobre
// PostgreSQL. La tabla es de solo inserción: no hay UPDATE ni DELETE.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador del libro de movimientos.
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create inserta una entrada en el libro.
func (r *StockTransactionRepo) Create(ctx context.Context, tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, product_id, type, quantity, unit_cost, reference, note, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.ProductID, tx.Type, tx.Quantity, tx.UnitCost,
		nullIfEmpty(tx.Reference), tx.Note, tx.Date, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// List devuelve entradas del libro con filtros por producto, tipo y rango de fechas.
func (r *StockTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.StockTransaction, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_transactions WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock transactions: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, product_id, type, quantity, unit_cost, reference, note, date, created_at, created_by
		FROM stock_transactions
		WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		cond, orderClause(f.SortBy, f.SortOrder), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	var txs []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		var reference *string
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.Type, &t.Quantity, &t.UnitCost,
			&reference, &t.Note, &t.Date, &t.CreatedAt, &t.CreatedBy,
		); err != nil {
			return nil, 0, fmt.Errorf("scan stock transaction: %w", err)
		}
		t.Reference = strOrEmpty(reference)
		txs = append(txs, &t)
	}
	return txs, total, rows.Err()
}
