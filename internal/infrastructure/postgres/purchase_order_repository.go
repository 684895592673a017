package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, number, supplier_id, status, expected_date, notes, total_cost,
	created_by, created_at, updated_by, updated_at, deleted_by, deleted_at`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL (usable con pool o tx). Los renglones viven en purchase_order_items.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia de órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la cabecera y los renglones de una orden nueva.
func (r *PurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, number, supplier_id, status, expected_date, notes, total_cost, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Number, order.SupplierID, order.Status, order.ExpectedDate,
		order.Notes, order.TotalCost, order.CreatedBy, order.CreatedAt, order.UpdatedBy, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return r.insertItems(ctx, order.ID, order.Items)
}

// GetByID obtiene una orden con sus renglones.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string, includeDeleted bool) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	order, err := r.scanHeader(r.q.QueryRow(ctx, query, id), "get purchase order")
	if err != nil || order == nil {
		return order, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para serializar
// recepciones concurrentes de la misma orden. Solo tiene sentido dentro de tx.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	order, err := r.scanHeader(r.q.QueryRow(ctx, query, id), "get purchase order for update")
	if err != nil || order == nil {
		return order, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List lista órdenes (con renglones) filtradas por proveedor, estado y búsqueda por número.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.PurchaseOrder, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if !f.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where = append(where, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("number ILIKE $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM purchase_orders WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM purchase_orders WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		orderColumns, cond, orderClause(f.SortBy, f.SortOrder), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

// UpdateHeader actualiza la cabecera y reemplaza los renglones (solo órdenes DRAFT).
func (r *PurchaseOrderRepo) UpdateHeader(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET supplier_id = $2, expected_date = $3, notes = $4, total_cost = $5, updated_by = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		order.ID, order.SupplierID, order.ExpectedDate, order.Notes, order.TotalCost,
		order.UpdatedBy, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete purchase order items: %w", err)
	}
	return r.insertItems(ctx, order.ID, order.Items)
}

// UpdateStatus cambia el estado de la orden. La validación de transición es del caso de uso.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id, status, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, updated_by = $3, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id, status, by,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemReceived fija la cantidad recibida acumulada de un renglón.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, received decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`,
		itemID, received,
	)
	if err != nil {
		return fmt.Errorf("update purchase order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la orden como eliminada lógicamente.
func (r *PurchaseOrderRepo) SoftDelete(ctx context.Context, id, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET deleted_by = $2, deleted_at = now(), updated_by = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id, by,
	)
	if err != nil {
		return fmt.Errorf("soft delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore revierte el borrado lógico.
func (r *PurchaseOrderRepo) Restore(ctx context.Context, id, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET deleted_by = NULL, deleted_at = NULL, updated_by = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NOT NULL`,
		id, by,
	)
	if err != nil {
		return fmt.Errorf("restore purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina definitivamente la orden y sus renglones.
func (r *PurchaseOrderRepo) HardDelete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("hard delete purchase order items: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) insertItems(ctx context.Context, orderID string, items []entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, order_id, product_id, quantity_ordered, quantity_received, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, orderID, it.ProductID, it.QuantityOrdered, it.QuantityReceived, it.UnitCost, it.TotalCost,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, order *entity.PurchaseOrder) error {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, product_id, quantity_ordered, quantity_received, unit_cost, total_cost
		 FROM purchase_order_items WHERE order_id = $1 ORDER BY id`,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("load purchase order items: %w", err)
	}
	defer rows.Close()

	order.Items = order.Items[:0]
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.QuantityOrdered, &it.QuantityReceived, &it.UnitCost, &it.TotalCost,
		); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		order.Items = append(order.Items, it)
	}
	return rows.Err()
}

func (r *PurchaseOrderRepo) scanHeader(row pgx.Row, op string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var deletedBy *string
	err := row.Scan(
		&o.ID, &o.Number, &o.SupplierID, &o.Status, &o.ExpectedDate, &o.Notes, &o.TotalCost,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedBy, &o.UpdatedAt, &deletedBy, &o.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	o.DeletedBy = strOrEmpty(deletedBy)
	return &o, nil
}
