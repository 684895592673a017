package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, barcode, name, description, category_id, price, cost, unit_measure, status,
	created_by, created_at, updated_by, updated_at, deleted_by, deleted_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. barcode vacío se guarda NULL (único parcial).
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, barcode, name, description, category_id, price, cost, unit_measure, status, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, nullIfEmpty(product.Barcode), product.Name, product.Description,
		nullIfEmpty(product.CategoryID), product.Price, product.Cost, product.UnitMeasure, product.Status,
		product.CreatedBy, product.CreatedAt, product.UpdatedBy, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. includeDeleted incluye soft-deleted.
func (r *ProductRepo) GetByID(ctx context.Context, id string, includeDeleted bool) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product")
}

// GetBySKU obtiene un producto (no eliminado) por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get product by sku")
}

// GetByBarcode obtiene un producto (no eliminado) por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, barcode), "get product by barcode")
}

// Update actualiza un producto existente. El SKU es inmutable.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET barcode = $2, name = $3, description = $4, category_id = $5, price = $6, cost = $7,
		    unit_measure = $8, status = $9, updated_by = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, nullIfEmpty(product.Barcode), product.Name, product.Description,
		nullIfEmpty(product.CategoryID), product.Price, product.Cost, product.UnitMeasure,
		product.Status, product.UpdatedBy, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtros, búsqueda y paginación. Devuelve también el total sin paginar.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if !f.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d OR barcode ILIKE $%d)", len(args), len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, cond, orderClause(f.SortBy, f.SortOrder), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// CountByCategory cuenta productos activos (no eliminados) de una categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE category_id = $1 AND deleted_at IS NULL`,
		categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// SoftDelete marca el producto como eliminado lógicamente.
func (r *ProductRepo) SoftDelete(ctx context.Context, id, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET deleted_by = $2, deleted_at = now(), updated_by = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id, by,
	)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore revierte el borrado lógico.
func (r *ProductRepo) Restore(ctx context.Context, id, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET deleted_by = NULL, deleted_at = NULL, updated_by = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NOT NULL`,
		id, by,
	)
	if err != nil {
		return fmt.Errorf("restore product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina definitivamente el producto.
func (r *ProductRepo) HardDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var barcode, categoryID, deletedBy *string
	err := row.Scan(
		&p.ID, &p.SKU, &barcode, &p.Name, &p.Description, &categoryID,
		&p.Price, &p.Cost, &p.UnitMeasure, &p.Status,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedBy, &p.UpdatedAt, &deletedBy, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Barcode = strOrEmpty(barcode)
	p.CategoryID = strOrEmpty(categoryID)
	p.DeletedBy = strOrEmpty(deletedBy)
	return &p, nil
}
