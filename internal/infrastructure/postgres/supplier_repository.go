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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, nit, name, contact_name, email, phone, address, status,
	created_by, created_at, updated_by, updated_at, deleted_by, deleted_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor. El NIT es único.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, nit, name, contact_name, email, phone, address, status, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.NIT, supplier.Name, supplier.ContactName, supplier.Email,
		supplier.Phone, supplier.Address, supplier.Status,
		supplier.CreatedBy, supplier.CreatedAt, supplier.UpdatedBy, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string, includeDeleted bool) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get supplier")
}

// GetByNIT obtiene un proveedor (no eliminado) por NIT.
func (r *SupplierRepo) GetByNIT(ctx context.Context, nit string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE nit = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, nit), "get supplier by nit")
}

// Update actualiza un proveedor existente.
func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET nit = $2, name = $3, contact_name = $4, email = $5, phone = $6, address = $7, status = $8,
		    updated_by = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.NIT, supplier.Name, supplier.ContactName, supplier.Email,
		supplier.Phone, supplier.Address, supplier.Status, supplier.UpdatedBy, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista proveedores con filtros y paginación.
func (r *SupplierRepo) List(ctx context.Context, f repository.SupplierFilter) ([]*entity.Supplier, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if !f.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR nit ILIKE $%d OR contact_name ILIKE $%d)", len(args), len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM suppliers WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM suppliers WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		supplierColumns, cond, orderClause(f.SortBy, f.SortOrder), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, total, rows.Err()
}

// SoftDelete marca el proveedor como eliminado lógicamente.
func (r *SupplierRepo) SoftDelete(ctx context.Context, id, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE suppliers SET deleted_by = $2, deleted_at = now(), updated_by = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id, by,
	)
	if err != nil {
		return fmt.Errorf("soft delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore revierte el borrado lógico.
func (r *SupplierRepo) Restore(ctx context.Context, id, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE suppliers SET deleted_by = NULL, deleted_at = NULL, updated_by = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NOT NULL`,
		id, by,
	)
	if err != nil {
		return fmt.Errorf("restore supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina definitivamente el proveedor.
func (r *SupplierRepo) HardDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) scanOne(row pgx.Row, op string) (*entity.Supplier, error) {
	s, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	var deletedBy *string
	err := row.Scan(
		&s.ID, &s.NIT, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.Status,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedBy, &s.UpdatedAt, &deletedBy, &s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	s.DeletedBy = strOrEmpty(deletedBy)
	return &s, nil
}
