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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, parent_id, name, description, status,
	created_by, created_at, updated_by, updated_at, deleted_by, deleted_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. El nombre es único.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, parent_id, name, description, status, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		category.ID, nullIfEmpty(category.ParentID), category.Name, category.Description,
		category.Status, category.CreatedBy, category.CreatedAt, category.UpdatedBy, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string, includeDeleted bool) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get category")
}

// GetByName obtiene una categoría (no eliminada) por nombre, insensible a mayúsculas.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE lower(name) = lower($1) AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, name), "get category by name")
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories
		SET parent_id = $2, name = $3, description = $4, status = $5, updated_by = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		category.ID, nullIfEmpty(category.ParentID), category.Name, category.Description,
		category.Status, category.UpdatedBy, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista categorías con filtros y paginación.
func (r *CategoryRepo) List(ctx context.Context, f repository.CategoryFilter) ([]*entity.Category, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if !f.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if f.ParentID != "" {
		args = append(args, f.ParentID)
		where = append(where, fmt.Sprintf("parent_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM categories WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		categoryColumns, cond, orderClause(f.SortBy, f.SortOrder), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

// SoftDelete marca la categoría como eliminada lógicamente.
func (r *CategoryRepo) SoftDelete(ctx context.Context, id, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET deleted_by = $2, deleted_at = now(), updated_by = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id, by,
	)
	if err != nil {
		return fmt.Errorf("soft delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore revierte el borrado lógico.
func (r *CategoryRepo) Restore(ctx context.Context, id, by string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET deleted_by = NULL, deleted_at = NULL, updated_by = $2, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NOT NULL`,
		id, by,
	)
	if err != nil {
		return fmt.Errorf("restore category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina definitivamente la categoría.
func (r *CategoryRepo) HardDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row, op string) (*entity.Category, error) {
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var parentID, deletedBy *string
	err := row.Scan(
		&c.ID, &parentID, &c.Name, &c.Description, &c.Status,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedBy, &c.UpdatedAt, &deletedBy, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ParentID = strOrEmpty(parentID)
	c.DeletedBy = strOrEmpty(deletedBy)
	return &c, nil
}
