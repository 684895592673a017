package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// orderClause arma el ORDER BY a partir de columna (ya validada contra la
// whitelist del caso de uso) y dirección asc/desc.
func orderClause(sortBy, sortOrder string) string {
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return sortBy + " " + dir
}

// nullIfEmpty convierte "" en NULL para columnas opcionales con constraint único parcial.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// strOrEmpty deref de *string devolviendo "" si es nil (columnas nullable).
func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
