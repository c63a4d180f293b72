package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// isUniqueViolation checks for a Postgres unique violation (23505) from both pgconn and lib/pq drivers
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}

// mapError translates driver errors into apperrors sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case isUniqueViolation(err):
		return apperrors.ErrConflict
	}
	return err
}

// softDeleteByIDs soft-deletes rows of model by primary key; an empty id list is a no-op.
func softDeleteByIDs(db *gorm.DB, model interface{}, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id IN ?", ids).Delete(model).Error
}

// restoreByIDs clears the soft-delete marker of rows of model by primary key.
func restoreByIDs(db *gorm.DB, model interface{}, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Unscoped().Model(model).Where("id IN ?", ids).Update("deleted_at", nil).Error
}
