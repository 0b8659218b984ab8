package repository

import (
	"errors"
	"strings"

	repo "littlelemon/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQLのエラーコード
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DBドライバのエラーを repository のエラーに変換する
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return repo.ErrReferenced
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repo.ErrDuplicate
		case pgForeignKeyViolation:
			return repo.ErrReferenced
		}
	}

	// SQLite（TranslateErrorが変換しないもの）
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return repo.ErrDuplicate
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return repo.ErrReferenced
	}
	return err
}
