package repositories

import (
	"database/sql"
	"fmt"
)

// scanner объединяет *sql.Row и *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}
