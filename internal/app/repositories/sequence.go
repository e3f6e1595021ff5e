package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Advisory lock keys serializing id assignment per table
const (
	teacherIDLockKey int64 = 0x7463610001
	courseIDLockKey  int64 = 0x7463610002
)

// nextID returns max(id)+1 for table, or first when the table is empty. It takes a
// transaction-scoped advisory lock so concurrent inserts cannot read the same max.
func nextID(ctx context.Context, tx pgx.Tx, sb squirrel.StatementBuilderType, table string, lockKey, first int64) (int64, error) {
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		return 0, fmt.Errorf("failed to lock %s id sequence: %w", table, err)
	}

	query, args, err := sb.Select("MAX(id)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build next id query: %w", err)
	}

	var maxID *int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to read max %s id: %w", table, err)
	}

	if maxID == nil {
		return first, nil
	}
	return *maxID + 1, nil
}
