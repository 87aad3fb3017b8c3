// Taseroncum | 2026
// repository_test.go

package job_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/taseroncum/api/internal/job"
)

// capturingDBTX records every statement handed to the repository so
// tests can assert on the generated SQL without a database.
type capturingDBTX struct {
	queries []string
	args    [][]any
}

func (c *capturingDBTX) record(query string, args []any) {
	c.queries = append(c.queries, query)
	c.args = append(c.args, args)
}

func (c *capturingDBTX) DriverName() string { return "postgres" }

func (c *capturingDBTX) Rebind(query string) string { return query }

func (c *capturingDBTX) BindNamed(
	query string,
	arg any,
) (string, []any, error) {
	return query, nil, nil
}

func (c *capturingDBTX) QueryContext(
	ctx context.Context,
	query string,
	args ...any,
) (*sql.Rows, error) {
	c.record(query, args)
	return nil, errors.New("not implemented")
}

func (c *capturingDBTX) QueryxContext(
	ctx context.Context,
	query string,
	args ...any,
) (*sqlx.Rows, error) {
	c.record(query, args)
	return nil, errors.New("not implemented")
}

func (c *capturingDBTX) QueryRowxContext(
	ctx context.Context,
	query string,
	args ...any,
) *sqlx.Row {
	c.record(query, args)
	return nil
}

func (c *capturingDBTX) ExecContext(
	ctx context.Context,
	query string,
	args ...any,
) (sql.Result, error) {
	c.record(query, args)
	return driver.RowsAffected(1), nil
}

func (c *capturingDBTX) GetContext(
	ctx context.Context,
	dest any,
	query string,
	args ...any,
) error {
	c.record(query, args)
	return nil
}

func (c *capturingDBTX) SelectContext(
	ctx context.Context,
	dest any,
	query string,
	args ...any,
) error {
	c.record(query, args)
	return nil
}

func TestListApprovedBudgetFilter(t *testing.T) {
	ctx := context.Background()

	t.Run("range must sit inside the filter bounds", func(t *testing.T) {
		db := &capturingDBTX{}
		repo := job.NewRepository(db)

		budgetMin, budgetMax := 1000.0, 3000.0
		_, _, err := repo.ListApproved(ctx, job.ListJobsParams{
			BudgetMin: &budgetMin,
			BudgetMax: &budgetMax,
		})
		require.NoError(t, err)
		require.NotEmpty(t, db.queries)

		// A post budgeted [500, 2000] must not match min=1000: the
		// filter compares the post's own bounds, not any overlap.
		countQuery := db.queries[0]
		require.Contains(t, countQuery, "budget_min >= $1")
		require.Contains(t, countQuery, "budget_max <= $2")
		require.NotContains(t, countQuery, "budget_max >= $1")
		require.NotContains(t, countQuery, "budget_min <= $2")
		require.Equal(t, []any{budgetMin, budgetMax}, db.args[0])
	})

	t.Run("min-only filter compares the lower bound", func(t *testing.T) {
		db := &capturingDBTX{}
		repo := job.NewRepository(db)

		budgetMin := 1000.0
		_, _, err := repo.ListApproved(ctx, job.ListJobsParams{
			BudgetMin: &budgetMin,
		})
		require.NoError(t, err)
		require.NotEmpty(t, db.queries)
		require.Contains(t, db.queries[0], "budget_min >= $1")
	})
}
