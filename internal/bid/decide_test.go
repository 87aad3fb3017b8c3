// Taseroncum | 2026
// decide_test.go

package bid_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/taseroncum/api/internal/bid"
	"github.com/taseroncum/api/internal/core"
	"github.com/taseroncum/api/internal/job"
)

// recordingConn is a single-connection sql driver that records every
// statement inside a transaction and reports configurable row counts,
// enough to drive the decide transaction end to end.
type recordingConn struct {
	statements []string
	rowsFor    func(query string) int64
	committed  bool
	rolledBack bool
}

type recordingConnector struct {
	conn *recordingConn
}

func (c *recordingConnector) Connect(context.Context) (driver.Conn, error) {
	return c.conn, nil
}

func (c *recordingConnector) Driver() driver.Driver { return nil }

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	return &recordingStmt{conn: c, query: query}, nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) { return c, nil }

func (c *recordingConn) Commit() error {
	c.committed = true
	return nil
}

func (c *recordingConn) Rollback() error {
	c.rolledBack = true
	return nil
}

func (c *recordingConn) exec(query string) (driver.Result, error) {
	c.statements = append(c.statements, query)
	rows := int64(1)
	if c.rowsFor != nil {
		rows = c.rowsFor(query)
	}
	return driver.RowsAffected(rows), nil
}

func (c *recordingConn) statementContaining(fragment string) bool {
	for _, stmt := range c.statements {
		if strings.Contains(stmt, fragment) {
			return true
		}
	}
	return false
}

type recordingStmt struct {
	conn  *recordingConn
	query string
}

func (s *recordingStmt) Close() error { return nil }

func (s *recordingStmt) NumInput() int { return -1 }

func (s *recordingStmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.conn.exec(s.query)
}

func (s *recordingStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, driver.ErrSkip
}

func newRecordingDB(conn *recordingConn) *sqlx.DB {
	return sqlx.NewDb(sql.OpenDB(&recordingConnector{conn: conn}), "postgres")
}

func TestDecideTransaction(t *testing.T) {
	ctx := context.Background()

	setup := func(conn *recordingConn) *bid.Service {
		repo := newMockBidRepository(
			pendingBid("bid-1", "job-1", bidderIdentity.UserID))
		jobs := newMockJobRepository(openPost("job-1"))
		return bid.NewService(newRecordingDB(conn), repo, jobs, nil)
	}

	t.Run("accepting also closes the job", func(t *testing.T) {
		conn := &recordingConn{}
		svc := setup(conn)

		b, err := svc.Decide(ctx, ownerIdentity, "bid-1", bid.StatusAccepted)
		require.NoError(t, err)
		require.NotNil(t, b)

		require.True(t, conn.statementContaining("UPDATE bids"))
		require.True(t, conn.statementContaining("UPDATE job_posts"))
		require.True(t, conn.committed)
		require.False(t, conn.rolledBack)
	})

	t.Run("rejecting leaves the job open", func(t *testing.T) {
		conn := &recordingConn{}
		svc := setup(conn)

		_, err := svc.Decide(ctx, ownerIdentity, "bid-1", bid.StatusRejected)
		require.NoError(t, err)

		require.True(t, conn.statementContaining("UPDATE bids"))
		require.False(t, conn.statementContaining("UPDATE job_posts"))
		require.True(t, conn.committed)
	})

	t.Run("already decided bid rolls back", func(t *testing.T) {
		conn := &recordingConn{
			rowsFor: func(query string) int64 {
				if strings.Contains(query, "UPDATE bids") {
					return 0
				}
				return 1
			},
		}
		svc := setup(conn)

		_, err := svc.Decide(ctx, ownerIdentity, "bid-1", bid.StatusAccepted)
		require.ErrorIs(t, err, core.ErrInvalidState)

		require.False(t, conn.statementContaining("UPDATE job_posts"))
		require.True(t, conn.rolledBack)
		require.False(t, conn.committed)
	})

	t.Run("losing the race after a concurrent accept", func(t *testing.T) {
		// The job may already be CLOSED by the time a second decision
		// lands; the bid row guard alone must stop it.
		conn := &recordingConn{
			rowsFor: func(query string) int64 {
				if strings.Contains(query, "UPDATE bids") {
					return 0
				}
				return 1
			},
		}

		repo := newMockBidRepository(
			pendingBid("bid-2", "job-1", "taseron-2"))
		closed := openPost("job-1")
		closed.Status = job.StatusClosed
		jobs := newMockJobRepository(closed)
		svc := bid.NewService(newRecordingDB(conn), repo, jobs, nil)

		_, err := svc.Decide(ctx, ownerIdentity, "bid-2", bid.StatusAccepted)
		require.ErrorIs(t, err, core.ErrInvalidState)
		require.True(t, conn.rolledBack)
	})
}
