// Taseroncum | 2026
// dto_test.go

package job_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taseroncum/api/internal/job"
)

func TestListJobsParamsNormalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		params := job.ListJobsParams{}
		params.Normalize()

		require.Equal(t, 1, params.Page)
		require.Equal(t, 20, params.PageSize)
		require.Equal(t, job.SortNewest, params.Sort)
	})

	t.Run("page size capped", func(t *testing.T) {
		params := job.ListJobsParams{Page: 3, PageSize: 500}
		params.Normalize()

		require.Equal(t, 100, params.PageSize)
		require.Equal(t, 200, params.Offset())
	})

	t.Run("unknown sort falls back to newest", func(t *testing.T) {
		params := job.ListJobsParams{Sort: "views_desc"}
		params.Normalize()

		require.Equal(t, job.SortNewest, params.Sort)
	})

	t.Run("valid sort preserved", func(t *testing.T) {
		params := job.ListJobsParams{Sort: job.SortBudgetHigh}
		params.Normalize()

		require.Equal(t, job.SortBudgetHigh, params.Sort)
	})
}

func TestValidCategory(t *testing.T) {
	require.True(t, job.ValidCategory("KABA_INSAAT"))
	require.True(t, job.ValidCategory("PEYZAJ"))
	require.False(t, job.ValidCategory("kaba_insaat"))
	require.False(t, job.ValidCategory("UZAY_INSAAT"))
}
