package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/policy"
	"github.com/anonto42/newsroom-social/backend/internal/testutil"
)

func TestReportContent_Validation(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewReportRepository(db)
	u := testutil.CreateUser(t, db, "reporter")

	tests := []struct {
		name        string
		contentType string
		contentID   int64
		reason      string
		want        error
	}{
		{"empty reason", models.ContentComment, 1, "  ", ErrEmptyReason},
		{"bad type", "video", 1, "spam", ErrInvalidContentType},
		{"zero id", models.ContentNews, 0, "spam", ErrInvalidContentID},
		{"negative id", models.ContentNews, -4, "spam", ErrInvalidContentID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.ReportContent(ctx, u.ID, tt.contentType, tt.contentID, tt.reason)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var n int64
	require.NoError(t, db.Model(&models.Report{}).Count(&n).Error)
	assert.Zero(t, n, "nothing written for invalid reports")
}

func TestReports_ListResolveDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewReportRepository(db)
	reporter := testutil.CreateUser(t, db, "reporter")
	other := testutil.CreateUser(t, db, "other")

	first, err := repo.ReportContent(ctx, reporter.ID, models.ContentSharedArticle, 3, "spam link")
	require.NoError(t, err)
	second, err := repo.ReportContent(ctx, reporter.ID, models.ContentComment, 9, "offensive")
	require.NoError(t, err)

	all, err := repo.GetReports(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].ID)

	ok, err := repo.ResolveReport(ctx, first, true)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.ResolveReport(ctx, 404, true)
	require.NoError(t, err)
	assert.False(t, ok)

	resolved := true
	list, err := repo.GetReports(ctx, &resolved)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first, list[0].ID)

	res, err := repo.DeleteReport(ctx, second, policy.Actor{ID: other.ID})
	require.NoError(t, err)
	assert.Equal(t, models.DeleteForbidden, res)
	res, err = repo.DeleteReport(ctx, second, policy.Actor{ID: reporter.ID})
	require.NoError(t, err)
	assert.Equal(t, models.Deleted, res)
	res, err = repo.DeleteReport(ctx, second, policy.Actor{ID: reporter.ID})
	require.NoError(t, err)
	assert.Equal(t, models.DeleteNotFound, res)
}
