package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

func TestSubmit(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()
	actor := &identity.Identity{UID: "u1"}

	t.Run("requires an identity", func(t *testing.T) {
		_, err := svc.Submit(ctx, nil, SubmitReportRequest{PostID: "p1", Reason: "spam"})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHENTICATED", err.(*common.APIError).Code)
	})

	t.Run("files a pending report", func(t *testing.T) {
		submitted, err := svc.Submit(ctx, actor, SubmitReportRequest{PostID: "p1", Reason: "spam"})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, submitted.Status)
		assert.Equal(t, "u1", submitted.ReporterID)
	})

	t.Run("repeat submissions file separate reports", func(t *testing.T) {
		_, err := svc.Submit(ctx, actor, SubmitReportRequest{PostID: "p1", Reason: "spam"})
		require.NoError(t, err)
		docs, err := mem.Query(ctx, store.CollectionReports, store.Query{})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestUpdateStatus(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, &identity.Identity{UID: "u1"}, SubmitReportRequest{PostID: "p1", Reason: "spam"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, submitted.ID, StatusResolved))

	docs, err := mem.Query(ctx, store.CollectionReports, store.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "resolved", docs[0].Data.String("status"))

	t.Run("unknown report propagates a remote error", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, "missing", StatusDismissed)
		require.Error(t, err)
		assert.Equal(t, "REMOTE_OPERATION_FAILED", err.(*common.APIError).Code)
	})
}
