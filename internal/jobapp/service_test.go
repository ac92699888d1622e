package jobapp

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

func applicant(uid string) *identity.Identity {
	return &identity.Identity{UID: uid}
}

func TestApply(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	t.Run("requires an identity", func(t *testing.T) {
		_, err := svc.Apply(ctx, nil, ApplyRequest{PostID: "job-1"})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHENTICATED", err.(*common.APIError).Code)
	})

	t.Run("creates a submitted application", func(t *testing.T) {
		app, err := svc.Apply(ctx, applicant("u1"), ApplyRequest{
			PostID:      "job-1",
			ResumeText:  "5 years of backend work",
			CoverLetter: "Hello!",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusSubmitted, app.Status)
		assert.Equal(t, "u1", app.ApplicantID)
	})

	t.Run("applying twice files two applications", func(t *testing.T) {
		_, err := svc.Apply(ctx, applicant("u1"), ApplyRequest{PostID: "job-1"})
		require.NoError(t, err)
		apps, err := svc.ForPost(ctx, "job-1")
		require.NoError(t, err)
		assert.Len(t, apps, 2)
	})
}

func TestUpdateStatus(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	app, err := svc.Apply(ctx, applicant("u1"), ApplyRequest{PostID: "job-1"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, app.ID, StatusInterview))

	apps, err := svc.ForPost(ctx, "job-1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, StatusInterview, apps[0].Status)

	t.Run("unknown application propagates a remote error", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, "missing", StatusHired)
		require.Error(t, err)
		assert.Equal(t, "REMOTE_OPERATION_FAILED", err.(*common.APIError).Code)
	})
}

func TestForPost_NewestFirst(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Apply(ctx, applicant("u1"), ApplyRequest{PostID: "job-1", CoverLetter: "first"})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, applicant("u2"), ApplyRequest{PostID: "job-1", CoverLetter: "second"})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, applicant("u3"), ApplyRequest{PostID: "job-2", CoverLetter: "elsewhere"})
	require.NoError(t, err)

	apps, err := svc.ForPost(ctx, "job-1")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "second", apps[0].CoverLetter)
	assert.Equal(t, "first", apps[1].CoverLetter)
}
