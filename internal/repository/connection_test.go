package repository

import (
	"context"
	"testing"

	"pickaside/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRepositoryDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()
	users := createTestUsers(t, db, 2)

	first := &models.Connection{
		RequesterID: users[0].ID,
		ReceiverID:  users[1].ID,
		Status:      models.ConnectionStatusPending,
	}
	require.NoError(t, repo.Create(ctx, first))

	// Same pair, opposite direction.
	second := &models.Connection{
		RequesterID: users[1].ID,
		ReceiverID:  users[0].ID,
		Status:      models.ConnectionStatusPending,
	}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestConnectionRepositoryGetBetweenUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()
	users := createTestUsers(t, db, 3)

	conn := &models.Connection{
		RequesterID: users[0].ID,
		ReceiverID:  users[1].ID,
		Status:      models.ConnectionStatusPending,
	}
	require.NoError(t, repo.Create(ctx, conn))

	found, err := repo.GetBetweenUsers(ctx, users[1].ID, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, conn.ID, found.ID)

	_, err = repo.GetBetweenUsers(ctx, users[0].ID, users[2].ID)
	assert.True(t, models.IsNotFound(err))
}

func TestConnectionRepositoryUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()
	users := createTestUsers(t, db, 2)

	conn := &models.Connection{
		RequesterID: users[0].ID,
		ReceiverID:  users[1].ID,
		Status:      models.ConnectionStatusPending,
	}
	require.NoError(t, repo.Create(ctx, conn))

	require.NoError(t, repo.UpdateStatus(ctx, conn.ID, models.ConnectionStatusAccepted))

	updated, err := repo.GetByID(ctx, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, updated.Status)
	assert.NotNil(t, updated.RespondedAt)

	err = repo.UpdateStatus(ctx, 999, models.ConnectionStatusDeclined)
	assert.True(t, models.IsNotFound(err))
}

func TestConnectionRepositoryGetConnectedUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()
	users := createTestUsers(t, db, 4)

	// users[0] is connected to users[1] (they requested) and users[2]
	// (users[0] requested). users[3] is only pending.
	accepted1 := &models.Connection{RequesterID: users[1].ID, ReceiverID: users[0].ID, Status: models.ConnectionStatusAccepted}
	accepted2 := &models.Connection{RequesterID: users[0].ID, ReceiverID: users[2].ID, Status: models.ConnectionStatusAccepted}
	pending := &models.Connection{RequesterID: users[0].ID, ReceiverID: users[3].ID, Status: models.ConnectionStatusPending}
	for _, c := range []*models.Connection{accepted1, accepted2, pending} {
		require.NoError(t, repo.Create(ctx, c))
	}

	connected, err := repo.GetConnectedUsers(ctx, users[0].ID)
	require.NoError(t, err)
	require.Len(t, connected, 2)

	ids := []uint{connected[0].ID, connected[1].ID}
	assert.ElementsMatch(t, []uint{users[1].ID, users[2].ID}, ids)
}

func TestConnectionRepositoryPendingLists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()
	users := createTestUsers(t, db, 3)

	received := &models.Connection{RequesterID: users[1].ID, ReceiverID: users[0].ID, Status: models.ConnectionStatusPending}
	sent := &models.Connection{RequesterID: users[0].ID, ReceiverID: users[2].ID, Status: models.ConnectionStatusPending}
	require.NoError(t, repo.Create(ctx, received))
	require.NoError(t, repo.Create(ctx, sent))

	pending, err := repo.GetPendingReceived(ctx, users[0].ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, users[1].ID, pending[0].RequesterID)
	assert.Equal(t, users[1].ID, pending[0].Requester.ID)

	outgoing, err := repo.GetPendingSent(ctx, users[0].ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, users[2].ID, outgoing[0].ReceiverID)
}
