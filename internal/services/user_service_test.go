package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delulu-backend/internal/models"
)

func TestFindOrCreateByAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	// First sight creates the row with no optional fields.
	user, err := svc.FindOrCreateByAddress(&models.FindOrCreateUserRequest{
		WalletAddress: "0x00000000000000000000000000000000000000AA",
	})
	require.NoError(t, err)
	assert.Equal(t, testAddress, user.WalletAddress) // normalized to lowercase
	assert.Nil(t, user.XUsername)

	// Second call with extra identity fields returns the same row and
	// backfills the blanks.
	username := "delulu_dreamer"
	again, err := svc.FindOrCreateByAddress(&models.FindOrCreateUserRequest{
		WalletAddress: testAddress,
		XUsername:     &username,
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := svc.GetByAddress(testAddress)
	require.NoError(t, err)
	require.NotNil(t, stored.XUsername)
	assert.Equal(t, username, *stored.XUsername)

	// A populated field is never overwritten.
	other := "impostor"
	_, err = svc.FindOrCreateByAddress(&models.FindOrCreateUserRequest{
		WalletAddress: testAddress,
		XUsername:     &other,
	})
	require.NoError(t, err)

	stored, err = svc.GetByAddress(testAddress)
	require.NoError(t, err)
	assert.Equal(t, username, *stored.XUsername)
}

func TestFindOrCreateByAddressRejectsMalformed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	for _, bad := range []string{"", "0x123", "definitely-not-hex"} {
		_, err := svc.FindOrCreateByAddress(&models.FindOrCreateUserRequest{WalletAddress: bad})
		assert.ErrorIs(t, err, ErrInvalidAddress)
	}
}

func TestGetByAddressNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.GetByAddress(testAddress)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
