package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameroomdev/tictactoe/internal/apperror"
	"github.com/gameroomdev/tictactoe/internal/session"
	"github.com/gameroomdev/tictactoe/testing/suite"
)

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a fresh hard-mode session
	sess, err := session.New("123", session.ModeHard, nil)
	require.NoError(t, err)

	// When: CreateOrUpdate is called
	err = sessionRepo.CreateOrUpdate(ctx, sess)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a stored session with some progress on the board
		sess, err := session.New("123", session.ModeEasy, nil)
		require.NoError(t, err)
		require.NoError(t, sess.SelectCell(5))

		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, sess))

		// When: GetByID is called with the existing ID
		retrieved, err := sessionRepo.GetByID(ctx, sess.ID)

		// Then: the retrieved session matches what was saved
		require.NoError(t, err)
		require.Equal(t, sess.ID, retrieved.ID)
		require.Equal(t, sess.State, retrieved.State)
		require.Equal(t, sess.Board, retrieved.Board)
		assert.Equal(t, sess.Scoreboard, retrieved.Scoreboard)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a stored session
	sess, err := session.New("123", session.ModeTwoPlayer, nil)
	require.NoError(t, err)
	require.NoError(t, sessionRepo.CreateOrUpdate(ctx, sess))

	// When: DeleteByID is called
	err = sessionRepo.DeleteByID(ctx, sess.ID)

	// Then: the session is gone
	require.NoError(t, err)

	_, err = sessionRepo.GetByID(ctx, sess.ID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
