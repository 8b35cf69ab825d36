package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameroomdev/tictactoe/internal/apperror"
	"github.com/gameroomdev/tictactoe/internal/game"
)

func TestNew(t *testing.T) {
	t.Run("HardMode", func(t *testing.T) {
		// When: a hard-mode session starts
		sess, err := New("000", ModeHard, nil)

		// Then: the human plays X and moves first
		require.NoError(t, err)
		require.Equal(t, StateAwaitingHumanMove, sess.State)
		require.Equal(t, game.PlayerX, sess.Turn)
		require.Equal(t, game.PlayerX, sess.HumanMark)
		require.Equal(t, game.PlayerO, sess.BotMark)

		// Then: the scoreboard carries the versus-computer names
		assert.Equal(t, "You", sess.Scoreboard.Player1Name)
		assert.Equal(t, "Computer", sess.Scoreboard.Player2Name)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		// When: an unknown mode is requested
		_, err := New("000", "impossible", nil)

		// Then: the session is refused
		require.ErrorIs(t, err, apperror.ErrUnknownMode)
	})
}

func TestSession_SelectCell(t *testing.T) {
	t.Run("HandsTurnToComputer", func(t *testing.T) {
		// Given: a fresh hard-mode session
		sess, err := New("000", ModeHard, nil)
		require.NoError(t, err)

		// When: the human takes the center
		require.NoError(t, sess.SelectCell(5))

		// Then: the session now waits for the computer move event
		require.Equal(t, StateAwaitingComputerMove, sess.State)
		require.Equal(t, game.PlayerO, sess.Turn)
		assert.Equal(t, game.PlayerX, sess.Board[1][1])
	})

	t.Run("OccupiedCell", func(t *testing.T) {
		// Given: a two-player session with the center taken
		sess, err := New("000", ModeTwoPlayer, nil)
		require.NoError(t, err)
		require.NoError(t, sess.SelectCell(5))

		// When: the next player picks the same cell
		err = sess.SelectCell(5)

		// Then: the move is rejected and the state unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, StateAwaitingHumanMove, sess.State)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		sess, err := New("000", ModeTwoPlayer, nil)
		require.NoError(t, err)

		// When: the position is outside 1-9
		err = sess.SelectCell(42)

		// Then: the move is rejected without touching the board
		require.ErrorIs(t, err, apperror.ErrInvalidPosition)
		assert.Equal(t, game.NewBoard(), sess.Board)
	})

	t.Run("NotHumanTurn", func(t *testing.T) {
		// Given: a session waiting on the computer
		sess, err := New("000", ModeHard, nil)
		require.NoError(t, err)
		require.NoError(t, sess.SelectCell(5))

		// When: the human tries to move again
		err = sess.SelectCell(1)

		// Then: it is not their turn
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestSession_ApplyComputerMove(t *testing.T) {
	// Given: a session waiting on the computer
	sess, err := New("000", ModeEasy, nil)
	require.NoError(t, err)
	require.NoError(t, sess.SelectCell(5))

	// When: the computed move is applied
	require.NoError(t, sess.ApplyComputerMove(1))

	// Then: the turn is back with the human
	require.Equal(t, StateAwaitingHumanMove, sess.State)
	require.Equal(t, game.PlayerX, sess.Turn)
	assert.Equal(t, game.PlayerO, sess.Board[0][0])

	// When: a computer move arrives out of turn
	err = sess.ApplyComputerMove(2)

	// Then: it is rejected
	require.ErrorIs(t, err, apperror.ErrNotYourTurn)
}

func TestSession_GameOver(t *testing.T) {
	t.Run("HumanWinRecordedOnce", func(t *testing.T) {
		// Given: a two-player game where X runs the top row
		sess, err := New("000", ModeTwoPlayer, nil)
		require.NoError(t, err)

		for _, pos := range []int{1, 4, 2, 5} {
			require.NoError(t, sess.SelectCell(pos))
		}

		// When: X completes the row
		require.NoError(t, sess.SelectCell(3))

		// Then: the game is over with the line reported for highlighting
		require.Equal(t, StateGameOver, sess.State)
		require.Equal(t, game.PlayerX, sess.Winner)
		require.Equal(t, [3]int{1, 2, 3}, sess.WinningLine)
		require.Empty(t, sess.Turn)

		// Then: exactly one result was recorded
		require.Equal(t, 1, sess.Scoreboard.Player1Wins)
		require.Equal(t, 1, sess.Scoreboard.GamesPlayed)

		// When: anyone tries to keep playing
		err = sess.SelectCell(6)

		// Then: the finished game rejects the move
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a two-player game steered into a draw
		sess, err := New("000", ModeTwoPlayer, nil)
		require.NoError(t, err)

		// X: 1,2,6,7,9 / O: 3,4,5,8 fills the board with no line
		for _, pos := range []int{1, 3, 2, 4, 6, 5, 7, 8, 9} {
			require.NoError(t, sess.SelectCell(pos))
		}

		// Then: the game ends with no winner and one draw recorded
		require.Equal(t, StateGameOver, sess.State)
		require.Empty(t, sess.Winner)
		require.Equal(t, 1, sess.Scoreboard.Draws)
		require.Equal(t, 1, sess.Scoreboard.GamesPlayed)
	})

	t.Run("BotWin", func(t *testing.T) {
		// Given: an easy-mode session where O threatens the left column
		sess, err := New("000", ModeEasy, nil)
		require.NoError(t, err)

		require.NoError(t, sess.SelectCell(5))
		require.NoError(t, sess.ApplyComputerMove(1))
		require.NoError(t, sess.SelectCell(9))
		require.NoError(t, sess.ApplyComputerMove(4))
		require.NoError(t, sess.SelectCell(3))

		// When: the bot completes the column
		require.NoError(t, sess.ApplyComputerMove(7))

		// Then: the computer side scored the win
		require.Equal(t, game.PlayerO, sess.Winner)
		require.Equal(t, 1, sess.Scoreboard.Player2Wins)
		require.Equal(t, [3]int{1, 4, 7}, sess.WinningLine)
	})
}

func TestSession_NewGame(t *testing.T) {
	// Given: a finished game
	sess, err := New("000", ModeTwoPlayer, nil)
	require.NoError(t, err)
	for _, pos := range []int{1, 4, 2, 5, 3} {
		require.NoError(t, sess.SelectCell(pos))
	}
	require.True(t, sess.IsOver())

	// When: a new game is requested
	sess.NewGame()

	// Then: the board is fresh and X moves first again
	require.Equal(t, game.NewBoard(), sess.Board)
	require.Equal(t, StateAwaitingHumanMove, sess.State)
	require.Equal(t, game.PlayerX, sess.Turn)
	require.Empty(t, sess.Winner)

	// Then: the scoreboard survives the new game
	assert.Equal(t, 1, sess.Scoreboard.GamesPlayed)
}

func TestSession_ChangeMode(t *testing.T) {
	// Given: a hard-mode session with one game played
	sess, err := New("000", ModeHard, nil)
	require.NoError(t, err)
	sess.Scoreboard.RecordResult(game.ResultPlayer1Win)

	// When: switching to two-player mode
	require.NoError(t, sess.ChangeMode(ModeTwoPlayer))

	// Then: the board is fresh, the names follow the mode,
	// and the counters keep counting until someone resets them
	require.Equal(t, ModeTwoPlayer, sess.Mode)
	require.Equal(t, "Player 1", sess.Scoreboard.Player1Name)
	require.Equal(t, "Player 2", sess.Scoreboard.Player2Name)
	assert.Equal(t, 1, sess.Scoreboard.GamesPlayed)

	// When: an unknown mode is requested
	err = sess.ChangeMode("impossible")

	// Then: the change is refused
	require.ErrorIs(t, err, apperror.ErrUnknownMode)
}

func TestSession_Difficulty(t *testing.T) {
	easy, err := New("000", ModeEasy, nil)
	require.NoError(t, err)
	hard, err := New("000", ModeHard, nil)
	require.NoError(t, err)

	assert.Equal(t, game.DifficultyEasy, easy.Difficulty())
	assert.Equal(t, game.DifficultyHard, hard.Difficulty())
}
