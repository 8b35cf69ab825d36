package game

// Results recorded on the scoreboard. Player 1 is the human side in bot
// games and X in two-player games.
const (
	ResultPlayer1Win = "player1_win"
	ResultPlayer2Win = "player2_win"
	ResultDraw       = "draw"
)

// Scoreboard tallies results across repeated games in one session.
// It lives in memory for the session only; JSON tags let the server keep
// it alongside the rest of the session state.
type Scoreboard struct {
	Player1Name string `json:"player1_name"`
	Player2Name string `json:"player2_name"`
	Player1Wins int    `json:"player1_wins"`
	Player2Wins int    `json:"player2_wins"`
	Draws       int    `json:"draws"`
	GamesPlayed int    `json:"games_played"`
}

func NewScoreboard(player1Name, player2Name string) *Scoreboard {
	return &Scoreboard{
		Player1Name: player1Name,
		Player2Name: player2Name,
	}
}

// RecordResult bumps the counter matching result, plus the games total.
func (that *Scoreboard) RecordResult(result string) {
	that.GamesPlayed++

	switch result {
	case ResultPlayer1Win:
		that.Player1Wins++
	case ResultPlayer2Win:
		that.Player2Wins++
	default:
		that.Draws++
	}
}

// Reset zeroes every counter and leaves both names untouched.
func (that *Scoreboard) Reset() {
	that.Player1Wins = 0
	that.Player2Wins = 0
	that.Draws = 0
	that.GamesPlayed = 0
}
