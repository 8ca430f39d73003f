package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bluff/internal/config"
	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
	"github.com/lox/bluff/internal/randutil"
)

var (
	_ game.HumanIO         = (*Console)(nil)
	_ game.EventSubscriber = (*Console)(nil)
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	c := New(strings.NewReader(input), out, "You", WithColorProfile(termenv.Ascii), WithLogger(logger))
	return c, out
}

func TestAskOpponentCount(t *testing.T) {
	c, out := newTestConsole("two\n9\n 4 \n")

	n, err := c.AskOpponentCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input, please try again"))
	assert.Equal(t, 3, strings.Count(out.String(), "Enter number of other players (3-6): "))
}

func TestPromptEndings(t *testing.T) {
	c, _ := newTestConsole("")
	_, err := c.AskOpponentCount()
	assert.ErrorIs(t, err, io.EOF)

	c, _ = newTestConsole("QUIT\n")
	_, err = c.RequestPlay(game.Snapshot{HumanName: "You"})
	assert.ErrorIs(t, err, ErrQuit)
}

func TestRequestPlay(t *testing.T) {
	c, out := newTestConsole("a  10 q\n")

	tokens, err := c.RequestPlay(game.Snapshot{HumanName: "You", HumanHand: deck.MustParseCards("A 10 Q")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "10", "q"}, tokens)
	assert.Contains(t, out.String(), "You's hand: A 10 Q\n")
	assert.Contains(t, out.String(), "Type the cards you want to play")
}

func TestRequestChallenge(t *testing.T) {
	c, out := newTestConsole("y\n")

	claim := game.Claim{Player: "player2", Required: deck.MustCard(deck.Nine), Count: 3}
	answer, err := c.RequestChallenge(game.Snapshot{HumanName: "You"}, claim)
	require.NoError(t, err)
	assert.Equal(t, "y", answer)
	assert.Contains(t, out.String(), "player2 claims 3 x 9. Do you want to call BS? (Y/N) ")
}

func TestRejectMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: deck.ErrInvalidRank, want: "Invalid card name(s), try again"},
		{err: game.ErrNotInHand, want: "You don't have all of those cards, try again"},
		{err: game.ErrSelectionSize, want: "Play between 1 and 4 cards, try again"},
		{err: game.ErrInvalidResponse, want: "Invalid input, please try again"},
		{err: config.ErrInvalidPlayerCount, want: "Invalid input, please try again"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, out := newTestConsole("")
			c.Reject(errors.Join(errors.New("wrapped"), tt.err))
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestConsolePlaysAGame(t *testing.T) {
	// The human holds a single ace. Playing it empties their hand, the bot
	// is forced to call, picks up the pile, and the human wins.
	c, out := newTestConsole("K\nA\n")

	human := game.NewHuman("You")
	human.Hand.InsertMany(deck.MustParseCards("A")...)
	rng := randutil.New(1)
	bot := game.NewAutomated("player1", rng)
	bot.Hand.InsertMany(deck.MustParseCards("2")...)

	e, err := game.NewEngine([]*game.Participant{human, bot},
		game.WithHumanIO(c), game.WithRand(rng), game.WithGameID("g1"))
	require.NoError(t, err)
	e.EventBus().Subscribe(c)
	require.NoError(t, e.Deal(deck.NewCards()))

	winner, err := e.Run()
	require.NoError(t, err)
	assert.Same(t, human, winner)

	text := out.String()
	assert.Contains(t, text, "Game g1\n2 players: You, player1\n")
	assert.Contains(t, text, "You: 1  player1: 1\n")
	assert.Contains(t, text, "Card being played: A | Cards in pile: 0\nTurn: You\n")
	assert.Contains(t, text, "You don't have all of those cards, try again\n")
	assert.Contains(t, text, "Card(s) played successfully\n")
	assert.Contains(t, text, "player1 calls BS!\nplayer1 was wrong! player1 takes the pile.\n")
	assert.True(t, strings.HasSuffix(text, "You won!\n"), "winner line comes last")
}
