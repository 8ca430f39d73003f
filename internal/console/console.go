// Package console plays the human's side of a game on a plain terminal,
// one line of input per prompt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/bluff/internal/config"
	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
)

// ErrQuit is returned from a prompt when the player types quit
var ErrQuit = errors.New("player quit")

// Console is a line-mode game.HumanIO that also renders game events
type Console struct {
	ctx       context.Context
	in        *bufio.Scanner
	out       io.Writer
	styles    styles
	formatter *game.EventFormatter
	pacer     *Pacer
	logger    *log.Logger
	human     string
}

// Option configures a Console
type Option func(*consoleOptions)

type consoleOptions struct {
	ctx     context.Context
	profile *termenv.Profile
	pacer   *Pacer
	logger  *log.Logger
	reveal  bool
}

// WithContext bounds the pacing pauses
func WithContext(ctx context.Context) Option {
	return func(o *consoleOptions) { o.ctx = ctx }
}

// WithColorProfile forces a colour profile, e.g. termenv.Ascii for no colour
func WithColorProfile(p termenv.Profile) Option {
	return func(o *consoleOptions) { o.profile = &p }
}

// WithPacer pauses around bot turns and challenge results
func WithPacer(p *Pacer) Option {
	return func(o *consoleOptions) { o.pacer = p }
}

// WithLogger sets the console logger
func WithLogger(logger *log.Logger) Option {
	return func(o *consoleOptions) { o.logger = logger }
}

// WithRevealPlays shows the cards a challenge turned over
func WithRevealPlays(reveal bool) Option {
	return func(o *consoleOptions) { o.reveal = reveal }
}

// New creates a console for the named human reading from in and writing to out
func New(in io.Reader, out io.Writer, human string, opts ...Option) *Console {
	o := consoleOptions{
		ctx:    context.Background(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Console{
		ctx:       o.ctx,
		in:        bufio.NewScanner(in),
		out:       out,
		styles:    newStyles(out, o.profile),
		formatter: game.NewEventFormatter(game.FormattingOptions{Perspective: human, RevealPlays: o.reveal}),
		pacer:     o.pacer,
		logger:    o.logger.WithPrefix("console"),
		human:     human,
	}
}

// AskOpponentCount asks how many bots to seat until it gets a valid answer
func (c *Console) AskOpponentCount() (int, error) {
	for {
		line, err := c.prompt(fmt.Sprintf("Enter number of other players (%d-%d): ", config.MinOpponents, config.MaxOpponents))
		if err != nil {
			return 0, err
		}
		n, err := config.ParseOpponentCount(line)
		if err != nil {
			c.logger.Debug("Rejected player count", "input", line, "error", err)
			c.println(paint(c.styles.Error, "Invalid input, please try again"))
			continue
		}
		return n, nil
	}
}

// RequestPlay implements game.HumanIO
func (c *Console) RequestPlay(snap game.Snapshot) ([]string, error) {
	c.println(paint(c.styles.Hand, c.formatter.FormatHand(snap.HumanName, snap.HumanHand)))
	line, err := c.prompt("Type the cards you want to play (with a space between them): ")
	if err != nil {
		return nil, err
	}
	return strings.Fields(line), nil
}

// RequestChallenge implements game.HumanIO
func (c *Console) RequestChallenge(snap game.Snapshot, claim game.Claim) (string, error) {
	c.println(paint(c.styles.Hand, c.formatter.FormatHand(snap.HumanName, snap.HumanHand)))
	return c.prompt(fmt.Sprintf("%s claims %d x %s. Do you want to call BS? (Y/N) ", claim.Player, claim.Count, claim.Required))
}

// Reject implements game.HumanIO
func (c *Console) Reject(err error) {
	c.logger.Debug("Rejected input", "error", err)
	c.println(paint(c.styles.Error, rejectMessage(err)))
}

func rejectMessage(err error) string {
	switch {
	case errors.Is(err, deck.ErrInvalidRank):
		return "Invalid card name(s), try again"
	case errors.Is(err, game.ErrNotInHand):
		return "You don't have all of those cards, try again"
	case errors.Is(err, game.ErrSelectionSize):
		return "Play between 1 and 4 cards, try again"
	default:
		return "Invalid input, please try again"
	}
}

// OnEvent implements game.EventSubscriber
func (c *Console) OnEvent(event game.GameEvent) {
	switch ev := event.(type) {
	case game.GameStartEvent:
		c.println(paint(c.styles.Header, c.formatter.Format(ev)))

	case game.TurnStartEvent:
		c.println(paint(c.styles.Divider, strings.Repeat("-", 60)))
		c.println("Current card totals: ")
		c.println(paint(c.styles.Table, c.formatter.FormatCardTotals(ev.Snapshot.Players)))
		c.println(paint(c.styles.Table, c.formatter.Format(ev)))
		if !ev.Snapshot.IsHumanTurn() {
			c.pause(c.pacer.BeforeTurn)
		}

	case game.CardsPlayedEvent:
		c.println(c.formatter.Format(ev))

	case game.ChallengeEvent:
		c.println(paint(c.styles.Call, c.formatter.Format(ev)))
		c.pause(c.pacer.AfterResult)

	case game.GameEndEvent:
		c.println(paint(c.styles.Winner, c.formatter.Format(ev)))
	}
}

func (c *Console) pause(wait func(context.Context) error) {
	if c.pacer == nil {
		return
	}
	if err := wait(c.ctx); err != nil {
		c.logger.Debug("Pause interrupted", "error", err)
	}
}

// prompt writes the question and reads one line. EOF and "quit" end the game.
func (c *Console) prompt(question string) (string, error) {
	fmt.Fprint(c.out, paint(c.styles.Prompt, question))
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}

	line := strings.TrimSpace(c.in.Text())
	switch strings.ToLower(line) {
	case "quit", "exit":
		return "", ErrQuit
	}
	return line, nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
