package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/gameid"
	"github.com/lox/bluff/internal/randutil"
)

var (
	ErrTooFewPlayers     = errors.New("at least two participants are required")
	ErrDuplicateName     = errors.New("participant names must be unique")
	ErrNoHumanIO         = errors.New("a human participant needs a HumanIO")
	ErrNotDealt          = errors.New("cards have not been dealt")
	ErrAlreadyDealt      = errors.New("cards have already been dealt")
	ErrGameOver          = errors.New("game is over")
	ErrTurnLimit         = errors.New("turn limit reached")
	ErrCardsNotConserved = errors.New("card conservation violated")
)

// Phase is where the engine is in the turn cycle
type Phase int

const (
	PhaseDealing Phase = iota
	PhaseTurnStart
	PhaseActingPlay
	PhaseChallengePoll
	PhaseChallengeResolution
	PhaseWinCheck
	PhaseGameOver
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseTurnStart:
		return "turn start"
	case PhaseActingPlay:
		return "acting play"
	case PhaseChallengePoll:
		return "challenge poll"
	case PhaseChallengeResolution:
		return "challenge resolution"
	case PhaseWinCheck:
		return "win check"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// TurnResult describes one completed turn
type TurnResult struct {
	Turn       int
	Actor      *Participant
	Claim      Claim
	Played     []deck.Card
	Truthful   bool
	Challenger *Participant // nil when nobody called
	Taker      *Participant // who picked up the pile, nil when nobody called
	PileTaken  int
	Winner     *Participant // set when the actor emptied their hand
}

// Engine runs a game of BS: fixed seat rotation, the required rank
// cycling A..K, at most one challenge per turn, and the actor winning as
// soon as their hand is empty after the turn resolves.
type Engine struct {
	players []*Participant
	human   *Participant
	pile    *deck.Cards

	phase    Phase
	turn     int
	seat     int
	dealt    int
	maxTurns int
	winner   *Participant
	gameID   string

	rng     randutil.Source
	io      HumanIO
	bus     EventBus
	logger  *log.Logger
	history *History
}

// Option configures an Engine
type Option func(*Engine)

// WithRand sets the source used for shuffling, polling order and bot decisions
func WithRand(rng randutil.Source) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the engine logger
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithHumanIO sets the collaborator that answers for the human participant
func WithHumanIO(hio HumanIO) Option {
	return func(e *Engine) { e.io = hio }
}

// WithEventBus replaces the engine's event bus
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithMaxTurns stops the game with ErrTurnLimit after n turns (0 = unlimited)
func WithMaxTurns(n int) Option {
	return func(e *Engine) { e.maxTurns = n }
}

// WithGameID overrides the generated game id
func WithGameID(id string) Option {
	return func(e *Engine) { e.gameID = id }
}

// NewEngine seats players in the given order, which is also the turn order
func NewEngine(players []*Participant, opts ...Option) (*Engine, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewPlayers, len(players))
	}

	e := &Engine{
		players: players,
		pile:    deck.NewCards(),
		phase:   PhaseDealing,
		bus:     NewEventBus(),
		logger:  log.New(io.Discard),
		history: &History{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.New(randutil.Seed(0))
	}
	if e.gameID == "" {
		e.gameID = gameid.Generate()
	}
	e.history.GameID = e.gameID

	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		seen[p.Name] = true
		if p.IsHuman() {
			e.human = p
		}
	}
	if e.human != nil && e.io == nil {
		return nil, ErrNoHumanIO
	}

	return e, nil
}

// EventBus returns the bus for subscribing to game events
func (e *Engine) EventBus() EventBus {
	return e.bus
}

// GameID returns the id of this game
func (e *Engine) GameID() string {
	return e.gameID
}

// Players returns the participants in turn order
func (e *Engine) Players() []*Participant {
	return e.players
}

// Phase returns the current phase of the turn cycle
func (e *Engine) Phase() Phase {
	return e.phase
}

// Turn returns the number of completed turns
func (e *Engine) Turn() int {
	return e.turn
}

// PileSize returns the number of cards in the shared pile
func (e *Engine) PileSize() int {
	return e.pile.Len()
}

// Winner returns the winner once the game is over
func (e *Engine) Winner() *Participant {
	return e.winner
}

// History returns the turn records so far
func (e *Engine) History() *History {
	return e.history
}

// Required returns the card every play this turn claims to be
func (e *Engine) Required() deck.Card {
	return deck.Card{Rank: deck.RankForTurn(e.turn)}
}

// CurrentPlayer returns the participant whose turn it is
func (e *Engine) CurrentPlayer() *Participant {
	return e.players[e.seat]
}

// DealStandard shuffles a fresh 52-card deck and deals it
func (e *Engine) DealStandard() error {
	return e.Deal(deck.NewStandardDeck())
}

// Deal shuffles d and deals it round-robin from the first seat until it is
// exhausted. Cards already in hands count towards the conserved total.
func (e *Engine) Deal(d *deck.Cards) error {
	if e.phase != PhaseDealing {
		return ErrAlreadyDealt
	}

	d.Shuffle(e.rng)
	for i := 0; ; i++ {
		card, ok := d.DrawTop()
		if !ok {
			break
		}
		e.players[i%len(e.players)].Hand.InsertFront(card)
	}

	e.dealt = e.countCards()
	e.phase = PhaseTurnStart
	e.logger.Info("Dealt cards", "game", e.gameID, "players", len(e.players), "cards", e.dealt)
	e.bus.Publish(NewGameStartEvent(e.gameID, summarize(e.players)))
	return nil
}

// Snapshot returns the public state at this point of the turn
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		GameID:   e.gameID,
		Turn:     e.turn,
		Acting:   e.CurrentPlayer().Name,
		Required: e.Required(),
		PileSize: e.pile.Len(),
		Players:  summarize(e.players),
	}
	if e.human != nil {
		snap.HumanName = e.human.Name
		snap.HumanHand = e.human.Hand.Sorted()
	}
	return snap
}

// Run plays turns until someone wins. The error is non-nil when the human
// collaborator fails, the turn limit is hit, or an invariant breaks.
func (e *Engine) Run() (*Participant, error) {
	for {
		result, err := e.PlayTurn()
		if err != nil {
			return nil, err
		}
		if result.Winner != nil {
			return result.Winner, nil
		}
	}
}

// PlayTurn runs a single turn: play, challenge poll, resolution, win check.
func (e *Engine) PlayTurn() (*TurnResult, error) {
	switch e.phase {
	case PhaseDealing:
		return nil, ErrNotDealt
	case PhaseGameOver:
		return nil, ErrGameOver
	}
	if e.maxTurns > 0 && e.turn >= e.maxTurns {
		return nil, fmt.Errorf("%w after %d turns", ErrTurnLimit, e.turn)
	}

	actor := e.CurrentPlayer()
	required := e.Required()

	e.phase = PhaseTurnStart
	e.bus.Publish(NewTurnStartEvent(e.Snapshot()))

	e.phase = PhaseActingPlay
	played, err := e.collectPlay(actor, required)
	if err != nil {
		return nil, err
	}
	e.pile.InsertMany(played...)

	result := &TurnResult{
		Turn:     e.turn,
		Actor:    actor,
		Claim:    Claim{Player: actor.Name, Required: required, Count: len(played)},
		Played:   played,
		Truthful: isTruthful(played, required),
	}
	e.logger.Debug("Cards played",
		"player", actor.Name,
		"required", required,
		"count", len(played),
		"truthful", result.Truthful,
		"pile", e.pile.Len())
	e.bus.Publish(NewCardsPlayedEvent(result.Claim, actor.Kind, e.pile.Len(), actor.HandSize()))

	e.phase = PhaseChallengePoll
	challenger, err := e.pollChallenges(actor, result.Claim)
	if err != nil {
		return nil, err
	}

	if challenger != nil {
		e.phase = PhaseChallengeResolution
		e.resolveChallenge(result, challenger)
	} else {
		e.bus.Publish(NewNoChallengeEvent(actor.Name, e.pile.Len()))
	}

	e.phase = PhaseWinCheck
	if err := e.validateCardConservation(); err != nil {
		e.logger.Error("Card conservation violation detected!", "error", err)
		return nil, err
	}
	e.history.Add(result)

	if actor.HandSize() == 0 {
		e.winner = actor
		result.Winner = actor
		e.phase = PhaseGameOver
		e.history.Winner = actor.Name
		e.logger.Info("Game won", "game", e.gameID, "winner", actor.Name, "turns", e.turn+1)
		e.bus.Publish(NewGameEndEvent(e.gameID, actor.Name, e.turn+1))
		return result, nil
	}

	e.turn++
	e.seat = (e.seat + 1) % len(e.players)
	e.phase = PhaseTurnStart
	return result, nil
}

// collectPlay takes the actor's cards out of their hand
func (e *Engine) collectPlay(actor *Participant, required deck.Card) ([]deck.Card, error) {
	if !actor.IsHuman() {
		return actor.bot.ChooseCards(required), nil
	}

	for {
		tokens, err := e.io.RequestPlay(e.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("requesting play from %s: %w", actor.Name, err)
		}

		cards, err := parseSelection(tokens)
		if err == nil && !actor.Hand.TakeAll(cards) {
			err = ErrNotInHand
		}
		if err != nil {
			e.logger.Debug("Rejected selection", "player", actor.Name, "tokens", tokens, "error", err)
			e.io.Reject(err)
			continue
		}
		return cards, nil
	}
}

// pollChallenges offers the call to everyone but the actor in a fresh
// random order and returns the first taker, if any.
func (e *Engine) pollChallenges(actor *Participant, claim Claim) (*Participant, error) {
	others := make([]*Participant, 0, len(e.players)-1)
	for _, p := range e.players {
		if p != actor {
			others = append(others, p)
		}
	}
	e.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	for _, p := range others {
		var call bool
		if p.IsHuman() {
			var err error
			if call, err = e.askHuman(claim); err != nil {
				return nil, err
			}
		} else {
			call = p.bot.ShouldChallenge(actor, len(e.players), claim.Required, claim.Count, e.pile)
		}
		if call {
			return p, nil
		}
	}
	return nil, nil
}

func (e *Engine) askHuman(claim Claim) (bool, error) {
	for {
		answer, err := e.io.RequestChallenge(e.Snapshot(), claim)
		if err != nil {
			return false, fmt.Errorf("requesting challenge from %s: %w", e.human.Name, err)
		}
		call, err := ParseChallengeResponse(answer)
		if err != nil {
			e.io.Reject(err)
			continue
		}
		return call, nil
	}
}

// resolveChallenge hands the pile to the wrong party: the challenger when
// the play was honest, the actor when it was a bluff.
func (e *Engine) resolveChallenge(result *TurnResult, challenger *Participant) {
	taker := result.Actor
	if result.Truthful {
		taker = challenger
	}

	result.Challenger = challenger
	result.Taker = taker
	result.PileTaken = e.pile.Len()
	e.pile.TransferAllInto(taker.Hand)

	e.logger.Debug("Challenge resolved",
		"challenger", challenger.Name,
		"actor", result.Actor.Name,
		"truthful", result.Truthful,
		"taker", taker.Name,
		"cards", result.PileTaken)
	e.bus.Publish(NewChallengeEvent(challenger.Name, result.Actor.Name, result.Truthful, taker.Name, result.Played, result.PileTaken))
}

func (e *Engine) countCards() int {
	total := e.pile.Len()
	for _, p := range e.players {
		total += p.HandSize()
	}
	return total
}

// validateCardConservation checks that no card appeared or vanished
func (e *Engine) validateCardConservation() error {
	if total := e.countCards(); total != e.dealt {
		return fmt.Errorf("%w: expected %d cards, found %d", ErrCardsNotConserved, e.dealt, total)
	}
	return nil
}

func isTruthful(played []deck.Card, required deck.Card) bool {
	for _, card := range played {
		if !card.Equal(required) {
			return false
		}
	}
	return true
}
