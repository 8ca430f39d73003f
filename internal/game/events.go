package game

import (
	"time"

	"github.com/lox/bluff/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStart   EventType = "game_start"
	EventTypeTurnStart   EventType = "turn_start"
	EventTypeCardsPlayed EventType = "cards_played"
	EventTypeChallenge   EventType = "challenge"
	EventTypeNoChallenge EventType = "no_challenge"
	EventTypeGameEnd     EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the cards are dealt
type GameStartEvent struct {
	GameID    string
	Players   []PlayerSummary
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartEvent creates a new game start event
func NewGameStartEvent(gameID string, players []PlayerSummary) GameStartEvent {
	return GameStartEvent{
		GameID:    gameID,
		Players:   players,
		timestamp: time.Now(),
	}
}

// TurnStartEvent carries the table as it stands before the actor plays
type TurnStartEvent struct {
	Snapshot  Snapshot
	timestamp time.Time
}

func (e TurnStartEvent) EventType() EventType { return EventTypeTurnStart }
func (e TurnStartEvent) Timestamp() time.Time { return e.timestamp }

// NewTurnStartEvent creates a new turn start event
func NewTurnStartEvent(snap Snapshot) TurnStartEvent {
	return TurnStartEvent{
		Snapshot:  snap,
		timestamp: time.Now(),
	}
}

// CardsPlayedEvent is published after the actor's cards reach the pile.
// Only the count is public; what was actually played stays hidden.
type CardsPlayedEvent struct {
	Claim     Claim
	Kind      Kind
	PileSize  int
	HandSize  int
	timestamp time.Time
}

func (e CardsPlayedEvent) EventType() EventType { return EventTypeCardsPlayed }
func (e CardsPlayedEvent) Timestamp() time.Time { return e.timestamp }

// NewCardsPlayedEvent creates a new cards played event
func NewCardsPlayedEvent(claim Claim, kind Kind, pileSize, handSize int) CardsPlayedEvent {
	return CardsPlayedEvent{
		Claim:     claim,
		Kind:      kind,
		PileSize:  pileSize,
		HandSize:  handSize,
		timestamp: time.Now(),
	}
}

// ChallengeEvent is published when a bluff call has been resolved
type ChallengeEvent struct {
	Challenger string
	Actor      string
	Truthful   bool
	Taker      string
	Played     []deck.Card // revealed by the call
	PileTaken  int
	timestamp  time.Time
}

func (e ChallengeEvent) EventType() EventType { return EventTypeChallenge }
func (e ChallengeEvent) Timestamp() time.Time { return e.timestamp }

// NewChallengeEvent creates a new challenge event
func NewChallengeEvent(challenger, actor string, truthful bool, taker string, played []deck.Card, pileTaken int) ChallengeEvent {
	return ChallengeEvent{
		Challenger: challenger,
		Actor:      actor,
		Truthful:   truthful,
		Taker:      taker,
		Played:     played,
		PileTaken:  pileTaken,
		timestamp:  time.Now(),
	}
}

// NoChallengeEvent is published when everyone lets the play stand
type NoChallengeEvent struct {
	Actor     string
	PileSize  int
	timestamp time.Time
}

func (e NoChallengeEvent) EventType() EventType { return EventTypeNoChallenge }
func (e NoChallengeEvent) Timestamp() time.Time { return e.timestamp }

// NewNoChallengeEvent creates a new no challenge event
func NewNoChallengeEvent(actor string, pileSize int) NoChallengeEvent {
	return NoChallengeEvent{
		Actor:     actor,
		PileSize:  pileSize,
		timestamp: time.Now(),
	}
}

// GameEndEvent is published when a participant empties their hand
type GameEndEvent struct {
	GameID    string
	Winner    string
	Turns     int
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(gameID, winner string, turns int) GameEndEvent {
	return GameEndEvent{
		GameID:    gameID,
		Winner:    winner,
		Turns:     turns,
		timestamp: time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
