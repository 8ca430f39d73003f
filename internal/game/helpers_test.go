package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/bluff/internal/deck"
)

// fixedRand returns the same draw every time and never reorders anything.
type fixedRand struct {
	float float64
	intn  int
	draws int
}

func (r *fixedRand) Float64() float64 {
	r.draws++
	return r.float
}

func (r *fixedRand) IntN(n int) int {
	if r.intn >= n {
		return n - 1
	}
	return r.intn
}

func (r *fixedRand) Shuffle(int, func(i, j int)) {}

// scriptedIO answers for the human from fixed scripts and returns io.EOF
// once a script runs out.
type scriptedIO struct {
	plays     [][]string
	answers   []string
	rejected  []error
	playAsks  int
	callAsks  int
	lastClaim Claim
	snapshots []Snapshot
}

func (s *scriptedIO) RequestPlay(snap Snapshot) ([]string, error) {
	s.playAsks++
	s.snapshots = append(s.snapshots, snap)
	if len(s.plays) == 0 {
		return nil, io.EOF
	}
	next := s.plays[0]
	s.plays = s.plays[1:]
	return next, nil
}

func (s *scriptedIO) RequestChallenge(snap Snapshot, claim Claim) (string, error) {
	s.callAsks++
	s.lastClaim = claim
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next, nil
}

func (s *scriptedIO) Reject(err error) {
	s.rejected = append(s.rejected, err)
}

// recorder keeps every published event
type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.EventType() == t {
			n++
		}
	}
	return n
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func withHand(p *Participant, labels string) *Participant {
	p.Hand.InsertMany(deck.MustParseCards(labels)...)
	return p
}

// newDealtEngine builds an engine around pre-filled hands and starts it
// without dealing any further cards.
func newDealtEngine(t *testing.T, players []*Participant, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger()), WithGameID("test")}, opts...)
	e, err := NewEngine(players, opts...)
	require.NoError(t, err)
	require.NoError(t, e.Deal(deck.NewCards()))
	return e
}
