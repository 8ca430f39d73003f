package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankLabels(t *testing.T) {
	want := map[Rank]string{
		Ace: "A", Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
		Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K",
	}
	for r, label := range want {
		assert.Equal(t, label, r.String())

		parsed, err := ParseRank(label)
		require.NoError(t, err)
		assert.Equal(t, r, parsed, "label %s should round trip", label)
	}
	assert.Equal(t, "?", Rank(0).String())
	assert.Equal(t, "?", Rank(14).String())
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []Card
		wantErr  bool
	}{
		{
			name:     "pair of tens",
			input:    []string{"10", "10"},
			expected: []Card{{Rank: Ten}, {Rank: Ten}},
		},
		{
			name:     "face cards any case",
			input:    []string{"j", "Q", "k", "a"},
			expected: []Card{{Rank: Jack}, {Rank: Queen}, {Rank: King}, {Rank: Ace}},
		},
		{
			name:    "one token outside the mapping",
			input:   []string{"A", "1"},
			wantErr: true,
		},
		{
			name:    "T is not a ten",
			input:   []string{"T"},
			wantErr: true,
		},
		{
			name:    "suffix rejected",
			input:   []string{"As"},
			wantErr: true,
		},
		{
			name:     "empty",
			input:    nil,
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRank))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCardOrdering(t *testing.T) {
	ace, king := MustCard(Ace), MustCard(King)

	assert.Equal(t, -1, ace.Compare(king))
	assert.Equal(t, 1, king.Compare(ace))
	assert.Equal(t, 0, ace.Compare(Card{Rank: Ace}))
	assert.True(t, ace.Equal(Card{Rank: Ace}))
	assert.False(t, ace.Equal(king))
}

func TestNewCardRange(t *testing.T) {
	_, err := NewCard(0)
	assert.ErrorIs(t, err, ErrInvalidRank)
	_, err = NewCard(14)
	assert.ErrorIs(t, err, ErrInvalidRank)

	assert.Panics(t, func() { MustCard(20) })
}

func TestRankCycle(t *testing.T) {
	assert.Equal(t, Ace, King.Next())
	assert.Equal(t, Two, Ace.Next())

	for turn := 0; turn < 40; turn++ {
		assert.Equal(t, Rank(turn%13+1), RankForTurn(turn))
	}
}

func TestMustParseCards(t *testing.T) {
	assert.Equal(t, []Card{{Rank: Ace}, {Rank: Ten}}, MustParseCards("A 10"))
	assert.Panics(t, func() { MustParseCards("A X") })
}
