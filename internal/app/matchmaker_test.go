package app

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Roulette/internal/domain"
)

func seededMatchmaker(seed int64) *Matchmaker {
	return &Matchmaker{rng: rand.New(rand.NewSource(seed))}
}

func sessionSet(sessions ...*domain.Session) func(domain.SessionID) (*domain.Session, bool) {
	byID := make(map[domain.SessionID]*domain.Session, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
	}
	return func(sid domain.SessionID) (*domain.Session, bool) {
		s, ok := byID[sid]
		return s, ok
	}
}

func waiting(id domain.SessionID) *domain.Session {
	return &domain.Session{ID: id, State: domain.StateWaiting}
}

func TestMatchmaker_Pick(t *testing.T) {
	tests := []struct {
		name      string
		requester *domain.Session
		others    []*domain.Session
		pool      []domain.SessionID
		want      domain.SessionID
		wantOK    bool
	}{
		{
			name:      "single eligible candidate",
			requester: waiting("a"),
			others:    []*domain.Session{waiting("b")},
			pool:      []domain.SessionID{"a", "b"},
			want:      "b",
			wantOK:    true,
		},
		{
			name:      "requester never matches itself",
			requester: waiting("a"),
			others:    nil,
			pool:      []domain.SessionID{"a"},
			wantOK:    false,
		},
		{
			name:      "non-waiting candidates are skipped",
			requester: waiting("a"),
			others: []*domain.Session{
				{ID: "b", State: domain.StatePaired},
				{ID: "c", State: domain.StateDisconnected},
			},
			pool:   []domain.SessionID{"a", "b", "c"},
			wantOK: false,
		},
		{
			name:      "excluded former partner is skipped",
			requester: &domain.Session{ID: "a", State: domain.StateWaiting, Excluded: "b"},
			others:    []*domain.Session{waiting("b")},
			pool:      []domain.SessionID{"a", "b"},
			wantOK:    false,
		},
		{
			name:      "candidate excluding the requester is skipped",
			requester: waiting("a"),
			others:    []*domain.Session{{ID: "b", State: domain.StateWaiting, Excluded: "a"}},
			pool:      []domain.SessionID{"a", "b"},
			wantOK:    false,
		},
		{
			name:      "stale pool entry without a record is skipped",
			requester: waiting("a"),
			others:    nil,
			pool:      []domain.SessionID{"a", "ghost"},
			wantOK:    false,
		},
		{
			name:      "exclusion only blocks the named session",
			requester: &domain.Session{ID: "a", State: domain.StateWaiting, Excluded: "b"},
			others: []*domain.Session{
				{ID: "b", State: domain.StateWaiting, Excluded: "a"},
				waiting("c"),
			},
			pool:   []domain.SessionID{"a", "b", "c"},
			want:   "c",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := seededMatchmaker(1)
			lookup := sessionSet(append(tt.others, tt.requester)...)

			got, ok := m.Pick(tt.requester, tt.pool, lookup)

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK && tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatchmaker_PickIsRandomAmongEligible(t *testing.T) {
	m := seededMatchmaker(7)
	requester := waiting("a")
	candidates := []*domain.Session{waiting("b"), waiting("c"), waiting("d")}
	lookup := sessionSet(append(candidates, requester)...)
	pool := []domain.SessionID{"a", "b", "c", "d"}

	seen := make(map[domain.SessionID]int)
	for i := 0; i < 200; i++ {
		got, ok := m.Pick(requester, pool, lookup)
		require.True(t, ok)
		seen[got]++
	}

	// Every eligible candidate should come up; picks never land on the requester.
	assert.Len(t, seen, 3)
	assert.NotContains(t, seen, domain.SessionID("a"))
}
