package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Roulette/internal/core"
)

func pairedEnv(t *testing.T) (*testEnv, *fakeConn, *fakeConn) {
	t.Helper()
	env := newTestEnv()
	connA := env.connect(t, "a")
	connB := env.connect(t, "b")
	env.coord.Join("a", "Mike")
	env.coord.Join("b", "Alice")
	env.runScheduled()
	require.Equal(t, "b", string(env.session(t, "a").Partner))
	connA.reset()
	connB.reset()
	return env, connA, connB
}

func TestRelay_ForwardsEnvelopeVerbatim(t *testing.T) {
	env, _, connB := pairedEnv(t)

	env.coord.Relay("a", []byte(`{"type":"offer","sdp":"v=0 fake-sdp","extra":{"k":1}}`))

	msgs := connB.ofType(t, "offer")
	require.Len(t, msgs, 1)
	assert.Equal(t, "v=0 fake-sdp", msgs[0]["sdp"])
	assert.Equal(t, map[string]any{"k": float64(1)}, msgs[0]["extra"])
	assert.Equal(t, "a", msgs[0]["from"])
}

func TestRelay_AnswerAndCandidatePassThrough(t *testing.T) {
	env, connA, connB := pairedEnv(t)

	env.coord.Relay("b", []byte(`{"type":"answer","sdp":"v=0 answer"}`))
	env.coord.Relay("a", []byte(`{"type":"candidate","candidate":"candidate:1 1 udp 2122260223 192.0.2.1 54321 typ host"}`))

	answers := connA.ofType(t, "answer")
	require.Len(t, answers, 1)
	assert.Equal(t, "b", answers[0]["from"])

	cands := connB.ofType(t, "candidate")
	require.Len(t, cands, 1)
	assert.Equal(t, "a", cands[0]["from"])
}

func TestRelay_RequiresPairing(t *testing.T) {
	env := newTestEnv()
	fc := env.connect(t, "a")
	fc.reset()

	env.coord.Relay("a", []byte(`{"type":"offer","sdp":"v=0"}`))

	assert.NotEmpty(t, fc.ofType(t, core.TypeError))
	// Nothing was delivered anywhere.
	assert.Empty(t, fc.ofType(t, "offer"))
}

func TestRelay_UnwritablePartnerDropsSilently(t *testing.T) {
	env, connA, connB := pairedEnv(t)
	connB.sendErr = errors.New("backpressure")

	env.coord.Relay("a", []byte(`{"type":"offer","sdp":"v=0"}`))

	// Dropped, not retried, and the sender sees no error.
	assert.Empty(t, connB.frames)
	assert.Empty(t, connA.ofType(t, core.TypeError))
}

func TestRelayMute_NotifiesPartner(t *testing.T) {
	env, _, connB := pairedEnv(t)

	env.coord.RelayMute("a", true)

	msgs := connB.ofType(t, core.TypePartnerMuteStatus)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Mike", msgs[0]["username"])
	assert.Equal(t, true, msgs[0]["isMuted"])
	assert.True(t, env.session(t, "a").Muted)

	env.coord.RelayMute("a", false)
	assert.False(t, env.session(t, "a").Muted)
}

func TestRelayMute_RequiresPairing(t *testing.T) {
	env := newTestEnv()
	fc := env.connect(t, "a")
	env.coord.Join("a", "Mike")
	fc.reset()

	env.coord.RelayMute("a", true)

	assert.NotEmpty(t, fc.ofType(t, core.TypeError))
	assert.False(t, env.session(t, "a").Muted)
}
