package rtc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICEServers(t *testing.T) {
	t.Run("configured urls", func(t *testing.T) {
		servers := ICEServers([]string{"stun:stun.example.org:3478"})
		require.Len(t, servers, 1)
		assert.Equal(t, []string{"stun:stun.example.org:3478"}, servers[0].URLs)
	})

	t.Run("falls back to default", func(t *testing.T) {
		servers := ICEServers(nil)
		require.Len(t, servers, 1)
		assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, servers[0].URLs)
	})
}
