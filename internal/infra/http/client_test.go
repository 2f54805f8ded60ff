package http

import (
	nethttp "net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c := NewClient(0)
	assert.Equal(t, defaultTimeout, c.Timeout)

	c = NewClient(3 * time.Second)
	assert.Equal(t, 3*time.Second, c.Timeout)

	transport, ok := c.Transport.(*nethttp.Transport)
	require.True(t, ok)
	assert.Equal(t, 4, transport.MaxIdleConnsPerHost)
}
