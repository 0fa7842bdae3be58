package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_RepeatsReplaceNotStack(t *testing.T) {
	c := NewCenter()

	c.Notify(Notice{Message: "failed to delete backup source", Status: 500})
	c.Notify(Notice{Message: "failed to delete backup source", Status: 500})
	c.Notify(Notice{Message: "failed to delete backup source", Status: 404})

	active := c.Active()
	require.Len(t, active, 2, "same (message, status) replaces, different status stacks")
	assert.Equal(t, 500, active[0].Status)
	assert.Equal(t, 404, active[1].Status)
}

func TestCenter_ExpiresAfterTTL(t *testing.T) {
	c := NewCenter()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Notify(Notice{Message: "saved", Status: 200})
	require.Len(t, c.Active(), 1)

	now = now.Add(3 * time.Second)
	assert.Empty(t, c.Active())
}

func TestNotice_Key(t *testing.T) {
	a := Notice{Message: "x", Status: 200}
	b := Notice{Message: "x", Status: 500}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.True(t, a.Success())
	assert.False(t, b.Success())
}
