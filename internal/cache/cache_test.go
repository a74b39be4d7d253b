package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestTTL_ExpiresOnRead(t *testing.T) {
	clk := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[int]("test", 300*time.Second, WithClock(clk.Now))

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	clk.now = clk.now.Add(299 * time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)

	clk.now = clk.now.Add(time.Second)
	assert.Equal(t, 1, c.Len())
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestTTL_Overwrite(t *testing.T) {
	clk := &clock{now: time.Now()}
	c := New[string]("test", time.Minute, WithClock(clk.Now))
	c.Set("k", "old")
	clk.now = clk.now.Add(50 * time.Second)
	c.Set("k", "new")
	clk.now = clk.now.Add(50 * time.Second)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestTTL_ZeroTTLDisables(t *testing.T) {
	c := New[int]("test", 0)
	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTL_Missing(t *testing.T) {
	c := New[*int]("test", time.Minute)
	v, ok := c.Get("none")
	assert.False(t, ok)
	assert.Nil(t, v)
}
