package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/keranjang/internal/state"
)

func TestContainerGetSet(t *testing.T) {
	c := state.New([]string{"a"})
	require.Equal(t, []string{"a"}, c.Get())

	c.Set([]string{"a", "b"})
	require.Equal(t, []string{"a", "b"}, c.Get())
}

func TestContainerSubscribe(t *testing.T) {
	c := state.New(0)

	var seen []int
	unsubscribe := c.Subscribe(func(v int) { seen = append(seen, v) })

	c.Set(1)
	c.Set(2)
	unsubscribe()
	c.Set(3)

	require.Equal(t, []int{1, 2}, seen)
}

func TestContainerMultipleSubscribers(t *testing.T) {
	c := state.New("init")

	var first, second string
	c.Subscribe(func(v string) { first = v })
	c.Subscribe(func(v string) { second = v })

	c.Set("next")
	require.Equal(t, "next", first)
	require.Equal(t, "next", second)
}
