package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpQueue_FIFO(t *testing.T) {
	q := newOpQueue()
	for _, name := range []string{"a", "b", "c"} {
		require.True(t, q.Enqueue(op{name: name}))
	}
	assert.Equal(t, 3, q.Len())

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, want, got.name)
	}
	_, ok := q.TryDequeue()
	assert.False(t, ok)
}

func TestOpQueue_CloseWakesWaiters(t *testing.T) {
	q := newOpQueue()
	q.Close()
	q.Close() // idempotent

	_, open := <-q.Wait()
	assert.False(t, open)
	assert.False(t, q.Enqueue(op{name: "late"}))
}

func TestOpQueue_Drain(t *testing.T) {
	q := newOpQueue()
	q.Enqueue(op{name: "a"})
	q.Enqueue(op{name: "b"})

	assert.Len(t, q.drain(), 2)
	assert.Equal(t, 0, q.Len())
}
