package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsInOrderOnce(t *testing.T) {
	q := NewQueue()
	var got []int
	q.RequestFrame(func() { got = append(got, 1) })
	q.RequestFrame(func() { got = append(got, 2) })
	require.Equal(t, 2, q.Len())

	assert.Equal(t, 2, q.Flush())
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, q.Flush())
	assert.Equal(t, []int{1, 2}, got)
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue()
	ran := false
	id := q.RequestFrame(func() { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(id)
	q.CancelFrame(0)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Flush())
	assert.False(t, ran)
}

func TestQueueRequestDuringFlushRunsNextFrame(t *testing.T) {
	q := NewQueue()
	count := 0
	q.RequestFrame(func() {
		count++
		q.RequestFrame(func() { count += 10 })
	})
	q.Flush()
	assert.Equal(t, 1, count)
	q.Flush()
	assert.Equal(t, 11, count)
}

func TestQueueCancelLaterCallbackInSameFlush(t *testing.T) {
	q := NewQueue()
	var second ID
	ran := false
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })
	assert.Equal(t, 1, q.Flush())
	assert.False(t, ran)

	// The cancellation does not leak into later flushes.
	q.RequestFrame(func() { ran = true })
	q.Flush()
	assert.True(t, ran)
}

func TestLoopTicksEveryFrameUntilStopped(t *testing.T) {
	q := NewQueue()
	ticks := 0
	l := NewLoop(q, func() { ticks++ })
	l.Start()
	l.Start()
	require.Equal(t, 1, q.Len())

	for i := 0; i < 5; i++ {
		q.Flush()
	}
	assert.Equal(t, 5, ticks)
	assert.True(t, l.Running())

	l.Stop()
	assert.False(t, l.Running())
	assert.Equal(t, 0, q.Len())
	q.Flush()
	assert.Equal(t, 5, ticks)
}

func TestLoopStopFromTick(t *testing.T) {
	q := NewQueue()
	var l *Loop
	ticks := 0
	l = NewLoop(q, func() {
		ticks++
		if ticks == 3 {
			l.Stop()
		}
	})
	l.Start()
	for i := 0; i < 10; i++ {
		q.Flush()
	}
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, q.Len())
}

func TestNilLoop(t *testing.T) {
	var l *Loop
	l.Start()
	l.Stop()
	assert.False(t, l.Running())
}
