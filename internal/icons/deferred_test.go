package icons

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeferQueue_FIFO(t *testing.T) {
	var q DeferQueue
	var got []int
	for i := 1; i <= 3; i++ {
		q.Push(func() { got = append(got, i) })
	}
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Zero(t, q.Drain(), "callbacks run exactly once")
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDeferQueue_PushDuringDrainRunsNextTime(t *testing.T) {
	var q DeferQueue
	ran := 0
	q.Push(func() {
		q.Push(func() { ran++ })
	})

	assert.Equal(t, 1, q.Drain())
	assert.Zero(t, ran)
	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, 1, ran)
}

func TestDeferQueue_ConcurrentPush(t *testing.T) {
	var q DeferQueue
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(func() {})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, q.Drain())
}

func TestDeferQueue_Clear(t *testing.T) {
	var q DeferQueue
	q.Push(func() { t.Fatal("cleared callback ran") })
	q.Push(nil)
	assert.Equal(t, 1, q.Clear())
	assert.Zero(t, q.Drain())
}
