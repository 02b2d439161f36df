package queue

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingWarmer struct {
	mu     sync.Mutex
	warmed []int64
	failOn int64
}

func (w *recordingWarmer) Warm(_ context.Context, userID int64) error {
	if userID == w.failOn {
		return errors.New("store unavailable")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warmed = append(w.warmed, userID)
	return nil
}

func TestDispatcher_WarmsEveryUser(t *testing.T) {
	w := &recordingWarmer{}
	d := NewDispatcher(3, w, zerolog.Nop())
	d.Start(context.Background())

	d.EnqueueBatch([]int64{1, 2, 3, 4, 5})
	d.Close()

	sort.Slice(w.warmed, func(i, j int) bool { return w.warmed[i] < w.warmed[j] })
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, w.warmed)
}

func TestDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	w := &recordingWarmer{failOn: 2}
	d := NewDispatcher(1, w, zerolog.Nop())
	d.Start(context.Background())

	d.EnqueueBatch([]int64{1, 2, 3})
	d.Close()

	assert.Equal(t, []int64{1, 3}, w.warmed)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingWarmer{}, zerolog.Nop())
	for id := int64(1); id <= 50; id++ {
		idx := d.shardIndex(id)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 4)
		assert.Equal(t, idx, d.shardIndex(id))
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingWarmer{}, zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)
}
