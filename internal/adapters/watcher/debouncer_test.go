package watcher_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modscan/internal/adapters/watcher"
)

// batches records debounced callbacks from the timer goroutine.
type batches struct {
	mu    sync.Mutex
	calls [][]string
}

func (b *batches) record(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, paths)
}

func (b *batches) get() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestDebouncer_Add_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("Source/Editor/WaterEditor.Build.cs")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := b.get()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"Source/Editor/WaterEditor.Build.cs"}, calls[0])
	})
}

func TestDebouncer_Add_CoalescesSortedAndUnique(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("b/Flurry.Build.cs")
		d.Add("a/Composure.Build.cs")
		d.Add("b/Flurry.Build.cs")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := b.get()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"a/Composure.Build.cs", "b/Flurry.Build.cs"}, calls[0])
	})
}

func TestDebouncer_Add_ResetsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			calls.Add(1)
		})

		d.Add("one.Build.cs")
		time.Sleep(80 * time.Millisecond)
		d.Add("two.Build.cs")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(0), calls.Load(), "window restarts on every add")

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestDebouncer_SeparateBatches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("first.Build.cs")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		d.Add("second.Build.cs")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := b.get()
		require.Len(t, calls, 2)
		assert.Equal(t, []string{"first.Build.cs"}, calls[0])
		assert.Equal(t, []string{"second.Build.cs"}, calls[1])
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(time.Hour, b.record)

		d.Add("pending.Build.cs")
		d.Flush()

		calls := b.get()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"pending.Build.cs"}, calls[0])

		// Nothing is left for the timer.
		time.Sleep(2 * time.Hour)
		synctest.Wait()
		assert.Len(t, b.get(), 1)
	})
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	called := false
	d := watcher.NewDebouncer(time.Millisecond, func([]string) {
		called = true
	})

	d.Flush()

	assert.False(t, called)
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("x.Build.cs")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}

func TestDebouncer_ConcurrentAdds(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var (
			mu    sync.Mutex
			total int
		)
		d := watcher.NewDebouncer(50*time.Millisecond, func(paths []string) {
			mu.Lock()
			total += len(paths)
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for _, name := range []string{"a", "b", "c", "d", "e"} {
			wg.Go(func() {
				d.Add(name + ".Build.cs")
			})
		}
		wg.Wait()

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 5, total)
	})
}
