package keylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	km := New()
	ctx := context.Background()

	require.NoError(t, km.Lock(ctx, 1))
	km.Unlock(1)

	// Повторный захват после освобождения
	require.NoError(t, km.Lock(ctx, 1))
	km.Unlock(1)
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	km := New()
	ctx := context.Background()

	require.NoError(t, km.Lock(ctx, 1))

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := km.Lock(ctx, 2); err != nil {
			t.Errorf("Lock(2) failed: %v", err)
			return
		}
		km.Unlock(2)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}

	km.Unlock(1)
}

func TestMutualExclusion(t *testing.T) {
	km := New()
	ctx := context.Background()

	const goroutines = 20
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := km.Lock(ctx, 42); err != nil {
				t.Errorf("Lock failed: %v", err)
				return
			}
			defer km.Unlock(42)

			// Без взаимного исключения инкремент через локальную копию
			// со сном почти гарантированно теряет обновления
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestLockCancelledWhileWaiting(t *testing.T) {
	km := New()
	ctx := context.Background()

	require.NoError(t, km.Lock(ctx, 1))

	cancelCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- km.Lock(cancelCtx, 1)
	}()

	// Даем горутине встать в очередь, затем отменяем
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled waiter did not return")
	}

	// Отмененный ожидающий не должен мешать следующему захвату
	km.Unlock(1)
	require.NoError(t, km.Lock(ctx, 1))
	km.Unlock(1)
}

func TestLockTimeout(t *testing.T) {
	km := New()
	require.NoError(t, km.Lock(context.Background(), 1))

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := km.Lock(timeoutCtx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	km.Unlock(1)
}

func TestFIFOOrder(t *testing.T) {
	km := New()
	ctx := context.Background()

	require.NoError(t, km.Lock(ctx, 1))

	const waiters = 5
	order := make(chan int, waiters)

	for i := 0; i < waiters; i++ {
		i := i
		go func() {
			if err := km.Lock(ctx, 1); err != nil {
				t.Errorf("Lock failed: %v", err)
				return
			}
			order <- i
			km.Unlock(1)
		}()
		// Даем каждой горутине встать в очередь до запуска следующей
		time.Sleep(20 * time.Millisecond)
	}

	km.Unlock(1)

	for expected := 0; expected < waiters; expected++ {
		select {
		case got := <-order:
			assert.Equal(t, expected, got, "waiters should acquire the lock in arrival order")
		case <-time.After(time.Second):
			t.Fatal("waiter did not acquire the lock")
		}
	}
}
