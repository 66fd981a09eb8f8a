package keylock

import (
	"context"
	"sync"
)

// KeyedMutex мьютекс с блокировкой по ключу.
// Операции с разными ключами выполняются полностью параллельно,
// операции с одним ключом сериализуются в порядке поступления (FIFO).
// Ожидание блокировки прерывается отменой контекста без побочных эффектов.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*lockState
}

type lockState struct {
	held  bool
	queue []chan struct{} // буферизованные каналы ожидающих, в порядке поступления
}

// New создает новый KeyedMutex
func New() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[int64]*lockState),
	}
}

// Lock захватывает блокировку для ключа key.
// Блокируется до захвата или до отмены контекста.
// При отмене контекста возвращает ctx.Err(), не оставляя следов в очереди.
func (k *KeyedMutex) Lock(ctx context.Context, key int64) error {
	k.mu.Lock()

	state, ok := k.locks[key]
	if !ok {
		state = &lockState{}
		k.locks[key] = state
	}

	if !state.held {
		state.held = true
		k.mu.Unlock()
		return nil
	}

	// Ключ занят - встаем в очередь
	grant := make(chan struct{}, 1)
	state.queue = append(state.queue, grant)
	k.mu.Unlock()

	select {
	case <-grant:
		return nil
	case <-ctx.Done():
		k.mu.Lock()
		// Блокировка могла быть передана нам одновременно с отменой контекста.
		// В этом случае мы фактически держим ее и обязаны передать дальше.
		select {
		case <-grant:
			k.passOrReleaseLocked(key, state)
		default:
			k.removeWaiterLocked(key, state, grant)
		}
		k.mu.Unlock()
		return ctx.Err()
	}
}

// Unlock освобождает блокировку для ключа key.
// Вызывается только держателем блокировки.
func (k *KeyedMutex) Unlock(key int64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	state, ok := k.locks[key]
	if !ok || !state.held {
		panic("keylock: unlock of unlocked key")
	}

	k.passOrReleaseLocked(key, state)
}

// passOrReleaseLocked передает блокировку первому ожидающему
// или освобождает ключ. Вызывается под k.mu.
func (k *KeyedMutex) passOrReleaseLocked(key int64, state *lockState) {
	if len(state.queue) > 0 {
		next := state.queue[0]
		state.queue = state.queue[1:]
		next <- struct{}{}
		return
	}

	state.held = false
	delete(k.locks, key)
}

// removeWaiterLocked убирает отмененного ожидающего из очереди. Вызывается под k.mu.
func (k *KeyedMutex) removeWaiterLocked(key int64, state *lockState, grant chan struct{}) {
	for i, ch := range state.queue {
		if ch == grant {
			state.queue = append(state.queue[:i], state.queue[i+1:]...)
			break
		}
	}
}
