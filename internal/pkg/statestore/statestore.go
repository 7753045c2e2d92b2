// Package statestore хранит живые предложения диспетчеризации в памяти процесса.
//
// Каждый переход заказа получает новую эпоху. Эпохи берутся из общего монотонного счетчика,
// поэтому эпоха никогда не повторяется даже после удаления записи заказа.
package statestore

import (
	"maps"
	"sync"

	"dispatch/internal/entities"
)

type Store struct {
	mu     sync.RWMutex
	seq    uint64
	epochs map[string]uint64
	states map[string]entities.DispatchState
}

func New() *Store {
	return &Store{
		epochs: make(map[string]uint64),
		states: make(map[string]entities.DispatchState),
	}
}

func (s *Store) Get(orderID string) (entities.DispatchState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[orderID]
	if !ok {
		return entities.DispatchState{}, false
	}
	return clone(state), true
}

// Epoch текущая эпоха заказа, 0 если переходов не было или запись освобождена.
func (s *Store) Epoch(orderID string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epochs[orderID]
}

// Advance начинает новый переход: выдает новую эпоху и снимает текущее предложение.
// Снятое предложение возвращается, чтобы вызывающий отменил его таймеры.
func (s *Store) Advance(orderID string) (uint64, *entities.DispatchState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.epochs[orderID] = s.seq

	prev, ok := s.states[orderID]
	if !ok {
		return s.seq, nil
	}
	delete(s.states, orderID)
	prev = clone(prev)

	return s.seq, &prev
}

// CompareAndSet сохраняет предложение, только если эпоха заказа не менялась.
func (s *Store) CompareAndSet(orderID string, epoch uint64, state entities.DispatchState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epochs[orderID] != epoch {
		return false
	}
	state.Epoch = epoch
	s.states[orderID] = clone(state)

	return true
}

// CompareAndDelete удаляет предложение и эпоху заказа, если эпоха совпадает.
func (s *Store) CompareAndDelete(orderID string, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epochs[orderID] != epoch {
		return false
	}
	delete(s.states, orderID)
	delete(s.epochs, orderID)

	return true
}

// Release освобождает эпоху завершенного перехода, после которого предложения не осталось.
func (s *Store) Release(orderID string, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epochs[orderID] != epoch {
		return
	}
	if _, ok := s.states[orderID]; ok {
		return
	}
	delete(s.epochs, orderID)
}

// Len количество живых предложений.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

func clone(state entities.DispatchState) entities.DispatchState {
	state.Timers = maps.Clone(state.Timers)
	return state
}
