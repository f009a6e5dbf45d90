// Package watch реализует подписки на снимки коллекций: подписчик получает
// полное текущее состояние коллекции после каждой успешной мутации.
package watch

import (
	"sync"
)

// Collection имена наблюдаемых коллекций.
const (
	CollectionUsers  = "users"
	CollectionSkills = "skills"
	CollectionSwaps  = "swaps"
)

// Snapshot полный снимок коллекции на момент публикации.
type Snapshot struct {
	Collection string      `json:"collection"`
	Items      interface{} `json:"items"`
}

// Subscription подписка на снимки одной коллекции.
// Канал закрывается после Cancel; после возврата из Cancel новые
// снимки подписчику не доставляются.
type Subscription struct {
	broker     *Broker
	collection string
	ch         chan Snapshot

	mu        sync.Mutex
	cancelled bool
}

// C возвращает канал снимков. Медленный потребитель получает только
// последний снимок: устаревшие вытесняются.
func (s *Subscription) C() <-chan Snapshot {
	return s.ch
}

// Cancel отменяет подписку и закрывает канал.
// Повторный вызов безопасен.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	s.mu.Unlock()

	s.broker.remove(s)
	close(s.ch)
}

// deliver кладёт снимок в канал подписчика, вытесняя непрочитанный.
// Вызывается только под блокировкой брокера, поэтому не гонится с Cancel:
// remove ждёт ту же блокировку.
func (s *Subscription) deliver(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return
	}

	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		// Буфер занят устаревшим снимком, освобождаем его
		select {
		case <-s.ch:
		default:
		}
	}
}

// Broker рассылает снимки коллекций подписчикам.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

// NewBroker создаёт новый брокер подписок.
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe регистрирует подписку на снимки коллекции.
func (b *Broker) Subscribe(collection string) *Subscription {
	sub := &Subscription{
		broker:     b,
		collection: collection,
		ch:         make(chan Snapshot, 1),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[collection]; !ok {
		b.subs[collection] = make(map[*Subscription]struct{})
	}
	b.subs[collection][sub] = struct{}{}

	return sub
}

// Publish доставляет снимок всем подписчикам коллекции.
// Вызывается после каждой успешной мутации коллекции.
func (b *Broker) Publish(collection string, items interface{}) {
	snap := Snapshot{Collection: collection, Items: items}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[collection] {
		sub.deliver(snap)
	}
}

func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.subs[sub.collection]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(b.subs, sub.collection)
		}
	}
}
