package watch

import (
	"testing"
	"time"
)

func receiveSnapshot(t *testing.T, sub *Subscription) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-sub.C():
		if !ok {
			t.Fatal("канал подписки закрыт")
		}
		return snap
	case <-time.After(time.Second):
		t.Fatal("снимок не доставлен")
	}
	return Snapshot{}
}

func TestBroker_SubscriberReceivesSnapshot(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe(CollectionSkills)
	defer sub.Cancel()

	b.Publish(CollectionSkills, []string{"Guitar Playing"})

	snap := receiveSnapshot(t, sub)
	if snap.Collection != CollectionSkills {
		t.Errorf("ожидалась коллекция %s, получена %s", CollectionSkills, snap.Collection)
	}
	items, ok := snap.Items.([]string)
	if !ok || len(items) != 1 || items[0] != "Guitar Playing" {
		t.Errorf("неожиданное содержимое снимка: %v", snap.Items)
	}
}

func TestBroker_OnlyMatchingCollection(t *testing.T) {
	b := NewBroker()
	skillsSub := b.Subscribe(CollectionSkills)
	defer skillsSub.Cancel()
	swapsSub := b.Subscribe(CollectionSwaps)
	defer swapsSub.Cancel()

	b.Publish(CollectionSwaps, []int{1, 2})

	select {
	case snap := <-skillsSub.C():
		t.Errorf("подписчик skills получил чужой снимок: %v", snap)
	default:
	}

	snap := receiveSnapshot(t, swapsSub)
	if snap.Collection != CollectionSwaps {
		t.Errorf("ожидалась коллекция %s, получена %s", CollectionSwaps, snap.Collection)
	}
}

func TestBroker_SlowConsumerGetsLatest(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe(CollectionUsers)
	defer sub.Cancel()

	// Подписчик не читает: три публикации подряд, выживает последняя
	b.Publish(CollectionUsers, 1)
	b.Publish(CollectionUsers, 2)
	b.Publish(CollectionUsers, 3)

	snap := receiveSnapshot(t, sub)
	if snap.Items != 3 {
		t.Errorf("ожидался последний снимок 3, получен %v", snap.Items)
	}

	select {
	case snap := <-sub.C():
		t.Errorf("получен лишний снимок: %v", snap.Items)
	default:
	}
}

func TestBroker_CancelStopsDelivery(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe(CollectionSkills)

	b.Publish(CollectionSkills, 1)
	receiveSnapshot(t, sub)

	sub.Cancel()

	// После Cancel публикация не должна ни паниковать, ни доставляться
	b.Publish(CollectionSkills, 2)

	if _, ok := <-sub.C(); ok {
		t.Error("канал должен быть закрыт после Cancel")
	}
}

func TestBroker_CancelIsIdempotent(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe(CollectionSwaps)

	sub.Cancel()
	sub.Cancel()
}

func TestBroker_IndependentSubscribers(t *testing.T) {
	b := NewBroker()
	first := b.Subscribe(CollectionSkills)
	defer first.Cancel()
	second := b.Subscribe(CollectionSkills)

	second.Cancel()
	b.Publish(CollectionSkills, "snapshot")

	snap := receiveSnapshot(t, first)
	if snap.Items != "snapshot" {
		t.Errorf("неожиданный снимок: %v", snap.Items)
	}
}
