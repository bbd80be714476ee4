package events

import (
	"testing"
	"time"
)

func TestSubscribePublishDeliversToSameUser(t *testing.T) {
	b := NewBus()
	ch, unsubscribe := b.Subscribe("user-1")
	defer unsubscribe()

	b.Publish("user-1", Event{Kind: KindJobStarted, JobID: "job-1"})

	select {
	case evt := <-ch:
		if evt.JobID != "job-1" {
			t.Fatalf("expected job-1, got %s", evt.JobID)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
}

func TestPublishDoesNotCrossUsers(t *testing.T) {
	b := NewBus()
	chA, unsubA := b.Subscribe("user-a")
	defer unsubA()
	chB, unsubB := b.Subscribe("user-b")
	defer unsubB()

	b.Publish("user-a", Event{Kind: KindJobStarted, JobID: "job-a"})

	select {
	case evt := <-chA:
		if evt.JobID != "job-a" {
			t.Fatalf("expected job-a, got %s", evt.JobID)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event on user-a")
	}

	select {
	case evt := <-chB:
		t.Fatalf("expected no event delivered to user-b, got %+v", evt)
	case <-time.After(10 * time.Millisecond):
	}
}

func TestPublishToUnknownUserIsNoop(t *testing.T) {
	b := NewBus()
	b.Publish("nobody-subscribed", Event{Kind: KindJobStarted})
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	ch, unsubscribe := b.Subscribe("user-1")
	unsubscribe()

	b.Publish("user-1", Event{Kind: KindJobStarted})

	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed after unsubscribe")
	}
}

func TestSubscriberCount(t *testing.T) {
	b := NewBus()
	if b.SubscriberCount("user-1") != 0 {
		t.Fatalf("expected 0 subscribers before any Subscribe call")
	}
	_, unsub1 := b.Subscribe("user-1")
	_, unsub2 := b.Subscribe("user-1")
	defer unsub2()
	if b.SubscriberCount("user-1") != 2 {
		t.Fatalf("expected 2 subscribers, got %d", b.SubscriberCount("user-1"))
	}
	unsub1()
	if b.SubscriberCount("user-1") != 1 {
		t.Fatalf("expected 1 subscriber after unsubscribe, got %d", b.SubscriberCount("user-1"))
	}
}
