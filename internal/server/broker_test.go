package server

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBrokerDeliversToSessionSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("tok")
	other := b.Subscribe("other")

	b.Publish("tok", StateEvent{Type: "state", Version: 7})

	select {
	case data := <-ch:
		var ev StateEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("bad event payload %q: %v", data, err)
		}
		if ev.Type != "state" || ev.Version != 7 {
			t.Errorf("event = %+v, want state v7", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	select {
	case data := <-other:
		t.Fatalf("event leaked to another session: %s", data)
	default:
	}
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("tok")
	b.Unsubscribe("tok", ch)

	b.Publish("tok", StateEvent{Type: "state", Version: 1})

	select {
	case data := <-ch:
		t.Fatalf("unsubscribed channel received %s", data)
	default:
	}
}

func TestBrokerPublishWithoutSubscribersIsNoOp(t *testing.T) {
	b := NewBroker()
	b.Publish("nobody", StateEvent{Type: "state", Version: 1})
}
