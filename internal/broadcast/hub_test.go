package broadcast

import "testing"

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	h := NewHub(4)
	id1, ch1 := h.Subscribe()
	id2, ch2 := h.Subscribe()
	defer h.Unsubscribe(id1)
	defer h.Unsubscribe(id2)

	u := Update{CurrentScore: 85, State: "FOCUSING", FeedbackMsg: "Great Focus!", Timestamp: 1}
	h.Publish(u)

	for i, ch := range []<-chan Update{ch1, ch2} {
		select {
		case got := <-ch:
			if got != u {
				t.Errorf("subscriber %d: got %+v, want %+v", i, got, u)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
}

func TestHub_UnsubscribeClosesOnlyThatChannel(t *testing.T) {
	h := NewHub(4)
	id1, ch1 := h.Subscribe()
	id2, ch2 := h.Subscribe()

	h.Unsubscribe(id1)

	if _, open := <-ch1; open {
		t.Error("unsubscribed channel should be closed")
	}

	h.Publish(Update{CurrentScore: 10})
	select {
	case got := <-ch2:
		if got.CurrentScore != 10 {
			t.Errorf("remaining subscriber got %+v", got)
		}
	default:
		t.Error("remaining subscriber missed update after another unsubscribed")
	}
	h.Unsubscribe(id2)
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	h := NewHub(1)
	id, _ := h.Subscribe()
	defer h.Unsubscribe(id)

	// Fill the buffer, then keep publishing; Publish must return immediately.
	for i := 0; i < 50; i++ {
		h.Publish(Update{CurrentScore: i})
	}
}

func TestHub_UnsubscribeUnknownIDIsNoop(t *testing.T) {
	h := NewHub(0)
	h.Unsubscribe("no-such-id")
	if n := h.SubscriberCount(); n != 0 {
		t.Errorf("SubscriberCount = %d, want 0", n)
	}
}
