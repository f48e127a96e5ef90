package sse

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestBroadcastDeliversToSubscribedClient(t *testing.T) {
	hub := NewSSEHub(testLogger(t))
	userID := uuid.New()

	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserChannel(userID))

	msg := SSEMessage{
		Channel: UserChannel(userID),
		Event:   SSEEventGenerationProgress,
		Data:    map[string]any{"progress": 50},
	}
	hub.Broadcast(msg)

	select {
	case got := <-client.Outbound:
		if got.Event != SSEEventGenerationProgress {
			t.Errorf("event = %q, want %q", got.Event, SSEEventGenerationProgress)
		}
	default:
		t.Fatal("expected a message on the client outbound channel")
	}
}

func TestBroadcastSkipsOtherChannels(t *testing.T) {
	hub := NewSSEHub(testLogger(t))

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, UserChannel(client.UserID))

	hub.Broadcast(SSEMessage{
		Channel: UserChannel(uuid.New()),
		Event:   SSEEventGenerationCompleted,
	})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message delivered: %+v", msg)
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewSSEHub(testLogger(t))
	userID := uuid.New()

	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserChannel(userID))

	msg := SSEMessage{Channel: UserChannel(userID), Event: SSEEventGenerationProgress}
	for i := 0; i < cap(client.Outbound)+5; i++ {
		hub.Broadcast(msg)
	}

	if got := len(client.Outbound); got != cap(client.Outbound) {
		t.Errorf("outbound length = %d, want full buffer %d", got, cap(client.Outbound))
	}
}

func TestRemoveClientUnsubscribes(t *testing.T) {
	hub := NewSSEHub(testLogger(t))
	userID := uuid.New()

	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserChannel(userID))
	hub.RemoveClient(client)

	hub.Broadcast(SSEMessage{Channel: UserChannel(userID), Event: SSEEventGenerationProgress})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message after removal: %+v", msg)
	default:
	}
}
