// Package transport implements the channel delivery boundary. The websocket
// transport is the reference implementation: announcements and quiz items fan
// out to every connected client, and inbound vote frames feed the response
// tracker.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quizcast/internal/app"
	"quizcast/internal/domain"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type votePayload struct {
	InstanceID string `json:"instanceId"`
	Option     int    `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type announcementPayload struct {
	Text string `json:"text"`
}

type questionPayload struct {
	InstanceID string   `json:"instanceId"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Anonymous  bool     `json:"anonymous"`
}

type voteResultPayload struct {
	InstanceID string `json:"instanceId"`
	Duplicate  bool   `json:"duplicate"`
	Correct    bool   `json:"correct"`
	Awarded    int    `json:"awarded"`
	Points     int    `json:"points"`
	Message    string `json:"message"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type client struct {
	conn *websocket.Conn
	send chan outboundMessage[any]
}

// WSTransport implements app.Transport over websockets.
type WSTransport struct {
	tracker  app.ResponseTracker
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
	answers map[string]int
}

func NewWSTransport(tracker app.ResponseTracker) *WSTransport {
	return &WSTransport{
		tracker: tracker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		answers: make(map[string]int),
	}
}

func (t *WSTransport) SendAnnouncement(_ context.Context, text string) (string, error) {
	id := uuid.NewString()
	t.broadcast(outboundMessage[any]{Type: "announcement", Payload: announcementPayload{Text: text}})
	return id, nil
}

func (t *WSTransport) SendQuizItem(_ context.Context, item domain.QuizItem) (string, error) {
	id := uuid.NewString()
	t.mu.Lock()
	t.answers[id] = item.CorrectIndex
	t.mu.Unlock()

	t.broadcast(outboundMessage[any]{Type: "question", Payload: questionPayload{
		InstanceID: id,
		Title:      item.Title,
		Text:       item.Text,
		Options:    item.Options,
		Anonymous:  item.Anonymous,
	}})
	return id, nil
}

func (t *WSTransport) broadcast(msg outboundMessage[any]) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for c := range t.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("dropping frame for slow client")
		}
	}
}

// ServeWS upgrades the request and pumps vote events into the tracker.
func (t *WSTransport) ServeWS(w http.ResponseWriter, r *http.Request) {
	participantID := r.URL.Query().Get("userId")
	displayName := r.URL.Query().Get("name")
	if participantID == "" || displayName == "" {
		http.Error(w, "missing userId or name", http.StatusBadRequest)
		return
	}

	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan outboundMessage[any], 16)}
	t.mu.Lock()
	t.clients[c] = struct{}{}
	t.mu.Unlock()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range c.send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "vote":
			var payload votePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				c.send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid vote payload"}}
				continue
			}
			c.send <- t.handleVote(r.Context(), participantID, displayName, payload)
		default:
			c.send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	t.mu.Lock()
	delete(t.clients, c)
	t.mu.Unlock()
	close(c.send)
	<-writerDone
}

func (t *WSTransport) handleVote(ctx context.Context, participantID, displayName string, payload votePayload) outboundMessage[any] {
	t.mu.RLock()
	correctIndex, known := t.answers[payload.InstanceID]
	t.mu.RUnlock()
	if !known {
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unknown question instance"}}
	}

	receipt, err := t.tracker.RecordVote(ctx, domain.Vote{
		ParticipantID: participantID,
		DisplayName:   displayName,
		InstanceID:    payload.InstanceID,
		Correct:       payload.Option == correctIndex,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateVote):
		return outboundMessage[any]{Type: "voteResult", Payload: voteResultPayload{
			InstanceID: payload.InstanceID,
			Duplicate:  true,
			Message:    "⚠️ Negative! You already answered this question.",
		}}
	case errors.Is(err, domain.ErrRankingUnavailable):
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "voting is anonymous on this channel"}}
	case err != nil:
		log.Printf("record vote failed: %v", err)
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "vote could not be recorded"}}
	}

	message := "❌ Wrong. Back to the books!"
	if receipt.Correct {
		message = "✅ Correct! +1 point."
	}
	return outboundMessage[any]{Type: "voteResult", Payload: voteResultPayload{
		InstanceID: payload.InstanceID,
		Correct:    receipt.Correct,
		Awarded:    receipt.Awarded,
		Points:     receipt.TotalPoints,
		Message:    message,
	}}
}
