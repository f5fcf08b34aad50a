package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"civiclearn-quiz-service/internal/app"
	"civiclearn-quiz-service/internal/domain"
	"civiclearn-quiz-service/internal/questionbank"
	"civiclearn-quiz-service/internal/quiz"
)

// progressTimeout bounds store round trips made outside a request context.
const progressTimeout = 5 * time.Second

type WSHandler struct {
	sessions *app.SessionManager
	progress *app.ProgressService
	upgrader websocket.Upgrader
}

func NewWSHandler(sessions *app.SessionManager, progress *app.ProgressService) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		progress: progress,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Quiz string `json:"quiz"`
}

type answerPayload struct {
	Index int `json:"index"`
}

type jokerPayload struct {
	Kind string `json:"kind"`
}

type resetPayload struct {
	Quiz string `json:"quiz"`
}

type statePayload struct {
	Quiz      string              `json:"quiz"`
	Flashcard *quiz.FlashcardView `json:"flashcard,omitempty"`
	Tiered    *quiz.TieredView    `json:"tiered,omitempty"`
}

type audiencePayload struct {
	Distribution []int `json:"distribution"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz
// and progress use cases. A connection is identified by the user's
// registration code.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	results := make(chan app.ActivityResult, 8)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	resultsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// Terminal results can arrive from the tiered quiz's reveal timer, after
	// the triggering read has already been answered; the watcher forwards
	// them here and this goroutine pushes them to the client.
	go func() {
		defer close(resultsDone)
		for {
			select {
			case result := <-results:
				select {
				case send <- outboundMessage[any]{Type: "result", Payload: result}:
				case <-closeSignals:
					return
				}
				h.pushProgress(code, send)
			case <-closeSignals:
				return
			}
		}
	}()

	cancelWatch := h.sessions.Watch(code, func(result app.ActivityResult) {
		select {
		case results <- result:
		default:
			// A slow connection misses the push; the next progress query
			// reads the same state from the store.
		}
	})

	if overview, err := h.progress.UserOverview(r.Context(), code); err == nil {
		send <- outboundMessage[any]{Type: "progress", Payload: overview}
	}

	// The active quiz routes answer/navigation messages.
	active := ""

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid start payload")
				continue
			}
			if err := h.start(r.Context(), code, payload.Quiz); err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			active = payload.Quiz
			h.pushState(r.Context(), code, active, send)

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid answer payload")
				continue
			}
			h.withActive(r.Context(), code, active, send, func(f *quiz.FlashcardSession, t *quiz.TieredSession) {
				if f != nil {
					f.SelectAnswer(payload.Index)
				} else {
					t.SelectAnswer(payload.Index)
				}
			})

		case "confirm":
			h.withActive(r.Context(), code, active, send, func(f *quiz.FlashcardSession, t *quiz.TieredSession) {
				if t != nil {
					t.ConfirmAnswer()
				}
			})

		case "next":
			h.withActive(r.Context(), code, active, send, func(f *quiz.FlashcardSession, t *quiz.TieredSession) {
				if f != nil {
					f.Advance()
				}
			})

		case "back":
			h.withActive(r.Context(), code, active, send, func(f *quiz.FlashcardSession, t *quiz.TieredSession) {
				if f != nil {
					f.Retreat()
				}
			})

		case "joker":
			var payload jokerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid joker payload")
				continue
			}
			session, ok := h.sessions.Tiered(code)
			if !ok || active != questionbank.LadderBankID {
				send <- errorMessage(domain.ErrSessionNotFound.Error())
				continue
			}
			switch payload.Kind {
			case "fiftyFifty":
				session.UseFiftyFifty()
			case "audience":
				if dist := session.UseAudience(); dist != nil {
					send <- outboundMessage[any]{Type: "audience", Payload: audiencePayload{Distribution: dist}}
				}
			default:
				send <- errorMessage("unknown joker kind")
				continue
			}
			h.sessions.MirrorTiered(r.Context(), code)
			h.pushState(r.Context(), code, active, send)

		case "reset":
			var payload resetPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid reset payload")
				continue
			}
			switch payload.Quiz {
			case questionbank.FlashcardBankID:
				if session, ok := h.sessions.Flashcard(code); ok {
					session.Reset()
					h.sessions.MirrorFlashcard(r.Context(), code)
				}
			case questionbank.LadderBankID:
				if session, ok := h.sessions.Tiered(code); ok {
					session.Reset()
					h.sessions.MirrorTiered(r.Context(), code)
				}
			default:
				send <- errorMessage("unknown quiz")
				continue
			}
			h.pushState(r.Context(), code, payload.Quiz, send)

		case "statement":
			var stmt domain.Statement
			if err := json.Unmarshal(inbound.Payload, &stmt); err != nil {
				send <- errorMessage("invalid statement payload")
				continue
			}
			_, scored, err := h.progress.RecordStatement(r.Context(), code, stmt)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			if scored {
				h.pushProgress(code, send)
			}

		case "progress":
			h.pushProgress(code, send)

		default:
			send <- errorMessage("unsupported message type")
		}
	}

	close(closeSignals)
	<-resultsDone
	cancelWatch()
	h.sessions.Release(context.Background(), code)
	close(send)
	<-writerDone
}

func (h *WSHandler) start(ctx context.Context, code, quizID string) error {
	switch quizID {
	case questionbank.FlashcardBankID:
		_, err := h.sessions.StartFlashcard(ctx, code)
		return err
	case questionbank.LadderBankID:
		_, err := h.sessions.StartTiered(ctx, code)
		return err
	default:
		return domain.ErrBankNotFound
	}
}

// withActive runs op against the active quiz session, then mirrors the
// snapshot and pushes the new state.
func (h *WSHandler) withActive(ctx context.Context, code, active string, send chan outboundMessage[any], op func(*quiz.FlashcardSession, *quiz.TieredSession)) {
	switch active {
	case questionbank.FlashcardBankID:
		session, ok := h.sessions.Flashcard(code)
		if !ok {
			send <- errorMessage(domain.ErrSessionNotFound.Error())
			return
		}
		op(session, nil)
		h.sessions.MirrorFlashcard(ctx, code)
	case questionbank.LadderBankID:
		session, ok := h.sessions.Tiered(code)
		if !ok {
			send <- errorMessage(domain.ErrSessionNotFound.Error())
			return
		}
		op(nil, session)
		h.sessions.MirrorTiered(ctx, code)
	default:
		send <- errorMessage(domain.ErrSessionNotFound.Error())
		return
	}
	h.pushState(ctx, code, active, send)
}

func (h *WSHandler) pushState(_ context.Context, code, quizID string, send chan outboundMessage[any]) {
	switch quizID {
	case questionbank.FlashcardBankID:
		if session, ok := h.sessions.Flashcard(code); ok {
			view := session.View()
			send <- outboundMessage[any]{Type: "state", Payload: statePayload{Quiz: quizID, Flashcard: &view}}
		}
	case questionbank.LadderBankID:
		if session, ok := h.sessions.Tiered(code); ok {
			view := session.View()
			send <- outboundMessage[any]{Type: "state", Payload: statePayload{Quiz: quizID, Tiered: &view}}
		}
	}
}

func (h *WSHandler) pushProgress(code string, send chan outboundMessage[any]) {
	ctx, cancel := context.WithTimeout(context.Background(), progressTimeout)
	defer cancel()
	overview, err := h.progress.UserOverview(ctx, code)
	if err != nil {
		log.Printf("progress overview for user %s: %v", code, err)
		return
	}
	send <- outboundMessage[any]{Type: "progress", Payload: overview}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
