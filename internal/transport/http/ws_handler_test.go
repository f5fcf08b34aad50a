package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"civiclearn-quiz-service/internal/app"
	"civiclearn-quiz-service/internal/infra/memory"
	"civiclearn-quiz-service/internal/questionbank"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	banks := memory.NewBankRepository(memory.NewStaticBankLoader(questionbank.Default()), time.Minute)
	progress := app.NewProgressService(memory.NewProgressStore())
	sessions := app.NewSessionManager(banks, memory.NewSnapshotStore(), progress, app.WithRevealDelay(0))
	handler := NewWSHandler(sessions, progress)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, code string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?code=" + code
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readNext(t *testing.T, conn *websocket.Conn, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": msgType, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func TestWebSocketRequiresCode(t *testing.T) {
	server := newTestServer(t)
	resp, err := http.Get(server.URL + "/ws")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestWebSocketFlashcardFlow(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server, "u1")

	// The handler greets every connection with the user's progress.
	readNext(t, conn, "progress")

	send(t, conn, "start", map[string]any{"quiz": questionbank.FlashcardBankID})
	_, state := readNext(t, conn, "state")
	card, ok := state["flashcard"].(map[string]any)
	if !ok {
		t.Fatalf("state payload has no flashcard view: %v", state)
	}
	if card["revealed"].(bool) {
		t.Fatal("question revealed before an answer was selected")
	}

	send(t, conn, "answer", map[string]any{"index": 1})
	_, state = readNext(t, conn, "state")
	card = state["flashcard"].(map[string]any)
	if !card["revealed"].(bool) {
		t.Fatal("selecting an answer should reveal the solution")
	}
	answers, ok := card["answers"].([]any)
	if !ok || len(answers) != 4 {
		t.Fatalf("revealed view has %d answers, want 4", len(answers))
	}
	if _, ok := answers[1].(map[string]any)["correct"]; !ok {
		t.Fatal("revealed answers must carry correctness")
	}
}

func TestWebSocketFlashcardCompletionPushesResult(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server, "u2")
	readNext(t, conn, "progress")

	send(t, conn, "start", map[string]any{"quiz": questionbank.FlashcardBankID})
	readNext(t, conn, "state")

	for i := 0; i < 10; i++ {
		send(t, conn, "answer", map[string]any{"index": 0})
		readNext(t, conn, "state")
		send(t, conn, "next", nil)
	}

	// The final advance produces the post-advance state plus an asynchronous
	// result push followed by refreshed progress; order is not fixed.
	resultSeen := false
	progressSeen := false
	for i := 0; i < 16 && !(resultSeen && progressSeen); i++ {
		typ, payload := readNext(t, conn, "")
		switch typ {
		case "result":
			resultSeen = true
			if payload["activityId"] != questionbank.FlashcardBankID {
				t.Fatalf("result for unexpected activity: %v", payload)
			}
		case "progress":
			progressSeen = true
		}
	}
	if !resultSeen || !progressSeen {
		t.Fatalf("expected result and progress pushes, got result=%v progress=%v", resultSeen, progressSeen)
	}
}

func TestWebSocketTieredJoker(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server, "u3")
	readNext(t, conn, "progress")

	send(t, conn, "start", map[string]any{"quiz": questionbank.LadderBankID})
	_, state := readNext(t, conn, "state")
	if _, ok := state["tiered"].(map[string]any); !ok {
		t.Fatalf("state payload has no tiered view: %v", state)
	}

	// Jokers are locked on the first two levels; the request is a no-op.
	send(t, conn, "joker", map[string]any{"kind": "fiftyFifty"})
	_, afterJoker := readNext(t, conn, "state")
	view := afterJoker["tiered"].(map[string]any)
	if view["fiftyFiftyAvailable"].(bool) {
		t.Fatal("fifty-fifty offered below the unlock level")
	}
	eliminated := 0
	for _, a := range view["answers"].([]any) {
		if e, ok := a.(map[string]any)["eliminated"].(bool); ok && e {
			eliminated++
		}
	}
	if eliminated != 0 {
		t.Fatalf("%d answers eliminated below the unlock level", eliminated)
	}
}

func TestWebSocketRejectsUnknownQuiz(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server, "u4")
	readNext(t, conn, "progress")

	send(t, conn, "start", map[string]any{"quiz": "no-such-quiz"})
	readNext(t, conn, "error")
}
