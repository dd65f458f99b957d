package http

import (
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialLive(t *testing.T) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(newTestHandler(t, newFakeStore()))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/validate"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestLiveValidate(t *testing.T) {
	conn := dialLive(t)

	if err := conn.WriteJSON(map[string]interface{}{"age": 30, "height": "200", "weight": "80"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply liveMessage
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Type != "validation" || reply.BMI == nil || math.Abs(*reply.BMI-20) > 1e-9 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(reply.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", reply.Warnings)
	}

	if err := conn.WriteJSON(map[string]interface{}{"age": "-3", "children": "40"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	reply = liveMessage{}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.BMI != nil || len(reply.Warnings) != 2 {
		t.Fatalf("expected two warnings and no bmi, got %+v", reply)
	}
}

func TestLiveValidateBadMessage(t *testing.T) {
	conn := dialLive(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply liveMessage
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Type != "error" {
		t.Fatalf("expected error reply, got %+v", reply)
	}
}
