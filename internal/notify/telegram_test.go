package notify

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeBotAPI struct {
	mu       sync.Mutex
	messages []map[string]string
	failSend bool
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"b","username":"videohub_bot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.messages = append(f.messages, map[string]string{
			"chat_id": r.PostForm.Get("chat_id"),
			"text":    r.PostForm.Get("text"),
		})
		fail := f.failSend
		f.mu.Unlock()
		if fail {
			fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBotAPI) sent() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]string(nil), f.messages...)
}

func newTestNotifier(t *testing.T, api *fakeBotAPI) *Notifier {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	n, err := NewWithClient("123:abc", srv.URL+"/bot%s/%s", 42, srv.Client())
	if err != nil {
		t.Fatalf("NewWithClient failed: %v", err)
	}
	return n
}

func TestNotifier_Messages(t *testing.T) {
	tests := []struct {
		name     string
		send     func(n *Notifier)
		contains []string
	}{
		{
			name:     "startup",
			send:     func(n *Notifier) { n.Startup(":8000") },
			contains: []string{"started", ":8000"},
		},
		{
			name:     "cleanup failure",
			send:     func(n *Notifier) { n.CleanupFailed("/tmp/abc.mp4", errors.New("permission denied")) },
			contains: []string{"/tmp/abc.mp4", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeBotAPI{}
			n := newTestNotifier(t, api)

			tt.send(n)

			sent := api.sent()
			if len(sent) != 1 {
				t.Fatalf("Expected 1 message, got %d", len(sent))
			}
			msg := sent[0]
			if msg["chat_id"] != "42" {
				t.Errorf("Expected chat_id 42, got %q", msg["chat_id"])
			}
			for _, want := range tt.contains {
				if !strings.Contains(msg["text"], want) {
					t.Errorf("Expected %q in message %q", want, msg["text"])
				}
			}
		})
	}
}

func TestNotifier_SendFailureIsLogged(t *testing.T) {
	api := &fakeBotAPI{failSend: true}
	n := newTestNotifier(t, api)

	n.Startup(":8000")

	if got := len(api.sent()); got != 1 {
		t.Errorf("Expected send attempt, got %d", got)
	}
}

func TestNotifier_Nil(t *testing.T) {
	var n *Notifier

	// Must not panic.
	n.Startup(":8000")
	n.CleanupFailed("/tmp/x", errors.New("boom"))
}

func TestNewWithClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}))
	defer srv.Close()

	if _, err := NewWithClient("bad", srv.URL+"/bot%s/%s", 42, srv.Client()); err == nil {
		t.Error("Expected error for rejected token")
	}
}
