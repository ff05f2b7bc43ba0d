package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockHandler implements Handler for testing
type MockHandler struct {
	path   string
	called bool
}

func (m *MockHandler) Register(r gin.IRouter) {
	r.GET(m.path, func(c *gin.Context) {
		m.called = true
		c.String(http.StatusOK, m.path)
	})
}

func TestServer_RegisterHandler(t *testing.T) {
	s := New(":0")

	if len(s.handlers) != 0 {
		t.Errorf("Expected 0 handlers initially, got %d", len(s.handlers))
	}

	handler1 := &MockHandler{path: "/one"}
	handler2 := &MockHandler{path: "/two"}
	s.RegisterHandler(handler1)
	s.RegisterHandler(handler2)

	if len(s.handlers) != 2 {
		t.Fatalf("Expected 2 handlers, got %d", len(s.handlers))
	}
	if s.handlers[0] != handler1 || s.handlers[1] != handler2 {
		t.Error("Handlers should keep registration order")
	}
}

func TestServer_Routing(t *testing.T) {
	s := New(":0")
	handler1 := &MockHandler{path: "/one"}
	handler2 := &MockHandler{path: "/two"}
	s.RegisterHandler(handler1)
	s.RegisterHandler(handler2)

	tests := []struct {
		path   string
		status int
	}{
		{"/one", http.StatusOK},
		{"/two", http.StatusOK},
		{"/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, w.Code)
			}
		})
	}

	if !handler1.called || !handler2.called {
		t.Error("Both handlers should have been called")
	}
}

func TestServer_CORS(t *testing.T) {
	s := New(":0")
	s.RegisterHandler(&MockHandler{path: "/one"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/one", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/one", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	s.Handler().ServeHTTP(w, req)

	if w.Code >= 300 {
		t.Errorf("Expected preflight to succeed, got %d", w.Code)
	}
}

func TestServer_Recovery(t *testing.T) {
	s := New(":0")
	s.engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s := New(":0")
	s.RegisterHandler(&MockHandler{path: "/one"})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/one")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "/one" {
		t.Errorf("Unexpected response %d %q", resp.StatusCode, body)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Server did not shut down")
	}
}
