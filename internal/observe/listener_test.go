package observe

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNewListener(t *testing.T) {
	m, _ := newTestMetrics(t)

	l, err := NewListener("127.0.0.1:0", m, func(mux *http.ServeMux) {
		mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	if err != nil {
		t.Fatalf("NewListener: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	}()

	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get("http://" + l.Addr() + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status = %d, want %d", path, resp.StatusCode, http.StatusOK)
		}
	}
}
