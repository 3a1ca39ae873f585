package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTelegram struct {
	mu        sync.Mutex
	sent      []map[string]string
	failFirst int
	polls     int
	updates   string
}

func (f *fakeTelegram) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.URL.Path {
		case "/botTOKEN/sendMessage":
			if f.failFirst > 0 {
				f.failFirst--
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"ok":false}`)
				return
			}
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			f.sent = append(f.sent, payload)
			fmt.Fprint(w, `{"ok":true}`)
		case "/botTOKEN/getUpdates":
			f.polls++
			if f.polls == 1 {
				fmt.Fprint(w, f.updates)
				return
			}
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestNotifier(srv *httptest.Server) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	n.RetryBase = time.Millisecond
	return n
}

func TestTelegram_Send(t *testing.T) {
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv).Send("hello"))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "42", fake.sent[0]["chat_id"])
	assert.Equal(t, "hello", fake.sent[0]["text"])
	assert.Equal(t, "HTML", fake.sent[0]["parse_mode"])
}

func TestTelegram_SendWithRetry(t *testing.T) {
	fake := &fakeTelegram{failFirst: 2}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	n := newTestNotifier(srv)
	require.NoError(t, n.SendWithRetry(context.Background(), "retry me", 3))
	assert.Len(t, fake.sent, 1)

	fake.failFirst = 10
	err := n.SendWithRetry(context.Background(), "give up", 1)
	assert.ErrorContains(t, err, "all 2 retries exhausted")
}

func TestTelegram_PollingDispatchesOwnChatOnly(t *testing.T) {
	fake := &fakeTelegram{updates: `{"ok":true,"result":[
		{"update_id":7,"message":{"text":"/list","chat":{"id":42}}},
		{"update_id":8,"message":{"text":"/list","chat":{"id":99}}},
		{"update_id":9}]}`}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []string
	done := make(chan struct{})
	go func() {
		newTestNotifier(srv).StartPolling(ctx, func(cmd string) string {
			got = append(got, cmd)
			cancel()
			return "reply to " + cmd
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}

	assert.Equal(t, []string{"/list"}, got)
	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "reply to /list", fake.sent[0]["text"])
}
