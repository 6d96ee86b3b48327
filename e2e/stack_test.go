package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"teamboard/internal/config"
	httpserver "teamboard/internal/http"
	"teamboard/internal/http/controller"
	"teamboard/internal/http/middleware"
	"teamboard/internal/push"
	"teamboard/internal/queue"
	"teamboard/internal/service/admin"
	"teamboard/internal/service/broadcast"
	"teamboard/internal/service/journal"
	"teamboard/internal/service/notify"
	"teamboard/internal/service/recipients"
	"teamboard/internal/sse"
	"teamboard/internal/store/memory"
)

const adminEmail = "boss@example.com"

type noopPublisher struct{}

func (n *noopPublisher) Publish(context.Context, []byte, string) error {
	return nil
}

type stack struct {
	cfg        *config.Config
	store      *memory.Store
	hub        *sse.Hub
	broadcasts *broadcast.Service
	server     *httptest.Server
}

// newStack assembles the service the way the server binary does, on the
// in-memory store.
func newStack(t *testing.T, cfg *config.Config, publisher queue.Publisher) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if publisher == nil {
		publisher = &noopPublisher{}
	}
	cfg.AdminEmails = []string{adminEmail}
	if cfg.SSEHeartbeat == 0 {
		cfg.SSEHeartbeat = 5 * time.Second
	}
	logger := zap.NewNop()
	store := memory.New(logger)
	hub := sse.NewHub()

	resolver := recipients.NewStoreResolver(cfg, store, logger)
	writer := broadcast.NewConfiguredWriter(cfg, store, logger)
	chain := push.NewChain(time.Second, logger)
	broadcasts := broadcast.NewConfiguredService(cfg, resolver, writer, hub, chain, logger)
	handler := controller.NewHandler(
		cfg,
		notify.NewService(store, hub, logger),
		broadcasts,
		journal.NewService(store, logger),
		admin.NewDashboard(store),
		hub,
		publisher,
		controller.NewValidator(),
		logger,
	)
	router := httpserver.NewRouter(cfg, handler, admin.NewAuthorizer(cfg, store, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &stack{cfg: cfg, store: store, hub: hub, broadcasts: broadcasts, server: server}
}

func (s *stack) do(t *testing.T, method, path, userID, email string, body any) *http.Response {
	t.Helper()
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	if email != "" {
		req.Header.Set(middleware.HeaderUserEmail, email)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

// openStream connects userID to the event stream and waits until the hub has registered it.
func (s *stack) openStream(t *testing.T, userID, query string) *http.Response {
	t.Helper()
	before := s.hub.Clients()
	res := s.do(t, http.MethodGet, "/api/notifications/stream"+query, userID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Eventually(t, func() bool { return s.hub.Clients() > before }, 2*time.Second, 10*time.Millisecond)
	return res
}

func readSSEData(body io.Reader, timeout time.Duration) (string, error) {
	reader := bufio.NewReader(body)
	type result struct {
		data string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		var dataLines []string
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				ch <- result{"", err}
				return
			}
			line = strings.TrimRight(line, "\r\n")
			if line == "" {
				if len(dataLines) > 0 {
					ch <- result{strings.Join(dataLines, "\n"), nil}
					return
				}
				continue
			}
			if strings.HasPrefix(line, ":") {
				continue
			}
			if strings.HasPrefix(line, "data:") {
				dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			}
		}
	}()

	select {
	case res := <-ch:
		return res.data, res.err
	case <-time.After(timeout):
		return "", context.DeadlineExceeded
	}
}
