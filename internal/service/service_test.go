package service

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/balance"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// testEnv is a full server stack backed by a temporary SQLite database.
type testEnv struct {
	server  *httptest.Server
	store   *sqlite.SQLiteStore
	metrics *metrics.Metrics
	users   *apiconnect.UserServiceClient
	ledger  *apiconnect.LedgerServiceClient
	balance *apiconnect.BalanceServiceClient
}

// session is a registered user with a bearer token.
type session struct {
	user  *api.User
	token string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"), sqlite.DefaultOptions())
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	m := metrics.New(prometheus.NewRegistry())
	aggregator := balance.New(store, logger)

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager, apiconnect.PublicProcedures),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewLedgerServiceHandler(NewLedgerService(store, m, logger), interceptors))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(aggregator, logger), interceptors))
	mux.Handle(DownloadPattern, middleware.RequireAuthHTTP(jwtManager)(DownloadHandler(aggregator, logger)))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		server:  server,
		store:   store,
		metrics: m,
		users:   apiconnect.NewUserServiceClient(server.Client(), server.URL),
		ledger:  apiconnect.NewLedgerServiceClient(server.Client(), server.URL),
		balance: apiconnect.NewBalanceServiceClient(server.Client(), server.URL),
	}
}

// register creates an account named name with a derived email.
func (e *testEnv) register(t *testing.T, name, mobile string) *session {
	t.Helper()

	resp, err := e.users.Register(t.Context(), connect.NewRequest(&api.RegisterRequest{
		Name:     name,
		Email:    name + "@example.com",
		Mobile:   mobile,
		Password: "password123",
	}))
	require.NoError(t, err, "failed to register %s", name)

	return &session{user: resp.Msg.User, token: resp.Msg.Token}
}

// createBatch creates a batch as owner containing members in order.
func (e *testEnv) createBatch(t *testing.T, owner *session, name string, members ...*session) *api.Batch {
	t.Helper()

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.user.ID
	}
	resp, err := e.ledger.CreateBatch(t.Context(), withToken(owner, &api.CreateBatchRequest{Name: name, MemberIDs: ids}))
	require.NoError(t, err, "failed to create batch %s", name)

	return resp.Msg.Batch
}

// withToken wraps msg in a request carrying s's bearer token.
func withToken[T any](s *session, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.token)
	return req
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, connect.CodeOf(err), "unexpected code for error: %v", err)
}
