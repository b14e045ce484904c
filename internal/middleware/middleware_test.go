package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

type whoAmI struct{}

func (whoAmI) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return connect.NewResponse(&api.RegisterResponse{Token: "public"}), nil
}

func (whoAmI) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
}

func (whoAmI) GetCurrentUser(ctx context.Context, _ *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return connect.NewResponse(&api.GetCurrentUserResponse{
		User: &api.User{ID: GetUserID(ctx), Email: GetEmail(ctx)},
	}), nil
}

func (whoAmI) GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, nil)
}

func (whoAmI) ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, nil)
}

func newServer(t *testing.T, jwtManager *auth.JWTManager, m *metrics.Metrics, logs *bytes.Buffer) *apiconnect.UserServiceClient {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(logs, nil))
	path, handler := apiconnect.NewUserServiceHandler(whoAmI{},
		connect.WithInterceptors(
			MetricsInterceptor(m),
			RequireAuth(jwtManager, apiconnect.PublicProcedures),
			LoggingInterceptor(logger),
		),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return apiconnect.NewUserServiceClient(srv.Client(), srv.URL)
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	m := metrics.New(prometheus.NewRegistry())
	var logs bytes.Buffer
	client := newServer(t, jwtManager, m, &logs)

	token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "alice@example.com"})
	require.NoError(t, err)

	t.Run("public procedure needs no token", func(t *testing.T) {
		resp, err := client.Register(t.Context(), connect.NewRequest(&api.RegisterRequest{}))
		require.NoError(t, err)
		assert.Equal(t, "public", resp.Msg.Token)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := client.GetCurrentUser(t.Context(), connect.NewRequest(&api.GetCurrentUserRequest{}))
		require.Error(t, err)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := connect.NewRequest(&api.GetCurrentUserRequest{})
		req.Header().Set("Authorization", "Basic "+token)
		_, err := client.GetCurrentUser(t.Context(), req)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other, err := auth.NewJWTManager("other-secret", time.Hour).Generate(&models.User{ID: "u1"})
		require.NoError(t, err)

		req := connect.NewRequest(&api.GetCurrentUserRequest{})
		req.Header().Set("Authorization", "Bearer "+other)
		_, err = client.GetCurrentUser(t.Context(), req)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("valid token", func(t *testing.T) {
		req := connect.NewRequest(&api.GetCurrentUserRequest{})
		req.Header().Set("Authorization", "Bearer "+token)
		resp, err := client.GetCurrentUser(t.Context(), req)
		require.NoError(t, err)
		assert.Equal(t, "u1", resp.Msg.User.ID)
		assert.Equal(t, "alice@example.com", resp.Msg.User.Email)
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(apiconnect.UserServiceGetCurrentUserProcedure, "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(apiconnect.UserServiceGetCurrentUserProcedure, "unauthenticated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(apiconnect.UserServiceRegisterProcedure, "ok")))

	assert.Contains(t, logs.String(), "RPC ok")
	assert.Contains(t, logs.String(), "user_id=u1")
}

func TestLoggingInterceptor_LogsErrors(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	var logs bytes.Buffer
	client := newServer(t, jwtManager, metrics.New(prometheus.NewRegistry()), &logs)

	_, err := client.Login(t.Context(), connect.NewRequest(&api.LoginRequest{}))
	require.Error(t, err)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "RPC error")
	assert.Contains(t, logs.String(), "code=unauthenticated")
}

func TestRequireAuthHTTP(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "alice@example.com"})
	require.NoError(t, err)

	handler := RequireAuthHTTP(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetUserID(r.Context())))
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "lowercase scheme", header: "bearer " + token, wantStatus: http.StatusOK, wantBody: "u1"},
		{name: "valid", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/download/balance-sheet/user/u1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			} else {
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS("https://app.example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, called)
}

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Contains(t, logs.String(), "path=/missing")
	assert.Contains(t, logs.String(), "status=404")
}
