package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedMiddleware() (*Middleware, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewMiddleware(zap.New(core), NewMetrics()), logs
}

func TestRequestID(t *testing.T) {
	mw, _ := newObservedMiddleware()

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "Generated", incoming: ""},
		{name: "Propagated", incoming: "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := mw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFrom(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.NotEmpty(t, seen)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, seen)
			}
			assert.Equal(t, seen, rr.Header().Get(HeaderRequestID))
		})
	}
}

func TestLogging(t *testing.T) {
	mw, logs := newObservedMiddleware()

	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{name: "OK", status: http.StatusOK, level: zapcore.InfoLevel},
		{name: "Client error", status: http.StatusNotFound, level: zapcore.WarnLevel},
		{name: "Server error", status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mw.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/questions", nil))

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, int64(tt.status), entries[0].ContextMap()["status"])
			assert.Equal(t, "/questions", entries[0].ContextMap()["path"])
		})
	}
}

func TestRecover(t *testing.T) {
	mw, logs := newObservedMiddleware()
	h := mw.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestInstrument_SharesRecorder(t *testing.T) {
	mw, logs := newObservedMiddleware()
	h := mw.Logging(mw.Instrument("GET /x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, "hello", rr.Body.String())
	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].ContextMap()["bytes"])
}
