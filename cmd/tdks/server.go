package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sozluk "github.com/clydeofficial/tdk-sozluk"
)

const requestIDHeader = "X-Request-Id"

type Server struct {
	http.Server
	mux    http.ServeMux
	conf   *Config
	logger *zap.Logger
	client *sozluk.Client
}

func New(logger *zap.Logger, conf *Config, client *sozluk.Client) *Server {
	s := Server{
		conf:   conf,
		logger: logger,
		client: client,
	}
	s.mux.HandleFunc("/search", s.middleLogging(s.handleSearch()))
	s.mux.HandleFunc("/all", s.middleLogging(s.handleAll()))
	s.mux.HandleFunc("/dictionaries", s.middleLogging(s.handleDictionaries()))
	s.Addr = conf.Host
	s.Server.Handler = &s.mux
	return &s
}

// Close shuts the listener down and then releases the dictionary client.
// Both are attempted even when the first fails.
func (s *Server) Close(ctx context.Context) error {
	var shutdownErr, clientErr error
	if err := s.Server.Shutdown(ctx); err != nil {
		shutdownErr = fmt.Errorf("shutdown server: %w", err)
	}
	if err := s.client.Close(ctx); err != nil {
		clientErr = fmt.Errorf("close dictionary client: %w", err)
	}
	return errors.Join(shutdownErr, clientErr)
}

// respondJSON writes v with status. A value that fails to encode is logged
// under the request id and answered with 500.
func (s *Server) respondJSON(ctx context.Context, w http.ResponseWriter, v interface{}, status int) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("response encoding failed", zap.Error(err), zap.String("request_id", requestID(ctx)))
		body, status = []byte(`{"error":"encoding error"}`), http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

type requestIDKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// middleLogging tags the request with an id, taken from X-Request-Id when
// the caller sent one, and logs it.
func (s *Server) middleLogging(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("client", r.RemoteAddr),
			zap.String("method", r.Method),
		)
		handler(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	}
}
