package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/instagram-api-client/pkg/apierr"
	"github.com/Sternrassler/instagram-api-client/pkg/instagram"
	"github.com/Sternrassler/instagram-api-client/pkg/metrics"
	"github.com/Sternrassler/instagram-api-client/pkg/pagination"
)

type server struct {
	ig    *instagram.Client
	redis *redis.Client
}

func newRouter(ig *instagram.Client, redisClient *redis.Client) http.Handler {
	s := &server{ig: ig, redis: redisClient}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/accounts/{handle}", s.handleAccountInfo)
		r.Get("/accounts/{handle}/posts", s.handleAccountPosts)
		r.Get("/accounts/{handle}/followers", s.handleAccountFollowers)
		r.Get("/media/{mediaID}/comments", s.handleMediaComments)
		r.Get("/media/{mediaID}/likes", s.handleMediaLikes)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		log.Info().
			Str("component", "http").
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status_code", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("Request served")
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Health check: Redis unreachable")
		http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *server) handleAccountInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.ig.AccountInfo(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *server) handleAccountPosts(w http.ResponseWriter, r *http.Request) {
	opts, ok := fetchOptions(w, r)
	if !ok {
		return
	}
	stream, err := s.ig.AccountPosts(r.Context(), chi.URLParam(r, "handle"), opts...)
	serveStream(w, stream, err)
}

func (s *server) handleAccountFollowers(w http.ResponseWriter, r *http.Request) {
	opts, ok := fetchOptions(w, r)
	if !ok {
		return
	}
	stream, err := s.ig.AccountFollowers(r.Context(), chi.URLParam(r, "handle"), opts...)
	serveStream(w, stream, err)
}

func (s *server) handleMediaComments(w http.ResponseWriter, r *http.Request) {
	opts, ok := fetchOptions(w, r)
	if !ok {
		return
	}
	stream, err := s.ig.MediaComments(r.Context(), chi.URLParam(r, "mediaID"), opts...)
	serveStream(w, stream, err)
}

func (s *server) handleMediaLikes(w http.ResponseWriter, r *http.Request) {
	opts, ok := fetchOptions(w, r)
	if !ok {
		return
	}
	stream, err := s.ig.MediaLikes(r.Context(), chi.URLParam(r, "mediaID"), opts...)
	serveStream(w, stream, err)
}

// fetchOptions parses ?max_pages. The range check is left to the client.
func fetchOptions(w http.ResponseWriter, r *http.Request) ([]instagram.FetchOption, bool) {
	raw := r.URL.Query().Get("max_pages")
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, apierr.Validation("parse query", fmt.Sprintf("max_pages must be an integer (got %q)", raw)))
		return nil, false
	}
	return []instagram.FetchOption{instagram.WithMaxPages(n)}, true
}

// serveStream writes records as newline-delimited JSON. A failure before the
// first record is reported with an error status; a later one ends the body
// with an error line.
func serveStream[T any](w http.ResponseWriter, stream *pagination.Stream[T], err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	defer stream.Close()

	if !stream.Next() {
		if err := stream.Err(); err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)
	for {
		if err := enc.Encode(stream.Item()); err != nil {
			log.Warn().Err(err).Msg("Client went away mid-stream")
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		if !stream.Next() {
			break
		}
	}

	if err := stream.Err(); err != nil {
		if encErr := enc.Encode(errorBody(err)); encErr != nil {
			log.Warn().Err(encErr).AnErr("stream_error", err).Msg("Failed to write stream error")
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func errorBody(err error) errorResponse {
	return errorResponse{Error: err.Error(), Kind: string(apierr.KindOf(err))}
}

// statusFor maps an error kind to the HTTP status of the proxy response.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apierr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apierr.ErrUpstream), errors.Is(err, apierr.ErrDecoding):
		return http.StatusBadGateway
	case errors.Is(err, apierr.ErrCacheBackend):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}
