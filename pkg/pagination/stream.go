package pagination

import (
	"context"
	"iter"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/instagram-api-client/pkg/logging"
)

type streamState int

const (
	stateInit streamState = iota
	stateCached
	stateFetching
	stateDone
)

// Options controls a stream.
type Options struct {
	// MaxPages is the page budget, within [MinPages, MaxPages].
	MaxPages int

	// StopAtLastPage ends the stream at the first page without a next cursor
	// instead of spending the remaining budget.
	StopAtLastPage bool
}

// Stream is a lazy, forward-only, single-pass sequence of records. It is not
// safe for concurrent use.
type Stream[T any] struct {
	ctx    context.Context
	id     string
	name   string
	cache  Cache[T]
	fetch  func(ctx context.Context, cursor string) ([]T, string, error)
	opts   Options
	logger zerolog.Logger

	state     streamState
	buf       []T
	pos       int
	item      T
	err       error
	cursor    string
	lastPage  bool
	pagesLeft int
	pages     int
	items     int
	started   time.Time
}

// NewStream validates the page budget and returns a stream over endpoint for
// id. No cache or upstream call happens before the first Next.
func NewStream[D, T any](ctx context.Context, endpoint Endpoint[D, T], up Upstream, cache Cache[T], id string, opts Options) (*Stream[T], error) {
	if err := ValidatePages(endpoint.Name, opts.MaxPages); err != nil {
		return nil, err
	}

	return &Stream[T]{
		ctx:   ctx,
		id:    id,
		name:  endpoint.Name,
		cache: cache,
		fetch: func(ctx context.Context, cursor string) ([]T, string, error) {
			return endpoint.fetch(ctx, up, id, cursor)
		},
		opts:      opts,
		logger:    logging.ForFetch("pagination", endpoint.Name, id),
		pagesLeft: opts.MaxPages,
	}, nil
}

// Next advances to the next record. It returns false at the end of the
// sequence or on error; check Err afterwards.
func (s *Stream[T]) Next() bool {
	for {
		if s.state == stateDone {
			return false
		}

		if s.pos < len(s.buf) {
			item := s.buf[s.pos]
			s.pos++
			if s.state == stateFetching {
				if err := s.cache.Append(s.ctx, s.id, item); err != nil {
					s.abort(err)
					return false
				}
			}
			s.item = item
			s.items++
			return true
		}

		switch s.state {
		case stateInit:
			s.checkCache()
		case stateCached:
			s.finish()
		case stateFetching:
			if s.pagesLeft == 0 || s.lastPage {
				s.logger.Info().
					Int("pages", s.pages).
					Int("items", s.items).
					Dur("duration", time.Since(s.started)).
					Msg("Fetch complete")
				s.finish()
				continue
			}
			s.fetchPage()
		}
	}
}

// checkCache moves INIT to STREAM_CACHED on a hit, FETCH_PAGE on a miss.
func (s *Stream[T]) checkCache() {
	cached, found, err := s.cache.Get(s.ctx, s.id)
	if err != nil {
		s.abort(err)
		return
	}

	if found {
		s.logger.Debug().Int("items", len(cached)).Msg("Serving from cache")
		s.state = stateCached
		s.buf, s.pos = cached, 0
		return
	}

	s.logger.Debug().Int("max_pages", s.opts.MaxPages).Msg("Cache miss, fetching from upstream")
	s.state = stateFetching
	s.started = time.Now()
}

func (s *Stream[T]) fetchPage() {
	items, next, err := s.fetch(s.ctx, s.cursor)
	if err != nil {
		s.abort(err)
		return
	}

	s.pages++
	s.pagesLeft--
	pagesFetched.WithLabelValues(s.name).Inc()

	s.logger.Debug().
		Int("page", s.pages).
		Str("cursor", s.cursor).
		Str("next_cursor", next).
		Int("items", len(items)).
		Msg("Fetched page")

	s.cursor = next
	if next == "" && s.opts.StopAtLastPage {
		s.lastPage = true
	}
	s.buf, s.pos = items, 0
}

func (s *Stream[T]) abort(err error) {
	s.err = err
	streamAborts.WithLabelValues(s.name).Inc()
	s.logger.Warn().Err(err).
		Int("pages", s.pages).
		Int("items", s.items).
		Msg("Fetch aborted")
	s.finish()
}

// finish records the delivered records once, whatever ended the stream.
func (s *Stream[T]) finish() {
	switch s.state {
	case stateCached:
		streamItems.WithLabelValues(s.name, "cache").Add(float64(s.items))
	case stateFetching:
		streamItems.WithLabelValues(s.name, "upstream").Add(float64(s.items))
	}
	s.state = stateDone
	s.buf = nil
	s.pos = 0
}

// Item returns the current record. Only valid after Next returned true.
func (s *Stream[T]) Item() T {
	return s.item
}

// Err returns the error that ended the stream, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

// Close ends the stream early. Records already yielded stay cached; no
// further page is requested. Close is idempotent.
func (s *Stream[T]) Close() error {
	if s.state != stateDone {
		s.logger.Debug().Int("items", s.items).Msg("Stream closed by consumer")
		s.finish()
	}
	return nil
}

// All returns the stream as a single-use iterator. A failure is delivered as
// a final (zero, err) pair. Breaking out of the loop closes the stream.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.Item(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect drains s into a slice. On error the records read so far are
// returned with it.
func Collect[T any](s *Stream[T]) ([]T, error) {
	defer s.Close()

	var items []T
	for s.Next() {
		items = append(items, s.Item())
	}
	return items, s.Err()
}
