package pagination

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Sternrassler/instagram-api-client/pkg/apierr"
	"github.com/Sternrassler/instagram-api-client/pkg/client"
)

// Page budget bounds.
const (
	MinPages     = 1
	MaxPages     = 10
	DefaultPages = 1
)

// Upstream performs one GET request and returns the body of a 2xx response.
// *client.Client implements it.
type Upstream interface {
	Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error)
}

// Cache is the list cache a stream reads from and populates.
// *cache.List implements it.
type Cache[T any] interface {
	Get(ctx context.Context, id string) ([]T, bool, error)
	Append(ctx context.Context, id string, item T) error
}

// Endpoint describes a paginated upstream endpoint whose decoded data section
// is D and whose records are T.
type Endpoint[D, T any] struct {
	// Name labels logs, metrics and errors (e.g. "posts").
	Name string

	// Path is the request path (e.g. "/v1/user_posts").
	Path string

	// IDParam is the query parameter carrying the identifier.
	IDParam string

	// CursorParam is the query parameter carrying the cursor. Empty when the
	// endpoint is not cursor-paginated.
	CursorParam string

	// Params are fixed query parameters sent with every request.
	Params url.Values

	// Cursor extracts the next cursor from a page, "" on the last page.
	// Nil when the endpoint is not cursor-paginated.
	Cursor func(*D) string

	// Items extracts the records of a page in order.
	Items func(*D) []T
}

// Query builds the query string for one request.
func (e Endpoint[D, T]) Query(id, cursor string) url.Values {
	query := url.Values{}
	for k, v := range e.Params {
		query[k] = append([]string(nil), v...)
	}
	query.Set(e.IDParam, id)
	if e.CursorParam != "" && cursor != "" {
		query.Set(e.CursorParam, cursor)
	}
	return query
}

// fetch requests and decodes one page.
func (e Endpoint[D, T]) fetch(ctx context.Context, up Upstream, id, cursor string) (items []T, next string, err error) {
	body, err := up.Get(ctx, e.Path, e.Query(id, cursor))
	if err != nil {
		return nil, "", err
	}

	data, err := client.Decode[D](e.Path, body)
	if err != nil {
		return nil, "", err
	}

	if e.Cursor != nil {
		next = e.Cursor(data)
	}
	return e.Items(data), next, nil
}

// ValidatePages checks a page budget against [MinPages, MaxPages].
func ValidatePages(op string, maxPages int) error {
	if maxPages < MinPages || maxPages > MaxPages {
		return apierr.Validation(op, fmt.Sprintf("max_pages must be between %d and %d (got %d)", MinPages, MaxPages, maxPages))
	}
	return nil
}
