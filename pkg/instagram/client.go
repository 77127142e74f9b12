// Package instagram is the caller-facing API: five cache-first retrieval
// operations over the Instagram aggregation API.
//
// AccountInfo returns a single record. The list operations return a lazy
// pagination.Stream; nothing is requested until the caller pulls from it.
//
// Basic usage:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	ig, err := instagram.New(rdb, instagram.DefaultConfig(baseURL, apiKey))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	posts, err := ig.AccountPosts(ctx, "instagram", instagram.WithMaxPages(3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for post, err := range posts.All() {
//	    ...
//	}
package instagram

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/instagram-api-client/pkg/cache"
	"github.com/Sternrassler/instagram-api-client/pkg/client"
	"github.com/Sternrassler/instagram-api-client/pkg/logging"
	"github.com/Sternrassler/instagram-api-client/pkg/pagination"
	"github.com/Sternrassler/instagram-api-client/pkg/schema"
)

// Config holds the configuration of a Client.
type Config struct {
	// Upstream is the HTTP client configuration.
	Upstream client.Config

	// CacheTTL is the expiration applied on every cache write
	// (default: cache.DefaultTTL).
	CacheTTL time.Duration

	// StopAtLastPage ends list fetches at the first page without a next
	// cursor. By default only the page budget ends a fetch, and a page
	// without a cursor is followed by a request for the default page.
	StopAtLastPage bool
}

// DefaultConfig returns the default configuration for the given upstream.
func DefaultConfig(baseURL, apiKey string) Config {
	return Config{
		Upstream: client.DefaultConfig(baseURL, apiKey),
		CacheTTL: cache.DefaultTTL,
	}
}

// Client serves the five retrieval operations. It holds no per-call state
// and is safe for concurrent use.
type Client struct {
	upstream pagination.Upstream
	cfg      Config
	logger   zerolog.Logger

	accounts  *cache.Scalar[schema.AccountInfo]
	posts     *cache.List[schema.Post]
	followers *cache.List[schema.Follower]
	comments  *cache.List[schema.Comment]
	likes     *cache.List[schema.LikeUser]
}

// New creates a Client backed by redisClient.
func New(redisClient *redis.Client, cfg Config) (*Client, error) {
	if redisClient == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	up, err := client.New(cfg.Upstream)
	if err != nil {
		return nil, fmt.Errorf("create upstream client: %w", err)
	}

	return newClient(up, cache.NewStore(redisClient, cfg.CacheTTL), cfg), nil
}

func newClient(up pagination.Upstream, store *cache.Store, cfg Config) *Client {
	return &Client{
		upstream:  up,
		cfg:       cfg,
		logger:    logging.NewLogger("instagram"),
		accounts:  cache.NewScalar[schema.AccountInfo](store, cache.CategoryAccountInfo),
		posts:     cache.NewList[schema.Post](store, cache.CategoryPosts),
		followers: cache.NewList[schema.Follower](store, cache.CategoryFollowers),
		comments:  cache.NewList[schema.Comment](store, cache.CategoryComments),
		likes:     cache.NewList[schema.LikeUser](store, cache.CategoryLikes),
	}
}

// FetchOption configures a list operation.
type FetchOption func(*pagination.Options)

// WithMaxPages sets the page budget. It must be within
// [pagination.MinPages, pagination.MaxPages]; the operation fails with a
// validation error otherwise.
func WithMaxPages(n int) FetchOption {
	return func(o *pagination.Options) {
		o.MaxPages = n
	}
}

func (c *Client) options(opts []FetchOption) pagination.Options {
	o := pagination.Options{
		MaxPages:       pagination.DefaultPages,
		StopAtLastPage: c.cfg.StopAtLastPage,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AccountInfo returns the profile of handle, from cache when present.
// Only successfully decoded profiles are cached.
func (c *Client) AccountInfo(ctx context.Context, handle string) (*schema.AccountInfo, error) {
	info, found, err := c.accounts.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if found {
		return &info, nil
	}

	body, err := c.upstream.Get(ctx, PathUserInfo, url.Values{paramAccount: {handle}})
	if err != nil {
		return nil, err
	}

	data, err := client.Decode[schema.AccountInfo](PathUserInfo, body)
	if err != nil {
		return nil, err
	}

	if err := c.accounts.Set(ctx, handle, *data); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("category", string(cache.CategoryAccountInfo)).
		Str("identifier", handle).
		Msg("Fetched account info")
	return data, nil
}

// AccountPosts streams the posts of handle.
func (c *Client) AccountPosts(ctx context.Context, handle string, opts ...FetchOption) (*pagination.Stream[schema.Post], error) {
	return pagination.NewStream(ctx, postsEndpoint, c.upstream, c.posts, handle, c.options(opts))
}

// AccountFollowers streams the followers of handle.
func (c *Client) AccountFollowers(ctx context.Context, handle string, opts ...FetchOption) (*pagination.Stream[schema.Follower], error) {
	return pagination.NewStream(ctx, followersEndpoint, c.upstream, c.followers, handle, c.options(opts))
}

// MediaComments streams the comments on a media item, most popular first.
// mediaID may be a shortcode, a numeric id or a post URL.
func (c *Client) MediaComments(ctx context.Context, mediaID string, opts ...FetchOption) (*pagination.Stream[schema.Comment], error) {
	return pagination.NewStream(ctx, commentsEndpoint, c.upstream, c.comments, mediaID, c.options(opts))
}

// MediaLikes streams the accounts that liked a media item.
func (c *Client) MediaLikes(ctx context.Context, mediaID string, opts ...FetchOption) (*pagination.Stream[schema.LikeUser], error) {
	return pagination.NewStream(ctx, likesEndpoint, c.upstream, c.likes, mediaID, c.options(opts))
}
