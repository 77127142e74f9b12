package instagram

import (
	"net/url"

	"github.com/Sternrassler/instagram-api-client/pkg/cache"
	"github.com/Sternrassler/instagram-api-client/pkg/pagination"
	"github.com/Sternrassler/instagram-api-client/pkg/schema"
)

// Upstream paths.
const (
	PathUserInfo      = "/v1/user_info"
	PathUserPosts     = "/v1/user_posts"
	PathUserFollowers = "/v1/user_followers_adv"
	PathMediaComments = "/v1/media_comments"
	PathMediaLikes    = "/v1/media_likes"
)

// Identifier query parameters.
const (
	paramAccount = "username_or_id"
	paramMedia   = "code_or_id_or_url"
)

var popular = url.Values{"sort_order": {"popular"}}

var postsEndpoint = pagination.Endpoint[schema.PostsData, schema.Post]{
	Name:        string(cache.CategoryPosts),
	Path:        PathUserPosts,
	IDParam:     paramAccount,
	CursorParam: "max_id",
	Cursor:      func(d *schema.PostsData) string { return d.NextMaxID },
	Items:       func(d *schema.PostsData) []schema.Post { return d.Items },
}

var followersEndpoint = pagination.Endpoint[schema.FollowersData, schema.Follower]{
	Name:        string(cache.CategoryFollowers),
	Path:        PathUserFollowers,
	IDParam:     paramAccount,
	CursorParam: "end_cursor",
	Cursor:      (*schema.FollowersData).NextCursor,
	Items:       (*schema.FollowersData).Followers,
}

var commentsEndpoint = pagination.Endpoint[schema.CommentsData, schema.Comment]{
	Name:        string(cache.CategoryComments),
	Path:        PathMediaComments,
	IDParam:     paramMedia,
	CursorParam: "min_id",
	Params:      popular,
	Cursor:      func(d *schema.CommentsData) string { return d.NextMinID },
	Items:       func(d *schema.CommentsData) []schema.Comment { return d.Comments },
}

// The likes endpoint returns a single, uncursored page.
var likesEndpoint = pagination.Endpoint[schema.LikesData, schema.LikeUser]{
	Name:    string(cache.CategoryLikes),
	Path:    PathMediaLikes,
	IDParam: paramMedia,
	Params:  popular,
	Items:   func(d *schema.LikesData) []schema.LikeUser { return d.Users },
}
