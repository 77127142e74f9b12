package schema

// UserSummary is the compact user shape embedded in comments and likes.
type UserSummary struct {
	ID            string `json:"id" validate:"required"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	IsPrivate     bool   `json:"is_private"`
	IsVerified    bool   `json:"is_verified"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// LikeUser is an account that liked a media item.
type LikeUser = UserSummary

// Comment is a comment on a media item.
type Comment struct {
	PK                string      `json:"pk" validate:"required"`
	Text              string      `json:"text"`
	User              UserSummary `json:"user"`
	UserID            string      `json:"user_id"`
	MediaID           string      `json:"media_id"`
	CreatedAt         int64       `json:"created_at"`
	CreatedAtUTC      int64       `json:"created_at_utc"`
	CommentLikeCount  int         `json:"comment_like_count"`
	ChildCommentCount int         `json:"child_comment_count"`
}

// CommentsData is the data section of /v1/media_comments.
type CommentsData struct {
	CommentCount    int       `json:"comment_count"`
	Comments        []Comment `json:"comments" validate:"dive"`
	HasMoreComments bool      `json:"has_more_comments"`
	SortOrder       string    `json:"sort_order"`
	NextMinID       string    `json:"next_min_id,omitempty"`
	PaginationToken string    `json:"pagination_token,omitempty"`
}

// LikesData is the data section of /v1/media_likes. The endpoint is not
// cursor-paginated.
type LikesData struct {
	Users     []LikeUser `json:"users" validate:"dive"`
	UserCount int        `json:"user_count"`
}
