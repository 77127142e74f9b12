package schema

// Follower is one account following the requested account.
type Follower struct {
	ID                string `json:"id" validate:"required"`
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	IsPrivate         bool   `json:"is_private"`
	IsVerified        bool   `json:"is_verified"`
	ProfilePicURL     string `json:"profile_pic_url"`
	FollowedByViewer  bool   `json:"followed_by_viewer"`
	RequestedByViewer bool   `json:"requested_by_viewer"`
}

// PageInfo is the GraphQL-style pagination block of the followers endpoint.
type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

// FollowerEdge wraps a follower node.
type FollowerEdge struct {
	Node Follower `json:"node"`
}

// EdgeFollowedBy is the follower connection.
type EdgeFollowedBy struct {
	Count    int            `json:"count"`
	PageInfo PageInfo       `json:"page_info"`
	Edges    []FollowerEdge `json:"edges" validate:"dive"`
}

// FollowersData is the data section of /v1/user_followers_adv.
type FollowersData struct {
	EdgeFollowedBy EdgeFollowedBy `json:"edge_followed_by"`
}

// Followers returns the follower nodes in page order.
func (d *FollowersData) Followers() []Follower {
	followers := make([]Follower, 0, len(d.EdgeFollowedBy.Edges))
	for _, edge := range d.EdgeFollowedBy.Edges {
		followers = append(followers, edge.Node)
	}
	return followers
}

// NextCursor returns the end cursor, or "" when there is no next page.
func (d *FollowersData) NextCursor() string {
	if !d.EdgeFollowedBy.PageInfo.HasNextPage {
		return ""
	}
	return d.EdgeFollowedBy.PageInfo.EndCursor
}
