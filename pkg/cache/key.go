package cache

import "fmt"

// Category is a cached result category. It is the key prefix in Redis.
type Category string

const (
	CategoryAccountInfo Category = "account_info"
	CategoryPosts       Category = "posts"
	CategoryFollowers   Category = "followers"
	CategoryComments    Category = "comments"
	CategoryLikes       Category = "likes"
)

// IsList reports whether the category is stored as an append-only list.
// account_info is the only scalar category.
func (c Category) IsList() bool {
	switch c {
	case CategoryPosts, CategoryFollowers, CategoryComments, CategoryLikes:
		return true
	default:
		return false
	}
}

// Key identifies a cache entry: a category plus a handle or media id.
type Key struct {
	Category Category
	ID       string
}

// String returns the Redis key.
// Format: <category>:<identifier>
//
// Example:
//
//	posts:instagram
func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.Category, k.ID)
}
