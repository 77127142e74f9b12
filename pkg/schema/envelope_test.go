package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_LikesOK(t *testing.T) {
	body := []byte(`{
		"status": "ok",
		"message": null,
		"data": {
			"users": [
				{"id": "1", "username": "alice", "full_name": "Alice", "is_private": false, "is_verified": true, "profile_pic_url": "https://cdn/1.jpg"},
				{"id": "2", "username": "bob", "full_name": "Bob", "is_private": true, "is_verified": false, "profile_pic_url": "https://cdn/2.jpg"}
			],
			"user_count": 2
		}
	}`)

	env, err := Decode[LikesData](body)
	require.NoError(t, err)
	assert.False(t, env.Failed())
	require.NotNil(t, env.Data)
	require.Len(t, env.Data.Users, 2)
	assert.Equal(t, "alice", env.Data.Users[0].Username)
	assert.Equal(t, "2", env.Data.Users[1].ID)
}

func TestDecode_FailStatusKeepsMessage(t *testing.T) {
	env, err := Decode[PostsData]([]byte(`{"status": "fail", "message": "user not found", "data": "garbage"}`))
	require.NoError(t, err)
	assert.True(t, env.Failed())
	assert.Equal(t, "user not found", env.Message)
	assert.Nil(t, env.Data)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>502 Bad Gateway</html>`},
		{name: "missing status", body: `{"data": {"users": [], "user_count": 0}}`},
		{name: "unknown status", body: `{"status": "maybe", "data": {"users": [], "user_count": 0}}`},
		{name: "ok without data", body: `{"status": "ok"}`},
		{name: "wrong data type", body: `{"status": "ok", "data": []}`},
		{name: "record missing id", body: `{"status": "ok", "data": {"users": [{"username": "x"}], "user_count": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[LikesData]([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDecode_AccountInfoRequiresIdentity(t *testing.T) {
	_, err := Decode[AccountInfo]([]byte(`{"status": "ok", "data": {"pk": "1", "id": "1"}}`))
	assert.Error(t, err, "username is required")

	env, err := Decode[AccountInfo]([]byte(`{"status": "ok", "data": {"pk": "1", "id": "1", "username": "alice", "follower_count": 42}}`))
	require.NoError(t, err)
	assert.Equal(t, 42, env.Data.FollowerCount)
}

func TestFollowersData_NextCursor(t *testing.T) {
	body := []byte(`{
		"status": "ok",
		"data": {"edge_followed_by": {
			"count": 10,
			"page_info": {"has_next_page": true, "end_cursor": "QVFE"},
			"edges": [{"node": {"id": "7", "username": "carol"}}]
		}}
	}`)

	env, err := Decode[FollowersData](body)
	require.NoError(t, err)
	assert.Equal(t, "QVFE", env.Data.NextCursor())
	assert.Equal(t, []Follower{{ID: "7", Username: "carol"}}, env.Data.Followers())

	env.Data.EdgeFollowedBy.PageInfo.HasNextPage = false
	assert.Empty(t, env.Data.NextCursor())
}
