package schema

// BioLink is a link shown on a profile.
type BioLink struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ProfilePic is one rendition of a profile picture.
type ProfilePic struct {
	Height int    `json:"height"`
	Width  int    `json:"width"`
	URL    string `json:"url"`
}

// AccountInfo is the profile of a single account. It is the only
// non-paginated record.
type AccountInfo struct {
	PK     string `json:"pk" validate:"required"`
	ID     string `json:"id" validate:"required"`
	FbidV2 string `json:"fbid_v2"`

	Username   string `json:"username" validate:"required"`
	FullName   string `json:"full_name"`
	Biography  string `json:"biography"`
	Category   string `json:"category"`
	IsBusiness bool   `json:"is_business"`

	PublicEmail        string `json:"public_email"`
	PublicPhoneNumber  string `json:"public_phone_number"`
	ContactPhoneNumber string `json:"contact_phone_number"`
	CityName           string `json:"city_name"`

	BioLinks []BioLink `json:"bio_links"`

	MediaCount     int `json:"media_count"`
	FollowerCount  int `json:"follower_count"`
	FollowingCount int `json:"following_count"`

	ProfilePicURL        string       `json:"profile_pic_url"`
	HDProfilePicURLInfo  ProfilePic   `json:"hd_profile_pic_url_info"`
	HDProfilePicVersions []ProfilePic `json:"hd_profile_pic_versions"`
}
