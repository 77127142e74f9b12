package schema

// Instagram media_type values.
const (
	MediaTypeImage    = 1
	MediaTypeVideo    = 2
	MediaTypeCarousel = 8
)

// PostUser is the author embedded in a post.
type PostUser struct {
	ID            string `json:"id"`
	PK            string `json:"pk"`
	PKID          string `json:"pk_id"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	IsPrivate     bool   `json:"is_private"`
	IsVerified    bool   `json:"is_verified"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// Caption is the text attached to a post.
type Caption struct {
	Text string `json:"text"`
}

// MediaVersion is one rendition of an image or video.
type MediaVersion struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ImageVersions holds the candidate renditions of an image.
type ImageVersions struct {
	Candidates []MediaVersion `json:"candidates"`
}

// CarouselMedia is one slide of a carousel post.
type CarouselMedia struct {
	MediaType     int            `json:"media_type"`
	ImageVersions *ImageVersions `json:"image_versions2,omitempty"`
	VideoVersions []MediaVersion `json:"video_versions,omitempty"`
}

// Post is a single timeline post.
type Post struct {
	ID           string  `json:"id" validate:"required"`
	PK           string  `json:"pk"`
	Code         string  `json:"code"`
	TakenAt      int64   `json:"taken_at"`
	LikeCount    int     `json:"like_count"`
	MediaType    int     `json:"media_type"`
	CommentCount int     `json:"comment_count"`
	ReshareCount int     `json:"reshare_count"`
	Caption      Caption `json:"caption"`

	ImageVersions *ImageVersions  `json:"image_versions2,omitempty"`
	CarouselMedia []CarouselMedia `json:"carousel_media,omitempty"`
	VideoVersions []MediaVersion  `json:"video_versions,omitempty"`

	User PostUser `json:"user"`
}

// PostMedia is a flattened media item of a post.
type PostMedia struct {
	Type   string `json:"type"` // "image" or "video"
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Media flattens the post's renditions into one item per image or video,
// taking the first (largest) candidate of each.
func (p *Post) Media() []PostMedia {
	var media []PostMedia
	switch p.MediaType {
	case MediaTypeCarousel:
		for _, slide := range p.CarouselMedia {
			if m, ok := pickMedia(slide.MediaType, slide.ImageVersions, slide.VideoVersions); ok {
				media = append(media, m)
			}
		}
	default:
		if m, ok := pickMedia(p.MediaType, p.ImageVersions, p.VideoVersions); ok {
			media = append(media, m)
		}
	}
	return media
}

func pickMedia(mediaType int, images *ImageVersions, videos []MediaVersion) (PostMedia, bool) {
	switch {
	case mediaType == MediaTypeImage && images != nil && len(images.Candidates) > 0:
		c := images.Candidates[0]
		return PostMedia{Type: "image", URL: c.URL, Width: c.Width, Height: c.Height}, true
	case mediaType == MediaTypeVideo && len(videos) > 0:
		v := videos[0]
		return PostMedia{Type: "video", URL: v.URL, Width: v.Width, Height: v.Height}, true
	default:
		return PostMedia{}, false
	}
}

// PostsData is the data section of /v1/user_posts.
type PostsData struct {
	User       PostUser `json:"user"`
	NumResults int      `json:"num_results"`
	Items      []Post   `json:"items" validate:"dive"`
	NextMaxID  string   `json:"next_max_id"`
}
