package youtube

// Info is the subset of the yt-dlp info JSON the tools consume.
type Info struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Channel           string             `json:"channel"`
	ChannelID         string             `json:"channel_id"`
	Uploader          string             `json:"uploader"`
	UploadDate        string             `json:"upload_date"`
	Duration          *float64           `json:"duration"`
	DurationString    string             `json:"duration_string"`
	ViewCount         *int64             `json:"view_count"`
	LikeCount         *int64             `json:"like_count"`
	Tags              []string           `json:"tags"`
	Categories        []string           `json:"categories"`
	Thumbnail         string             `json:"thumbnail"`
	Subtitles         map[string][]Track `json:"subtitles"`
	AutomaticCaptions map[string][]Track `json:"automatic_captions"`
	Formats           []Format           `json:"formats"`
}

// Track is one caption rendition.
type Track struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// Format is one entry of the yt-dlp format list. Storyboard formats
// (sb0..sb3) carry the grid geometry and sprite fragments.
type Format struct {
	FormatID    string            `json:"format_id"`
	Ext         string            `json:"ext"`
	URL         string            `json:"url"`
	FPS         float64           `json:"fps"`
	Columns     int               `json:"columns"`
	Rows        int               `json:"rows"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Fragments   []Fragment        `json:"fragments"`
	HTTPHeaders map[string]string `json:"http_headers"`
}

// Fragment is one sprite sheet of a storyboard format.
type Fragment struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
}

// Metadata is the record written to metadata.json.
type Metadata struct {
	VideoID        string   `json:"video_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Channel        string   `json:"channel"`
	ChannelID      string   `json:"channel_id"`
	Uploader       string   `json:"uploader"`
	UploadDate     string   `json:"upload_date"`
	Duration       *float64 `json:"duration"`
	DurationString string   `json:"duration_string"`
	ViewCount      *int64   `json:"view_count"`
	LikeCount      *int64   `json:"like_count"`
	Tags           []string `json:"tags"`
	Categories     []string `json:"categories"`
	ThumbnailURL   string   `json:"thumbnail_url"`
	URL            string   `json:"url"`
}

// MetadataFromInfo builds the metadata record for videoID.
func MetadataFromInfo(videoID string, info Info) Metadata {
	tags := info.Tags
	if tags == nil {
		tags = []string{}
	}
	categories := info.Categories
	if categories == nil {
		categories = []string{}
	}
	return Metadata{
		VideoID:        videoID,
		Title:          info.Title,
		Description:    info.Description,
		Channel:        info.Channel,
		ChannelID:      info.ChannelID,
		Uploader:       info.Uploader,
		UploadDate:     info.UploadDate,
		Duration:       info.Duration,
		DurationString: info.DurationString,
		ViewCount:      info.ViewCount,
		LikeCount:      info.LikeCount,
		Tags:           tags,
		Categories:     categories,
		ThumbnailURL:   info.Thumbnail,
		URL:            WatchURL(videoID),
	}
}
