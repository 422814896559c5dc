package panel

import "sort"

// RGBA is an 8-bit-per-channel colour as the backend expects it.
type RGBA struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
	A int `json:"a"`
}

// OpaqueBlack is the colour used whenever a colour input cannot be parsed.
var OpaqueBlack = RGBA{R: 0, G: 0, B: 0, A: 255}

// SceneCreateRequest asks the backend to add a scene.
type SceneCreateRequest struct {
	Name string `json:"name"`
}

// SceneListResponse lists every scene known to the backend, in backend order.
type SceneListResponse struct {
	Names []string `json:"names"`
}

// Background is the optional colour block drawn behind the task text.
type Background struct {
	Color RGBA `json:"color"`
}

// TaskRequest configures the on-screen task text.
type TaskRequest struct {
	Text       string      `json:"text"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	PosX       int         `json:"pos_x"`
	PosY       int         `json:"pos_y"`
	Color      RGBA        `json:"color"`
	Background *Background `json:"background,omitempty"`
}

// OverlayRequest configures the overlay text and its background.
type OverlayRequest struct {
	Text            string `json:"text"`
	TextWidth       int    `json:"text_width"`
	TextHeight      int    `json:"text_height"`
	TextPosX        int    `json:"text_posx"`
	TextPosY        int    `json:"text_posy"`
	TextColor       RGBA   `json:"text_color"`
	BackgroundColor RGBA   `json:"background_color"`
	Enabled         bool   `json:"enabled"`
}

// StreamUpdateRequest toggles streaming and recording. OutputFile is only
// present when recording is being switched off.
type StreamUpdateRequest struct {
	Stream     bool    `json:"stream"`
	Record     bool    `json:"record"`
	OutputFile *string `json:"output_file,omitempty"`
}

// AvatarStatusRequest makes the avatar speak the given text.
type AvatarStatusRequest struct {
	Text string `json:"text"`
}

// TwitchUpdateRequest edits the channel metadata.
type TwitchUpdateRequest struct {
	Title        string   `json:"title"`
	CategoryID   string   `json:"category_id,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
}

// CategorySearchRequest queries Twitch categories.
type CategorySearchRequest struct {
	Query string `json:"query"`
}

// Category is one Twitch category search hit. The field names match the
// backend's untagged Go struct encoding.
type Category struct {
	Name      string `json:"Name"`
	BoxArtURL string `json:"BoxArtUrl"`
	ID        string `json:"ID"`
}

// CategoryResults maps a category key (its display name) to the entry.
type CategoryResults map[string]Category

// Sorted returns the entries in key order with each Name set to its key, the
// order the backend encodes them in.
func (r CategoryResults) Sorted() []Category {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Category, 0, len(keys))
	for _, key := range keys {
		entry := r[key]
		entry.Name = key
		out = append(out, entry)
	}
	return out
}

// UnspecifiedRecordingID is sent when the recording identifier could not be
// parsed. The backend answers with 404 for it.
const UnspecifiedRecordingID int64 = -1

// YoutubeUploadRequest uploads a stored recording.
type YoutubeUploadRequest struct {
	RecordingID int64  `json:"recording_id"`
	PlaylistID  string `json:"playlist_id"`
}

// YoutubeCategoryRequest correlates a used Twitch category with a YouTube one.
type YoutubeCategoryRequest struct {
	RelatedID    string `json:"related_id"`
	CategoryName string `json:"category_name"`
}
