package forms

import (
	"strings"

	"strmctl/internal/panel"
)

// DefaultOutputFile names the recording when none is typed.
const DefaultOutputFile = "default.mp4"

// TaskForm holds the raw task editor fields.
type TaskForm struct {
	Text              string
	Width             string
	Height            string
	PosX              string
	PosY              string
	Color             string
	BackgroundEnabled bool
	BackgroundColor   string
}

// Build converts the form into a task request. The background block is only
// attached when the background toggle is on.
func (f TaskForm) Build() panel.TaskRequest {
	req := panel.TaskRequest{
		Text:   f.Text,
		Width:  ParseInt(f.Width),
		Height: ParseInt(f.Height),
		PosX:   ParseInt(f.PosX),
		PosY:   ParseInt(f.PosY),
		Color:  ParseColor(f.Color),
	}
	if f.BackgroundEnabled {
		req.Background = &panel.Background{Color: ParseColor(f.BackgroundColor)}
	}
	return req
}

// OverlayForm holds the raw overlay editor fields.
type OverlayForm struct {
	Text            string
	Width           string
	Height          string
	PosX            string
	PosY            string
	TextColor       string
	BackgroundColor string
	Enabled         bool
}

// Build converts the form into an overlay request.
func (f OverlayForm) Build() panel.OverlayRequest {
	return panel.OverlayRequest{
		Text:            f.Text,
		TextWidth:       ParseInt(f.Width),
		TextHeight:      ParseInt(f.Height),
		TextPosX:        ParseInt(f.PosX),
		TextPosY:        ParseInt(f.PosY),
		TextColor:       ParseColor(f.TextColor),
		BackgroundColor: ParseColor(f.BackgroundColor),
		Enabled:         f.Enabled,
	}
}

// StreamForm holds the stream/record toggles and the output name field.
type StreamForm struct {
	Stream     bool
	Record     bool
	OutputName string
	// DefaultOutputFile replaces DefaultOutputFile when set.
	DefaultOutputFile string
}

// Build converts the toggles into a stream update. wasRecording is the
// recording state the client believed in before this change; the output file
// is only sent when recording goes from on to off.
func (f StreamForm) Build(wasRecording bool) panel.StreamUpdateRequest {
	req := panel.StreamUpdateRequest{Stream: f.Stream, Record: f.Record}
	if wasRecording && !f.Record {
		name := f.OutputName
		if name == "" {
			name = strings.TrimSpace(f.DefaultOutputFile)
		}
		if name == "" {
			name = DefaultOutputFile
		}
		req.OutputFile = &name
	}
	return req
}

// TwitchForm holds the channel editor fields. An empty CategoryID means no
// category option is selected.
type TwitchForm struct {
	Title        string
	Description  string
	CategoryID   string
	CategoryName string
}

// Build converts the form plus the current tag set into an update request.
// Tags are sent in the given order and are never encoded as null.
func (f TwitchForm) Build(tags []string) panel.TwitchUpdateRequest {
	req := panel.TwitchUpdateRequest{
		Title:       f.Title,
		Description: f.Description,
		Tags:        append([]string{}, tags...),
	}
	if f.CategoryID != "" {
		req.CategoryID = f.CategoryID
		req.CategoryName = f.CategoryName
	}
	return req
}

// UploadForm holds the raw recording identifier (as rendered in the recording
// list) and the selected playlist.
type UploadForm struct {
	RecordingID string
	PlaylistID  string
}

// Build converts the form into an upload request.
func (f UploadForm) Build() panel.YoutubeUploadRequest {
	return panel.YoutubeUploadRequest{
		RecordingID: ParseRecordingID(f.RecordingID),
		PlaylistID:  f.PlaylistID,
	}
}

// CategoryForm holds the YouTube category correlation fields.
type CategoryForm struct {
	RelatedID    string
	CategoryName string
}

// Build converts the form into a category request.
func (f CategoryForm) Build() panel.YoutubeCategoryRequest {
	return panel.YoutubeCategoryRequest{
		RelatedID:    f.RelatedID,
		CategoryName: f.CategoryName,
	}
}
