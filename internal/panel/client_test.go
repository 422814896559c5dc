package panel_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"strmctl/internal/panel"
	"strmctl/internal/services"
	"strmctl/internal/testsupport"
)

type capturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type fakeBackend struct {
	t        *testing.T
	server   *httptest.Server
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	reply    string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{t: t, status: http.StatusOK}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		fb.mu.Lock()
		fb.requests = append(fb.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		status, reply := fb.status, fb.reply
		fb.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) respond(status int, reply string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.status = status
	fb.reply = reply
}

func (fb *fakeBackend) last() capturedRequest {
	fb.t.Helper()
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.requests) == 0 {
		fb.t.Fatal("expected at least one request")
	}
	return fb.requests[len(fb.requests)-1]
}

func (fb *fakeBackend) lastJSON() map[string]any {
	fb.t.Helper()
	var body map[string]any
	if err := json.Unmarshal(fb.last().Body, &body); err != nil {
		fb.t.Fatalf("decode request body: %v", err)
	}
	return body
}

func newClient(t *testing.T, opts panel.Options) *panel.Client {
	t.Helper()
	client, err := panel.New(opts)
	if err != nil {
		t.Fatalf("panel.New: %v", err)
	}
	return client
}

func TestCreateSceneReturnsBackendOrder(t *testing.T) {
	fb := newFakeBackend(t)
	fb.respond(http.StatusOK, `{"names":["Main","Intro","Be Right Back"]}`)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	names, err := client.CreateScene(context.Background(), "Be Right Back")
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	if strings.Join(names, "|") != "Main|Intro|Be Right Back" {
		t.Fatalf("unexpected names: %v", names)
	}
	req := fb.last()
	if req.Method != http.MethodPost || req.Path != "/obs/scene/create" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
	if got := fb.lastJSON()["name"]; got != "Be Right Back" {
		t.Fatalf("unexpected name: %v", got)
	}
}

func TestCreateSceneSendsEmptyName(t *testing.T) {
	fb := newFakeBackend(t)
	fb.respond(http.StatusOK, `{"names":null}`)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	names, err := client.CreateScene(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Fatalf("expected empty non-nil names, got %#v", names)
	}
	body := fb.lastJSON()
	if v, ok := body["name"]; !ok || v != "" {
		t.Fatalf("expected empty name to be sent, got %v", body)
	}
}

func TestRequestsCarryJSONHeadersAndRequestID(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL, UserAgent: "strmctl/test"})

	if err := client.SubmitTask(context.Background(), panel.TaskRequest{Text: "hi", Color: panel.OpaqueBlack}); err != nil {
		t.Fatalf("SubmitTask: %v", err)
	}
	req := fb.last()
	if got := req.Header.Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := req.Header.Get("User-Agent"); got != "strmctl/test" {
		t.Fatalf("unexpected user agent %q", got)
	}
	if _, err := uuid.Parse(req.Header.Get("X-Request-ID")); err != nil {
		t.Fatalf("expected uuid request id, got %q", req.Header.Get("X-Request-ID"))
	}
	if req.Header.Get("Authorization") != "" {
		t.Fatalf("no credentials configured, got %q", req.Header.Get("Authorization"))
	}

	ctx := services.WithRequestID(context.Background(), "req-42")
	if err := client.SubmitOverlay(ctx, panel.OverlayRequest{}); err != nil {
		t.Fatalf("SubmitOverlay: %v", err)
	}
	if got := fb.last().Header.Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("expected context request id, got %q", got)
	}
}

func TestBaseURLPathPrefixIsKept(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL + "/panel/"})

	if err := client.SubmitTask(context.Background(), panel.TaskRequest{}); err != nil {
		t.Fatalf("SubmitTask: %v", err)
	}
	if got := fb.last().Path; got != "/panel/obs/task" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestSubmitTaskEncodesBackendFieldNames(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	err := client.SubmitTask(context.Background(), panel.TaskRequest{
		Text:       "Write tests",
		Width:      400,
		Height:     80,
		PosX:       12,
		PosY:       34,
		Color:      panel.RGBA{R: 26, G: 43, B: 60, A: 255},
		Background: &panel.Background{Color: panel.OpaqueBlack},
	})
	if err != nil {
		t.Fatalf("SubmitTask: %v", err)
	}
	body := fb.lastJSON()
	if body["pos_x"] != float64(12) || body["pos_y"] != float64(34) {
		t.Fatalf("unexpected position: %v", body)
	}
	color, ok := body["color"].(map[string]any)
	if !ok || color["r"] != float64(26) || color["a"] != float64(255) {
		t.Fatalf("unexpected color: %v", body["color"])
	}
	if _, ok := body["background"].(map[string]any); !ok {
		t.Fatalf("expected background block: %v", body)
	}
}

func TestSubmitOverlayEncodesBackendFieldNames(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	if err := client.SubmitOverlay(context.Background(), panel.OverlayRequest{Text: "BRB", TextPosX: 5, TextPosY: 6}); err != nil {
		t.Fatalf("SubmitOverlay: %v", err)
	}
	req := fb.last()
	if req.Path != "/obs/overlay" {
		t.Fatalf("unexpected path %q", req.Path)
	}
	body := fb.lastJSON()
	for _, key := range []string{"text", "text_width", "text_height", "text_posx", "text_posy", "text_color", "background_color", "enabled"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing %q in %v", key, body)
		}
	}
}

func TestUpdateStreamOmitsOutputFileUnlessSet(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	if err := client.UpdateStream(context.Background(), panel.StreamUpdateRequest{Stream: true}); err != nil {
		t.Fatalf("UpdateStream: %v", err)
	}
	if strings.Contains(string(fb.last().Body), "output_file") {
		t.Fatalf("output_file must be absent: %s", fb.last().Body)
	}

	name := "default.mp4"
	if err := client.UpdateStream(context.Background(), panel.StreamUpdateRequest{OutputFile: &name}); err != nil {
		t.Fatalf("UpdateStream: %v", err)
	}
	if got := fb.lastJSON()["output_file"]; got != "default.mp4" {
		t.Fatalf("unexpected output_file %v", got)
	}
}

func TestUpdateStreamSurfacesServerError(t *testing.T) {
	fb := newFakeBackend(t)
	fb.respond(http.StatusInternalServerError, "obs websocket closed\n")
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	err := client.UpdateStream(context.Background(), panel.StreamUpdateRequest{Record: true})
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *panel.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if statusErr.Endpoint != "/obs/stream" || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
	if err.Error() != "obs websocket closed" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, services.ErrServer) || errors.Is(err, services.ErrNotFound) {
		t.Fatalf("unexpected classification for %v", err)
	}
	if services.FailureKind(err) != "server" {
		t.Fatalf("unexpected failure kind %q", services.FailureKind(err))
	}
}

func TestStatusErrorWithoutBodyUsesStatusText(t *testing.T) {
	fb := newFakeBackend(t)
	fb.respond(http.StatusBadGateway, "")
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	err := client.SubmitTask(context.Background(), panel.TaskRequest{})
	if err == nil || !strings.Contains(err.Error(), "502 Bad Gateway") {
		t.Fatalf("expected status text, got %v", err)
	}
	if panel.StatusCode(err) != http.StatusBadGateway {
		t.Fatalf("unexpected status code %d", panel.StatusCode(err))
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()
	client := newClient(t, panel.Options{BaseURL: base, Timeout: time.Second})

	err := client.SetAvatarStatus(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !panel.IsUnavailable(err) || !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if panel.StatusCode(err) != 0 {
		t.Fatalf("transport errors carry no status, got %d", panel.StatusCode(err))
	}
}

func TestCancelledContextIsNotUnavailable(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.SubmitTask(ctx, panel.TaskRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAvatarStatus(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	if err := client.SetAvatarStatus(context.Background(), "Thanks for the follow!"); err != nil {
		t.Fatalf("SetAvatarStatus: %v", err)
	}
	if got := fb.lastJSON()["text"]; got != "Thanks for the follow!" {
		t.Fatalf("unexpected text %v", got)
	}

	talking, err := client.AvatarTalking(context.Background())
	if err != nil || !talking {
		t.Fatalf("expected talking, got %v %v", talking, err)
	}
	if fb.last().Method != http.MethodGet || fb.last().Path != "/avatar_status" {
		t.Fatalf("unexpected probe request %s %s", fb.last().Method, fb.last().Path)
	}

	fb.respond(http.StatusNotFound, "")
	talking, err = client.AvatarTalking(context.Background())
	if err != nil || talking {
		t.Fatalf("expected idle, got %v %v", talking, err)
	}

	fb.respond(http.StatusInternalServerError, "tts offline")
	if _, err := client.AvatarTalking(context.Background()); err == nil || err.Error() != "tts offline" {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestUpdateTwitchMetadataNeverSendsNullTags(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	if err := client.UpdateTwitchMetadata(context.Background(), panel.TwitchUpdateRequest{Title: "Live"}); err != nil {
		t.Fatalf("UpdateTwitchMetadata: %v", err)
	}
	req := fb.last()
	if req.Path != "/twitch/update" {
		t.Fatalf("unexpected path %q", req.Path)
	}
	body := fb.lastJSON()
	tags, ok := body["tags"].([]any)
	if !ok || len(tags) != 0 {
		t.Fatalf("expected empty tag list, got %#v", body["tags"])
	}
	if _, ok := body["category_id"]; ok {
		t.Fatalf("category must be omitted: %v", body)
	}
}

func TestSearchCategoriesOverridesNameWithKey(t *testing.T) {
	fb := newFakeBackend(t)
	fb.respond(http.StatusOK, `{
		"Just Chatting": {"Name": "", "BoxArtUrl": "https://img/jc.jpg", "ID": "509658"},
		"Art": {"Name": "stale", "BoxArtUrl": "https://img/art.jpg", "ID": "509660"}
	}`)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	results, err := client.SearchCategories(context.Background(), "ch")
	if err != nil {
		t.Fatalf("SearchCategories: %v", err)
	}
	if got := fb.lastJSON()["query"]; got != "ch" {
		t.Fatalf("unexpected query %v", got)
	}
	sorted := results.Sorted()
	if len(sorted) != 2 {
		t.Fatalf("expected 2 results, got %d", len(sorted))
	}
	if sorted[0].Name != "Art" || sorted[0].ID != "509660" {
		t.Fatalf("unexpected first entry %+v", sorted[0])
	}
	if sorted[1].Name != "Just Chatting" || sorted[1].BoxArtURL != "https://img/jc.jpg" {
		t.Fatalf("unexpected second entry %+v", sorted[1])
	}
}

func TestSearchCategoriesRejectsMalformedBody(t *testing.T) {
	fb := newFakeBackend(t)
	fb.respond(http.StatusOK, `[1,2,3]`)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	_, err := client.SearchCategories(context.Background(), "x")
	if !errors.Is(err, services.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestYoutubeErrorsAreVerbatim(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL})

	fb.respond(http.StatusNotFound, "recording not found")
	err := client.UploadToYoutube(context.Background(), panel.YoutubeUploadRequest{RecordingID: panel.UnspecifiedRecordingID})
	if err == nil || err.Error() != "recording not found" {
		t.Fatalf("expected verbatim text, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found classification, got %v", err)
	}
	body := fb.lastJSON()
	if body["recording_id"] != float64(-1) || body["playlist_id"] != "" {
		t.Fatalf("unexpected upload body %v", body)
	}

	fb.respond(http.StatusBadRequest, "unknown category: Speedrun")
	err = client.SetYoutubeCategory(context.Background(), panel.YoutubeCategoryRequest{RelatedID: "1", CategoryName: "Speedrun"})
	if err == nil || err.Error() != "unknown category: Speedrun" {
		t.Fatalf("expected verbatim text, got %v", err)
	}
	if fb.last().Path != "/youtube_category" {
		t.Fatalf("unexpected path %q", fb.last().Path)
	}

	fb.respond(http.StatusOK, "")
	if err := client.UploadToYoutube(context.Background(), panel.YoutubeUploadRequest{RecordingID: 7, PlaylistID: "PL1"}); err != nil {
		t.Fatalf("UploadToYoutube: %v", err)
	}
	if fb.last().Path != "/youtube_upload" {
		t.Fatalf("unexpected path %q", fb.last().Path)
	}
}

func TestStaticTokenWinsOverJWT(t *testing.T) {
	fb := newFakeBackend(t)
	client := newClient(t, panel.Options{BaseURL: fb.server.URL, Token: "abc123", JWTSecret: "secret"})

	if err := client.SetAvatarStatus(context.Background(), "hi"); err != nil {
		t.Fatalf("SetAvatarStatus: %v", err)
	}
	if got := fb.last().Header.Get("Authorization"); got != "Bearer abc123" {
		t.Fatalf("unexpected authorization %q", got)
	}
}

func TestJWTBearerIsSignedWithSecret(t *testing.T) {
	fb := newFakeBackend(t)
	issued := time.Now().Add(-time.Minute).Truncate(time.Second)
	client := newClient(t, panel.Options{
		BaseURL:    fb.server.URL,
		JWTSecret:  "s3cret",
		JWTSubject: "strmctl",
		JWTTTL:     10 * time.Minute,
		Now:        func() time.Time { return issued },
	})

	if err := client.SubmitTask(context.Background(), panel.TaskRequest{}); err != nil {
		t.Fatalf("SubmitTask: %v", err)
	}
	header := fb.last().Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		t.Fatalf("expected bearer token, got %q", header)
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte("s3cret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.Subject != "strmctl" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if !claims.ExpiresAt.Time.Equal(issued.Add(10 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt.Time)
	}
	if claims.ID == "" {
		t.Fatal("expected token id")
	}
}

func TestNewFromConfig(t *testing.T) {
	fb := newFakeBackend(t)
	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(fb.server.URL), testsupport.WithToken("cfg-token"))

	client, err := panel.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if client.BaseURL() != fb.server.URL {
		t.Fatalf("unexpected base url %q", client.BaseURL())
	}
	if err := client.SubmitOverlay(context.Background(), panel.OverlayRequest{}); err != nil {
		t.Fatalf("SubmitOverlay: %v", err)
	}
	req := fb.last()
	if req.Header.Get("Authorization") != "Bearer cfg-token" || req.Header.Get("User-Agent") != "strmctl/test" {
		t.Fatalf("unexpected headers %v", req.Header)
	}

	if _, err := panel.NewFromConfig(nil, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewFromConfigSignsJWT(t *testing.T) {
	fb := newFakeBackend(t)
	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(fb.server.URL), testsupport.WithJWTSecret("cfg-secret"))

	client, err := panel.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if err := client.SetAvatarStatus(context.Background(), "hi"); err != nil {
		t.Fatalf("SetAvatarStatus: %v", err)
	}
	raw, ok := strings.CutPrefix(fb.last().Header.Get("Authorization"), "Bearer ")
	if !ok {
		t.Fatal("expected bearer token")
	}
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte("cfg-secret"), nil
	}); err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.Subject != "strmctl" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}
