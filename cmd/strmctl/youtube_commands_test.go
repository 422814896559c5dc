package main

import (
	"errors"
	"net/http"
	"testing"

	"strmctl/internal/panel"
)

func TestYoutubeUploadNonNumericID(t *testing.T) {
	env := setupCLITestEnv(t)
	env.backend.on(http.MethodPost, "/youtube_upload", http.StatusNotFound, "recording -1 not found")

	_, _, err := runCLI(t, env, "youtube", "upload", "latest")
	if err == nil {
		t.Fatal("expected upload error")
	}
	if formatError(err) != "recording -1 not found" {
		t.Fatalf("expected verbatim server text, got %q", formatError(err))
	}
	var statusErr *panel.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	body := env.backend.lastCall(t, "/youtube_upload").Body
	if body["recording_id"] != float64(-1) || body["playlist_id"] != "" {
		t.Fatalf("unexpected upload body %v", body)
	}
}

func TestYoutubeUploadWithPlaylist(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "youtube", "upload", "12", "--playlist", "PLabc")
	requireContains(t, out, "recording 12")
	body := env.backend.lastCall(t, "/youtube_upload").Body
	if body["recording_id"] != float64(12) || body["playlist_id"] != "PLabc" {
		t.Fatalf("unexpected upload body %v", body)
	}
}

func TestYoutubeCategory(t *testing.T) {
	env := setupCLITestEnv(t)

	mustRunCLI(t, env, "youtube", "category", "--related-id", "509660", "--name", "Entertainment")
	body := env.backend.lastCall(t, "/youtube_category").Body
	if body["related_id"] != "509660" || body["category_name"] != "Entertainment" {
		t.Fatalf("unexpected body %v", body)
	}

	env.backend.on(http.MethodPost, "/youtube_category", http.StatusBadRequest, "unknown YouTube category")
	_, _, err := runCLI(t, env, "youtube", "category")
	if err == nil || err.Error() != "unknown YouTube category" {
		t.Fatalf("expected verbatim error, got %v", err)
	}
}
