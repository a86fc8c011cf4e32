package exchange

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/mxdl/internal/models"
)

func testTracks(ids ...int64) []models.Track {
	tracks := make([]models.Track, 0, len(ids))
	for _, id := range ids {
		tracks = append(tracks, models.Track{
			TrackID:    id,
			Name:       "Track " + strings.Repeat("I", int(id)),
			GbxMapName: "Gbx" + strings.Repeat("I", int(id)),
		})
	}
	return tracks
}

func TestFileName(t *testing.T) {
	track := models.Track{TrackID: 9, Name: "Nice Map", GbxMapName: "$f00Nice/Map"}

	if got := FileName(track, models.RenameMX); got != "Nice Map.Map.Gbx" {
		t.Fatalf("FileName(mx) = %q", got)
	}
	if got := FileName(track, models.RenameGbx); got != "$f00Nice_Map.Map.Gbx" {
		t.Fatalf("FileName(gbx) = %q", got)
	}
	if got := FileName(track, "anything"); got != "$f00Nice_Map.Map.Gbx" {
		t.Fatalf("FileName(other) = %q, want GbxMapName", got)
	}
	if got := FileName(models.Track{TrackID: 9}, models.RenameGbx); got != "9.Map.Gbx" {
		t.Fatalf("FileName(empty) = %q", got)
	}
}

func TestDownloadAllWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "maps")
	client, doer := newTestClient(t, exchangeHandler(0))

	var results []DownloadResult
	opts := models.RunOptions{Path: dir, NewName: models.RenameMX, Limit: models.NoLimit}
	err := client.DownloadAll(context.Background(), testTracks(1, 2), opts, func(res DownloadResult) {
		results = append(results, res)
	})
	if err != nil {
		t.Fatalf("DownloadAll() error = %v", err)
	}

	wantPaths := []string{"/tracks/download/1", "/tracks/download/2"}
	if got := doer.paths(); strings.Join(got, ",") != strings.Join(wantPaths, ",") {
		t.Fatalf("requested %v, want %v", got, wantPaths)
	}
	if len(results) != 2 || results[0].Skipped || results[1].Skipped {
		t.Fatalf("results = %+v, want two saved files", results)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Track I.Map.Gbx"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "map-1" {
		t.Fatalf("file content = %q, want %q", data, "map-1")
	}
	if results[1].Bytes != int64(len("map-2")) {
		t.Fatalf("Bytes = %d, want %d", results[1].Bytes, len("map-2"))
	}
}

func TestDownloadAllSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "GbxI.Map.Gbx")
	if err := os.WriteFile(existing, []byte("original"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	client, doer := newTestClient(t, exchangeHandler(0))
	opts := models.RunOptions{Path: dir, NewName: models.RenameGbx, Limit: models.NoLimit}

	for run := 0; run < 2; run++ {
		var results []DownloadResult
		err := client.DownloadAll(context.Background(), testTracks(1, 2), opts, func(res DownloadResult) {
			results = append(results, res)
		})
		if err != nil {
			t.Fatalf("DownloadAll() run %d error = %v", run, err)
		}
		if !results[0].Skipped {
			t.Fatalf("run %d: results[0].Skipped = false, want true", run)
		}
		if results[0].Path != existing {
			t.Fatalf("run %d: skipped path = %q, want %q", run, results[0].Path, existing)
		}
		if results[1].Skipped != (run == 1) {
			t.Fatalf("run %d: results[1].Skipped = %v", run, results[1].Skipped)
		}
	}

	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "original" {
		t.Fatalf("existing file modified: %q", data)
	}
	if len(doer.requests) != 4 {
		t.Fatalf("requests = %d, want 4", len(doer.requests))
	}
}

func TestDownloadAllAbortsOnFailure(t *testing.T) {
	dir := t.TempDir()
	base := exchangeHandler(0)
	client, doer := newTestClient(t, func(u *url.URL) fakeResponse {
		if u.Path == "/tracks/download/2" {
			return fakeResponse{status: 404}
		}
		return base(u)
	})

	opts := models.RunOptions{Path: dir, NewName: models.RenameGbx, Limit: models.NoLimit}
	err := client.DownloadAll(context.Background(), testTracks(1, 2, 3), opts, nil)
	if KindOf(err) != KindIO {
		t.Fatalf("KindOf() = %v, want %v (err = %v)", KindOf(err), KindIO, err)
	}
	if !strings.Contains(err.Error(), "/tracks/download/2") || !strings.Contains(err.Error(), "HTTP Code: 404") {
		t.Fatalf("error = %q, want url and status", err.Error())
	}

	if got := doer.paths(); len(got) != 2 {
		t.Fatalf("requested %v, want the loop to stop at the failing track", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "GbxI.Map.Gbx")); err != nil {
		t.Fatalf("earlier download removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "GbxIII.Map.Gbx")); !os.IsNotExist(err) {
		t.Fatalf("later track written, stat err = %v", err)
	}
}

func TestDownloadAllNothingToDo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	client, doer := newTestClient(t, exchangeHandler(0))

	if err := client.DownloadAll(context.Background(), nil, models.RunOptions{Path: dir}, nil); err != nil {
		t.Fatalf("DownloadAll() error = %v", err)
	}
	if len(doer.requests) != 0 {
		t.Fatalf("requests = %d, want 0", len(doer.requests))
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("download dir created for empty run, stat err = %v", err)
	}
}
