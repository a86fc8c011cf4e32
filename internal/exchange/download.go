package exchange

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jimezsa/mxdl/internal/models"
)

// FileExtension is appended to every downloaded map.
const FileExtension = ".Map.Gbx"

const copyBufferSize = 32 << 10

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// DownloadResult reports what happened to one track.
type DownloadResult struct {
	Track   models.Track
	Path    string
	Bytes   int64
	Skipped bool
}

// FileName picks Name for rename mode "mx" and GbxMapName for anything
// else, then appends FileExtension.
func FileName(track models.Track, newName string) string {
	base := track.GbxMapName
	if newName == models.RenameMX {
		base = track.Name
	}
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if strings.TrimSpace(base) == "" {
		base = strconv.FormatInt(track.TrackID, 10)
	}
	return base + FileExtension
}

// DownloadAll fetches tracks one at a time. Existing files are reported
// as skipped; any other failure stops the loop and leaves the files
// written so far in place.
func (c *Client) DownloadAll(ctx context.Context, tracks []models.Track, opts models.RunOptions, notify func(DownloadResult)) error {
	if len(tracks) == 0 {
		return nil
	}
	if err := os.MkdirAll(dirOrCurrent(opts.Path), 0o755); err != nil {
		return newError(KindIO, err, "'%s' could not be created", opts.Path)
	}

	for _, track := range tracks {
		result, err := c.download(ctx, track, opts)
		if err != nil {
			if KindOf(err) != KindFileExists {
				return err
			}
			result.Skipped = true
		}
		if notify != nil {
			notify(result)
		}
	}
	return nil
}

func (c *Client) download(ctx context.Context, track models.Track, opts models.RunOptions) (DownloadResult, error) {
	result := DownloadResult{Track: track}

	resp, err := c.get(ctx, c.site.TrackDownloadURL(track.TrackID), nil)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	result.Path = filepath.Join(opts.Path, FileName(track, opts.NewName))
	written, err := writeExclusive(result.Path, resp.Body)
	if err != nil {
		return result, err
	}
	result.Bytes = written

	c.logger.Debug().Str("path", result.Path).Int64("bytes", written).Int64("track", track.TrackID).Msg("saved")
	return result, nil
}

// writeExclusive never replaces an existing file. A partially written
// file is removed again.
func writeExclusive(path string, body io.Reader) (int64, error) {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, newError(KindFileExists, nil, "File '%s' already exists. Skipped!", path)
		}
		return 0, newError(KindIO, err, "'%s' could not be created", path)
	}

	written, err := io.CopyBuffer(out, body, make([]byte, copyBufferSize))
	if err == nil {
		err = out.Close()
	} else {
		_ = out.Close()
	}
	if err != nil {
		_ = os.Remove(path)
		return written, newError(KindIO, err, "'%s' could not be written (wrote %d bytes)", path, written)
	}
	return written, nil
}

func dirOrCurrent(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	return path
}
