package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/mxdl/internal/models"
)

// ReadTracks reads a JSON array of tracks from path.
func ReadTracks(path string) ([]models.Track, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Track{}, nil
	}

	var tracks []models.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, err
	}
	if tracks == nil {
		return []models.Track{}, nil
	}
	return tracks, nil
}

// ReadTracksAllowMissing treats a missing file as an empty history.
func ReadTracksAllowMissing(path string) ([]models.Track, error) {
	tracks, err := ReadTracks(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Track{}, nil
		}
		return nil, err
	}
	return tracks, nil
}

// WriteTracks writes tracks as pretty JSON.
func WriteTracks(path string, tracks []models.Track) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	if tracks == nil {
		tracks = []models.Track{}
	}
	data, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Update merges tracks into the history file at path.
func Update(path string, tracks []models.Track) (MergeStats, error) {
	existing, err := ReadTracksAllowMissing(path)
	if err != nil {
		return MergeStats{}, fmt.Errorf("read history: %w", err)
	}

	merged, stats := Merge(existing, tracks)
	if err := WriteTracks(path, merged); err != nil {
		return stats, fmt.Errorf("write history: %w", err)
	}
	return stats, nil
}
