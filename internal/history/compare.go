package history

import (
	"strconv"
	"strings"

	"github.com/jimezsa/mxdl/internal/models"
)

const keySeparator = "::"

// DiffStats captures stats for filtering already downloaded tracks.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Known       int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats captures stats for history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// Key identifies a track by site and TrackID.
func Key(track models.Track) (string, bool) {
	site := strings.ToLower(strings.TrimSpace(track.Site))
	if site == "" || track.TrackID <= 0 {
		return "", false
	}
	return site + keySeparator + strconv.FormatInt(track.TrackID, 10), true
}

// Diff returns the tracks from newTracks that are not in seenTracks.
// Tracks without a valid key are dropped; repeats keep the first copy.
func Diff(newTracks []models.Track, seenTracks []models.Track) ([]models.Track, DiffStats) {
	stats := DiffStats{
		TotalNew:  len(newTracks),
		TotalSeen: len(seenTracks),
	}

	seenKeys := make(map[string]struct{}, len(seenTracks))
	for _, track := range seenTracks {
		key, ok := Key(track)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		seenKeys[key] = struct{}{}
	}

	newKeys := make(map[string]struct{}, len(newTracks))
	unseen := make([]models.Track, 0, len(newTracks))
	for _, track := range newTracks {
		key, ok := Key(track)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, exists := newKeys[key]; exists {
			continue
		}
		newKeys[key] = struct{}{}
		if _, exists := seenKeys[key]; exists {
			stats.Known++
			continue
		}
		unseen = append(unseen, track)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends tracks missing from the history. Existing entries win.
func Merge(existing []models.Track, input []models.Track) ([]models.Track, MergeStats) {
	stats := MergeStats{
		TotalSeen:  len(existing),
		TotalInput: len(input),
	}

	keys := make(map[string]struct{}, len(existing)+len(input))
	out := make([]models.Track, 0, len(existing)+len(input))

	for _, track := range existing {
		key, ok := Key(track)
		if !ok {
			stats.InvalidSeen++
			out = append(out, track)
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, track)
	}

	for _, track := range input {
		key, ok := Key(track)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, track)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
