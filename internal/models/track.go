package models

import "fmt"

// Track is one search result item returned by the exchange.
type Track struct {
	TrackID     int64  `json:"TrackID"`
	Name        string `json:"Name"`
	GbxMapName  string `json:"GbxMapName"`
	Username    string `json:"Username,omitempty"`
	AuthorLogin string `json:"AuthorLogin,omitempty"`
	MapType     string `json:"MapType,omitempty"`
	UploadedAt  string `json:"UploadedAt,omitempty"`
	AwardCount  int    `json:"AwardCount,omitempty"`

	// Site is stamped by the client; the API does not send it.
	Site string `json:"site,omitempty"`
}

// PageURL returns the public track page on the given host, e.g.
// https://tm.mania-exchange.com.
func (t Track) PageURL(host string) string {
	if t.TrackID <= 0 || host == "" {
		return ""
	}
	return fmt.Sprintf("%s/tracks/%d", host, t.TrackID)
}
