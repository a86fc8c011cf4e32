package exchange

import (
	"fmt"
	"strings"
)

const (
	SiteTrackMania = "tm"
	SiteShootMania = "sm"
)

// DefaultHostTemplate is expanded per site by replacing {site}.
const DefaultHostTemplate = "https://{site}.mania-exchange.com"

const (
	searchPath   = "/tracksearch2/search"
	downloadPath = "/tracks/download/"
)

// Site addresses one exchange subdomain. Both sites expose the same
// endpoint shapes.
type Site struct {
	ID          string
	Host        string
	SearchURL   string
	DownloadURL string
}

func SiteIDs() []string {
	return []string{SiteTrackMania, SiteShootMania}
}

func Sites(hostTemplate string) map[string]Site {
	sites := make(map[string]Site, 2)
	for _, id := range SiteIDs() {
		sites[id] = newSite(hostTemplate, id)
	}
	return sites
}

// LookupSite resolves a site identifier against the host template.
func LookupSite(hostTemplate string, id string) (Site, bool) {
	if !IsSite(id) {
		return Site{}, false
	}
	return newSite(hostTemplate, id), true
}

func IsSite(id string) bool {
	for _, known := range SiteIDs() {
		if id == known {
			return true
		}
	}
	return false
}

func (s Site) TrackDownloadURL(trackID int64) string {
	return fmt.Sprintf("%s%d", s.DownloadURL, trackID)
}

func newSite(hostTemplate string, id string) Site {
	if strings.TrimSpace(hostTemplate) == "" {
		hostTemplate = DefaultHostTemplate
	}
	host := strings.TrimRight(strings.ReplaceAll(hostTemplate, "{site}", id), "/")
	return Site{
		ID:          id,
		Host:        host,
		SearchURL:   host + searchPath,
		DownloadURL: host + downloadPath,
	}
}
