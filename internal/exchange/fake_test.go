package exchange

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
)

const testHostTemplate = "https://{site}.exchange.test"

type fakeResponse struct {
	status      int
	body        string
	contentType string
}

type fakeDoer struct {
	requests []*url.URL
	handler  func(u *url.URL) fakeResponse
}

func (f *fakeDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	f.requests = append(f.requests, req.URL)
	res := f.handler(req.URL)
	header := fhttp.Header{}
	if res.contentType != "" {
		header.Set("Content-Type", res.contentType)
	}
	return &fhttp.Response{
		StatusCode: res.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(res.body)),
		Request:    req,
	}, nil
}

func (f *fakeDoer) paths() []string {
	out := make([]string, 0, len(f.requests))
	for _, u := range f.requests {
		out = append(out, u.Path)
	}
	return out
}

func newTestClient(t *testing.T, handler func(u *url.URL) fakeResponse) (*Client, *fakeDoer) {
	t.Helper()
	site, ok := LookupSite(testHostTemplate, SiteTrackMania)
	if !ok {
		t.Fatalf("LookupSite() ok = false")
	}
	doer := &fakeDoer{handler: handler}
	return NewClient(doer, site, zerolog.Nop()), doer
}

// exchangeHandler serves a search index of total tracks and a download
// endpoint returning "map-<id>" for every track.
func exchangeHandler(total int) func(u *url.URL) fakeResponse {
	return func(u *url.URL) fakeResponse {
		if strings.HasPrefix(u.Path, "/tracks/download/") {
			id := strings.TrimPrefix(u.Path, "/tracks/download/")
			return fakeResponse{status: 200, body: "map-" + id}
		}

		q := u.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		page, _ := strconv.Atoi(q.Get("page"))
		if page < 1 {
			page = 1
		}

		var results []string
		for i := 0; i < limit; i++ {
			id := (page-1)*PageSize + i + 1
			if id > total {
				break
			}
			results = append(results, fmt.Sprintf(`{"TrackID":%d,"Name":"Track %d","GbxMapName":"Gbx%d"}`, id, id, id))
		}
		return fakeResponse{
			status: 200,
			body:   fmt.Sprintf(`{"totalItemCount":%d,"results":[%s]}`, total, strings.Join(results, ",")),
		}
	}
}
