package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
)

const errorBodyLimit = 64 << 10

func (c *Client) get(ctx context.Context, target string, headers map[string]string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, newError(KindIO, err, "'%s' could not be requested", target)
	}

	applyHeaders(req, headers)
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, newError(KindIO, err, "'%s' could not be reached!", target)
	}

	c.logger.Debug().Str("url", target).Int("status", resp.StatusCode).Msg("response")
	if resp.StatusCode != fhttp.StatusOK {
		defer resp.Body.Close()
		return nil, statusError(target, resp)
	}
	return resp, nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "*/*"
	}
	if _, ok := headers["accept-language"]; !ok {
		headers["accept-language"] = "en-US,en;q=0.9"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}

func statusError(target string, resp *fhttp.Response) *Error {
	msg := fmt.Sprintf("'%s' could not be reached! HTTP Code: %d", target, resp.StatusCode)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if title := htmlTitle(resp.Header.Get("Content-Type"), body); title != "" {
		msg += " (" + title + ")"
	}
	return &Error{Kind: KindIO, Msg: msg}
}

// htmlTitle pulls the <title> out of an HTML error page, if that is
// what the exchange answered with.
func htmlTitle(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !strings.Contains(strings.ToLower(contentType), "html") && !bytes.Contains(bytes.ToLower(body), []byte("<html")) {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

func decodeJSON(target string, body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return newError(KindMalformedResponse, err, "'%s' returned an unreadable body", target)
	}
	return nil
}
