package exchange

import (
	"strconv"
	"strings"

	"github.com/jimezsa/mxdl/internal/models"
)

// Request is the parsed form of the command-line tokens.
type Request struct {
	Site    string
	Query   models.Query
	Options models.RunOptions
}

// ParseArgs turns "<site>" and "key=value" tokens into a Request.
// limit, path and newname become run options; every other key is
// forwarded to the search endpoint, overriding the API defaults.
func ParseArgs(tokens []string, defaults models.RunOptions) (Request, error) {
	req := Request{
		Query:   models.DefaultQuery(),
		Options: defaults,
	}

	var sites []string
	for _, token := range tokens {
		key, value, pair, err := splitToken(token)
		if err != nil {
			return Request{}, err
		}

		if !pair {
			if !IsSite(token) {
				return Request{}, invalidToken(token)
			}
			sites = append(sites, token)
			continue
		}

		switch key {
		case "limit":
			limit, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return Request{}, invalidToken(token)
			}
			req.Options.Limit = limit
		case "path":
			req.Options.Path = value
		case "newname":
			req.Options.NewName = value
		default:
			req.Query[key] = value
		}
	}

	switch len(sites) {
	case 0:
		return Request{}, newError(KindInvalidArgument, nil, "a site is required: one of %s", strings.Join(SiteIDs(), ", "))
	case 1:
		req.Site = sites[0]
	default:
		return Request{}, newError(KindInvalidArgument, nil, "exactly one site is allowed, got %s", strings.Join(sites, ", "))
	}

	return req, nil
}

// splitToken splits on the first unescaped '='. "\=" stands for a
// literal '=' inside keys and values.
func splitToken(token string) (string, string, bool, error) {
	var (
		parts   []string
		current strings.Builder
	)
	for i := 0; i < len(token); i++ {
		switch {
		case token[i] == '\\' && i+1 < len(token) && token[i+1] == '=':
			current.WriteByte('=')
			i++
		case token[i] == '=':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(token[i])
		}
	}
	parts = append(parts, current.String())

	switch len(parts) {
	case 1:
		return "", "", false, nil
	case 2:
		if parts[0] == "" {
			return "", "", true, invalidToken(token)
		}
		return parts[0], parts[1], true, nil
	default:
		return "", "", true, invalidToken(token)
	}
}

func invalidToken(token string) *Error {
	return newError(KindInvalidArgument, nil, "%s is not a valid argument!", token)
}
