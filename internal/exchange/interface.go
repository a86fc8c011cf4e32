package exchange

import fhttp "github.com/bogdanfinn/fhttp"

// Doer sends one HTTP request. *network.Client satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}
