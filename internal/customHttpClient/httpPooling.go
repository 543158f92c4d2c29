package customHttpClient

import (
	"net/http"

	"github.com/researchkit/researcherAPI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

// PooledClient is shared by the outbound API clients so they reuse
// connections instead of re-dialing per request.
func PooledClient() *http.Client {
	return pooledClient
}
