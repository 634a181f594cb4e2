package lookup

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/booktracer/internal/ratelimit"
)

// newIPv4TestServer starts a test server bound to IPv4 loopback to avoid IPv6 listener issues.
func newIPv4TestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)

	server := httptest.NewUnstartedServer(handler)
	server.Listener = listener
	server.Start()

	t.Cleanup(server.Close)
	return server
}

// testOpenLibrary builds an OpenLibrary source pointed at a test server,
// with a limiter generous enough that tests never block.
func testOpenLibrary(server *httptest.Server) *OpenLibrary {
	return &OpenLibrary{
		baseURL: server.URL,
		client:  server.Client(),
		limiter: ratelimit.New("OpenLibrary", 100),
	}
}

// testGoogleBooks builds a GoogleBooks source pointed at a test server.
func testGoogleBooks(server *httptest.Server, apiKey string) *GoogleBooks {
	return &GoogleBooks{
		baseURL: server.URL,
		apiKey:  apiKey,
		client:  server.Client(),
		limiter: ratelimit.New("GoogleBooks", 100),
	}
}
