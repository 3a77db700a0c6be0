package mvic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchBallotTrimsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("\n\n  <html><body>ballot</body></html>\n\t "))
		},
	))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	html, err := client.FetchBallot(context.Background(), 690, 1234)
	require.NoError(t, err)
	require.Equal(t, "<html><body>ballot</body></html>", html)
}

func TestFetchBallotUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.FetchBallot(context.Background(), 690, 1234)
	require.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestFetchBallotRejectsBadIDs(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	_, err = client.FetchBallot(context.Background(), 0, 1234)
	require.Error(t, err)
	_, err = client.FetchBallot(context.Background(), 690, -1)
	require.Error(t, err)
}
