// Package mvic talks to the Michigan Voter Information Center website and
// parses the header portions of its sample-ballot pages.
package mvic

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"miballot-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://mvic.sos.state.mi.us"

// ErrServiceUnavailable wraps every transient failure mode of the source
// site: connection errors, timeouts and HTTP >= 400. Callers may retry
// later; it is never a statement about ballot validity.
var ErrServiceUnavailable = errors.New("the MVIC website is temporarily unavailable")

type ClientOptions struct {
	BaseUrl string
	// path to a PEM bundle pinning the MVIC certificate chain; optional
	CACertificate string
	Timeout       time.Duration
}

type Client struct {
	BaseUrl string
	Http    *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetTimeout(opts.Timeout)
	// the site rejects obviously non-browser clients
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	if opts.CACertificate != "" {
		pem, err := os.ReadFile(opts.CACertificate)
		if err != nil {
			return nil, fmt.Errorf("read pinned certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", opts.CACertificate)
		}
		client.SetTLSClientConfig(&tls.Config{RootCAs: pool})
	}

	telemetry.InstrumentResty(client, "services/ballots/mvic")

	return &Client{
		BaseUrl: opts.BaseUrl,
		Http:    client,
	}, nil
}

// SampleBallotURL builds the preview URL for an (election, precinct) pair.
func SampleBallotURL(baseUrl string, electionID, precinctID int) string {
	return fmt.Sprintf("%s/SampleBallot?precinct=%d&election=%d", baseUrl, precinctID, electionID)
}

func (c *Client) URL(electionID, precinctID int) string {
	return SampleBallotURL(c.BaseUrl, electionID, precinctID)
}

// FetchBallot retrieves the raw sample-ballot HTML for an (election,
// precinct) pair. Transient failures come back as ErrServiceUnavailable.
func (c *Client) FetchBallot(ctx context.Context, electionID, precinctID int) (string, error) {
	if electionID <= 0 || precinctID <= 0 {
		return "", fmt.Errorf("election and precinct ids must be positive: %d, %d", electionID, precinctID)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("precinct", strconv.Itoa(precinctID)).
		SetQueryParam("election", strconv.Itoa(electionID)).
		Get("/SampleBallot")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	if res.StatusCode() >= 400 {
		return "", fmt.Errorf("%w: status %d", ErrServiceUnavailable, res.StatusCode())
	}

	// surrounding whitespace would otherwise register as a content change
	// on every refetch
	return strings.TrimSpace(string(res.Body())), nil
}
