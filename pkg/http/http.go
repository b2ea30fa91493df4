package http

import (
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/vrp/restappender/pkg/log"
)

// Client defines an http client object
type Client struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// ClientOptions defines the options to be set on the client.
// A zero Timeout leaves the request unbounded, a nil Transport uses http.DefaultTransport.
type ClientOptions struct {
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Sender provides an interface to the http client for sending a single request.
// Only a transport level failure yields an error, the status code is left to the caller.
type Sender interface {
	SendRequest(method, url string, body io.Reader, header http.Header) (*http.Response, error)
	SetOptions(options ClientOptions)
}

// SendRequest sends an http request with a defined method
func (c *Client) SendRequest(method, url string, body io.Reader, header http.Header) (*http.Response, error) {
	logger := log.PackageEntry("restappender/pkg/http")

	var httpClient = &http.Client{
		Timeout:   c.timeout,
		Transport: c.transport,
	}

	if c.timeout > 0 {
		logger.Debugf("Timeout set to %v", c.timeout)
	}

	request, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating %v request to %v", method, url)
	}
	logger.Debugf("New %v request to %v", method, url)

	for name, headers := range header {
		for _, h := range headers {
			request.Header.Add(name, h)
		}
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %v", url)
	}

	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		logger.WithField("HTTP Error", "401 (Unauthorized)").Debug("Credentials rejected by the collector")
	case http.StatusNotFound:
		logger.WithField("HTTP Error", "404 (Not Found)").Debug("Requested resource could not be found")
	case http.StatusPreconditionFailed:
		logger.WithField("HTTP Error", "412 (Precondition Failed)").Debug("Collector refused the request content")
	default:
		logger.WithField("HTTP Error", response.Status).Debug("Unexpected response status")
	}

	return response, nil
}

// SetOptions sets options used for the http client
func (c *Client) SetOptions(options ClientOptions) {
	c.timeout = options.Timeout
	c.transport = options.Transport
}
