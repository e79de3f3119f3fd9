package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client for the API served at address. A bare
// host:port gets the http scheme. Requests default to JSON and fail after
// timeout when it is positive.
//
//	client := utils.NewHTTPClient("localhost:3000", 10*time.Second)
//	resp, err := client.R().Get("/api/books")
func NewHTTPClient(address string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(normalizeBaseURL(address)).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

func normalizeBaseURL(address string) string {
	address = strings.TrimRight(strings.TrimSpace(address), "/")
	if address == "" {
		return ""
	}
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	return address
}
