package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("localhost:3000", 0)

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}

	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_BaseURL(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{address: "localhost:3000", want: "http://localhost:3000"},
		{address: "https://library.example.com/", want: "https://library.example.com"},
		{address: " http://127.0.0.1:8080 ", want: "http://127.0.0.1:8080"},
	}

	for _, tt := range tests {
		client := NewHTTPClient(tt.address, 0)
		if client.BaseURL != tt.want {
			t.Errorf("address %q: expected base URL %q, got %q", tt.address, tt.want, client.BaseURL)
		}
	}
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	client := NewHTTPClient("localhost:3000", 5*time.Second)

	if client.GetClient().Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", client.GetClient().Timeout)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("localhost:3000", 0)
	client2 := NewHTTPClient("localhost:3000", 0)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}
