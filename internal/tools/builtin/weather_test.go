package builtin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// rewriteHostTransport forwards every request to a fixed test server,
// regardless of the request's original host, so WeatherTool's hardcoded
// Open-Meteo URL can be exercised against an httptest.Server.
type rewriteHostTransport struct {
	base http.RoundTripper
	host string
}

func (t rewriteHostTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	target, err := url.Parse(t.host)
	if err != nil {
		return nil, err
	}
	req.URL.Scheme = target.Scheme
	req.URL.Host = target.Host
	req.Host = target.Host
	return t.base.RoundTrip(req)
}

func TestWeatherToolParsesSuccessfulResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":21.5,"windspeed":8.2}}`))
	}))
	defer srv.Close()

	tool := WeatherTool{client: srv.Client()}
	tool.client.Transport = rewriteHostTransport{base: http.DefaultTransport, host: srv.URL}

	out, err := tool.Execute(context.Background(), []byte(`{"latitude":40.7,"longitude":-74.0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "temperature=21.5°C windspeed=8.2km/h" {
		t.Errorf("got %q", out)
	}
}

func TestWeatherToolInvalidInput(t *testing.T) {
	tool := NewWeatherTool()
	if _, err := tool.Execute(context.Background(), []byte(`not json`)); err == nil {
		t.Errorf("expected error for malformed input")
	}
}

func TestWeatherToolServerErrorReportsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tool := WeatherTool{client: srv.Client()}
	tool.client.Transport = rewriteHostTransport{base: http.DefaultTransport, host: srv.URL}

	out, err := tool.Execute(context.Background(), []byte(`{"latitude":1,"longitude":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "unavailable" {
		t.Errorf("got %q, want unavailable on server error", out)
	}
}
