package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// WeatherTool fetches the current conditions for a latitude/longitude
// from Open-Meteo's no-key forecast endpoint, matching the teacher's
// internal/tools/websearch pattern of a thin stdlib HTTP client wrapped
// in a Tool rather than pulling in a weather SDK for one endpoint.
type WeatherTool struct {
	client *http.Client
}

func NewWeatherTool() WeatherTool {
	return WeatherTool{client: &http.Client{Timeout: 10 * time.Second}}
}

func (WeatherTool) Name() string        { return "get_weather" }
func (WeatherTool) Description() string {
	return "Returns current temperature and windspeed for a latitude/longitude."
}
func (WeatherTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"latitude":{"type":"number"},"longitude":{"type":"number"}},"required":["latitude","longitude"]}`)
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
}

func (t WeatherTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(params.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(params.Longitude, 'f', -1, 64))
	q.Set("current_weather", "true")
	endpoint := "https://api.open-meteo.com/v1/forecast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "unavailable", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "unavailable", nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "unavailable", nil
	}

	var parsed openMeteoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "unavailable", nil
	}

	return fmt.Sprintf("temperature=%.1f°C windspeed=%.1fkm/h", parsed.CurrentWeather.Temperature, parsed.CurrentWeather.WindSpeed), nil
}
