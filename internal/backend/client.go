// Package backend is the HTTP client for the external GeoPersona round
// service: round generation and guess scoring are consumed here, never
// computed locally.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/geopersona/geopersona/internal/geo"
)

// Client talks to the round service at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a round-service client. timeout bounds each request;
// zero means 15 s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// roundPayload is the wire shape of POST /api/round. The map center arrives
// as a [lat, lon] pair, not an object.
type roundPayload struct {
	RoundID    string    `json:"roundId"`
	Character  string    `json:"character"`
	Monologue  string    `json:"monologue"`
	Hints      geo.Hints `json:"hints"`
	MapDefault struct {
		Center [2]float64 `json:"center"`
		Zoom   int        `json:"zoom"`
	} `json:"mapDefault"`
	MaxScore      int  `json:"maxScore"`
	AIEmbellished bool `json:"aiEmbellished"`
}

// CreateRound asks the backend for a fresh round generated with the given mode.
func (c *Client) CreateRound(ctx context.Context, mode geo.Mode) (*geo.Round, error) {
	body := map[string]string{"mode": string(mode)}

	var payload roundPayload
	if err := c.post(ctx, "/api/round", body, &payload); err != nil {
		return nil, fmt.Errorf("creating round: %w", err)
	}
	if payload.RoundID == "" {
		return nil, fmt.Errorf("creating round: backend returned no roundId")
	}

	return &geo.Round{
		ID:        payload.RoundID,
		Character: payload.Character,
		Monologue: payload.Monologue,
		Hints:     payload.Hints,
		MapDefault: geo.Viewport{
			Center: geo.Coord{Lat: payload.MapDefault.Center[0], Lon: payload.MapDefault.Center[1]},
			Zoom:   payload.MapDefault.Zoom,
		},
		MaxScore:      payload.MaxScore,
		AIEmbellished: payload.AIEmbellished,
	}, nil
}

// SubmitGuess scores a guess against the round's hidden answer.
func (c *Client) SubmitGuess(ctx context.Context, roundID string, guess geo.Coord) (*geo.Result, error) {
	path := "/api/round/" + url.PathEscape(roundID) + "/guess"

	var result geo.Result
	if err := c.post(ctx, path, guess, &result); err != nil {
		return nil, fmt.Errorf("submitting guess for round %s: %w", roundID, err)
	}
	return &result, nil
}

// Health probes the backend's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend health returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, errorMessage(resp.Body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// errorMessage extracts a human-readable message from an error body. The
// backend reports errors as {"detail": ...}; {"error": ...} is accepted too.
func errorMessage(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 4096))

	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(data) == 0 {
		return "no response body"
	}
	return string(data)
}
