package server

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestEventsStreamPushesStateChanges(t *testing.T) {
	c := testClient(t, &stubService{})
	srv := httptest.NewServer(c.r)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/game/events", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(c.cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	// The subscription only exists once the handler is running, so keep
	// moving the pin until the stream catches a transition.
	done := make(chan struct{})
	defer close(done)
	go func() {
		lat := 1.0
		for {
			select {
			case <-done:
				return
			default:
			}
			c.do(http.MethodPost, "/api/game/guess", GuessRequest{Lat: lat, Lon: 0})
			lat += 0.5
			if lat > 80 {
				lat = 1
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	// Close the stream if nothing arrives, so the scanner cannot hang.
	timer := time.AfterFunc(5*time.Second, func() { resp.Body.Close() })
	defer timer.Stop()

	var name, data string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: ") {
			name = strings.TrimPrefix(line, "event: ")
		}
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
			break
		}
	}
	if data == "" {
		t.Fatal("stream closed without delivering an event")
	}
	if name != "state" {
		t.Errorf("event name = %q, want state", name)
	}

	var ev StateEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		t.Fatalf("bad event payload %q: %v", data, err)
	}
	if ev.Type != "state" || ev.Version == 0 {
		t.Errorf("event = %+v, want a versioned state event", ev)
	}
}
