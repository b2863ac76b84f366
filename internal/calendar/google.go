package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"travelapi/internal/config"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	calendarScope  = "https://www.googleapis.com/auth/calendar.events"
	dateLayout     = "2006-01-02"
)

// Google talks to the Calendar v3 REST API.
type Google struct {
	baseURL    string
	calendarID string
	client     *http.Client
}

var _ Client = (*Google)(nil)

// New returns a Google client authorised by the configured refresh token,
// or Noop when credentials are missing.
func New(cfg config.CalendarConfig) Client {
	if !cfg.Enabled() {
		return Noop{}
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
		Scopes: []string{calendarScope},
	}

	base := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.Timeout,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := oc.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	httpClient.Timeout = cfg.Timeout

	return NewGoogle(cfg.BaseURL, cfg.CalendarID, httpClient)
}

// NewGoogle builds a client with an already authorised http.Client.
func NewGoogle(baseURL, calendarID string, client *http.Client) *Google {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Google{
		baseURL:    strings.TrimRight(baseURL, "/"),
		calendarID: calendarID,
		client:     client,
	}
}

func (g *Google) Enabled() bool { return true }

type eventDate struct {
	Date string `json:"date"`
}

type eventBody struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       eventDate `json:"start"`
	End         eventDate `json:"end"`
}

// UpsertAllDayEvent updates the event in place, inserting it when the provider has no such id.
func (g *Google) UpsertAllDayEvent(ctx context.Context, ev Event) error {
	day, err := time.Parse(dateLayout, ev.Date)
	if err != nil {
		return fmt.Errorf("invalid event date %q: %w", ev.Date, err)
	}
	body := eventBody{
		Summary:     ev.Title,
		Description: ev.Description,
		Start:       eventDate{Date: day.Format(dateLayout)},
		// end date is exclusive for all-day events
		End: eventDate{Date: day.AddDate(0, 0, 1).Format(dateLayout)},
	}

	status, err := g.do(ctx, http.MethodPut, g.eventURL(ev.ID), body)
	if err != nil {
		return err
	}
	if status != http.StatusNotFound {
		return nil
	}

	body.ID = ev.ID
	_, err = g.do(ctx, http.MethodPost, g.eventsURL(), body)
	return err
}

func (g *Google) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := g.do(ctx, http.MethodDelete, g.eventURL(eventID), nil)
	return err
}

func (g *Google) eventsURL() string {
	return g.baseURL + "/calendars/" + url.PathEscape(g.calendarID) + "/events"
}

func (g *Google) eventURL(id string) string {
	return g.eventsURL() + "/" + url.PathEscape(id)
}

// do sends the request and returns the status. 404 and 410 are returned without error
// so callers can decide what a missing event means.
func (g *Google) do(ctx context.Context, method, target string, payload any) (int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("encode calendar event: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, fmt.Errorf("build calendar request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("calendar %s: %w", method, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, fmt.Errorf("calendar %s: unexpected status %d: %s", method, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}
