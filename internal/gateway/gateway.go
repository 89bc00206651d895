// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

// Package gateway talks to the hosted data platform over its REST interface
// and translates platform failures into errors the sync engine can reason
// about: retryable network faults, permanent rejections, and schema
// mismatches.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/jackc/pgerrcode"

	"github.com/pairkeep/pairkeep/internal/config"
	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

//go:generate mockgen -source=gateway.go -destination=../mock/gateway_mock.go -package=mock

// TokenProvider supplies the bearer token for outbound requests.
type TokenProvider interface {
	Token() string
}

// MoodGateway pushes and pulls mood rows on the hosted platform.
type MoodGateway interface {
	// Create inserts a mood row. When the platform reports that a row for
	// the same user and day already exists, the existing row is updated in
	// place and returned.
	Create(ctx context.Context, insert models.MoodInsert) (models.RemoteMood, error)
	// FetchByOwner returns the user's newest moods, at most limit rows.
	FetchByOwner(ctx context.Context, userID string, limit int) ([]models.RemoteMood, error)
	// FetchByDateRange returns the user's moods captured within [from, to].
	FetchByDateRange(ctx context.Context, userID, from, to string) ([]models.RemoteMood, error)
	// FetchByID returns one mood row, or nil when the id matches nothing.
	FetchByID(ctx context.Context, id string) (*models.RemoteMood, error)
	// LatestForUser returns the newest mood of userID, or nil when the user
	// has none.
	LatestForUser(ctx context.Context, userID string) (*models.RemoteMood, error)
	// Update replaces the stored row's mutable fields and returns the result.
	Update(ctx context.Context, id string, insert models.MoodInsert) (models.RemoteMood, error)
	// Delete removes the row. Deleting an absent row is not an error.
	Delete(ctx context.Context, id string) error
}

// NoteGateway exchanges love notes with the hosted platform.
type NoteGateway interface {
	// Send delivers a love note to the partner.
	Send(ctx context.Context, note models.LoveNote) error
	// FetchSince returns notes addressed to recipientID created at or after
	// the RFC 3339 timestamp since.
	FetchSince(ctx context.Context, recipientID, since string) ([]models.LoveNote, error)
}

// HealthChecker probes platform reachability.
type HealthChecker interface {
	// Ping reports whether the platform answered a cheap health request.
	Ping(ctx context.Context) bool
}

type HTTPGateway struct {
	client *resty.Client
	tokens TokenProvider
	online func() bool
	log    *logger.Logger
}

// NewHTTPGateway constructs the REST implementation of the gateway
// interfaces. It normalises and validates the base URL from cfg and
// configures the client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPGateway(cfg config.AgentRemote, tokens TokenProvider, log *logger.Logger) (*HTTPGateway, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &HTTPGateway{client: client, tokens: tokens, log: log}, nil
}

// SetOnlineCheck wires the connectivity check consulted before every data
// call. It is set after construction because the network notifier itself
// probes through this gateway.
func (h *HTTPGateway) SetOnlineCheck(online func() bool) {
	h.online = online
}

// offlineError is the fail-fast classification used when the device is known
// to be offline: no request is attempted.
func (h *HTTPGateway) offlineError() error {
	if h.online == nil || h.online() {
		return nil
	}
	return &ServiceError{
		Code:           "NETWORK_ERROR",
		Message:        "device is offline",
		Hint:           "your changes are saved and will sync when you're back online",
		IsNetworkError: true,
	}
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Create implements [MoodGateway]. It POSTs the row to POST /rest/v1/moods
// asking the platform to echo the stored representation back. A unique
// violation means a row for that user and day already exists; in that case
// the existing row is PATCHed with the new values and returned, so a
// re-sent queue entry never produces a duplicate day.
func (h *HTTPGateway) Create(ctx context.Context, insert models.MoodInsert) (models.RemoteMood, error) {
	if err := h.offlineError(); err != nil {
		return models.RemoteMood{}, err
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetBody(insert).
		Post("/rest/v1/moods")
	if err != nil {
		return models.RemoteMood{}, classifyTransport(err)
	}
	if err = classifyResponse(resp); err != nil {
		var se *ServiceError
		if errors.As(err, &se) && se.Code == pgerrcode.UniqueViolation {
			h.log.Debug().
				Str("func", "Create").
				Str("day", insert.CapturedDay).
				Msg("row exists for day, updating instead")
			return h.updateForDay(ctx, insert)
		}
		return models.RemoteMood{}, err
	}

	return decodeSingleMood(resp.Body())
}

// updateForDay replaces the stored row for the user's captured day.
func (h *HTTPGateway) updateForDay(ctx context.Context, insert models.MoodInsert) (models.RemoteMood, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetQueryParam("user_id", "eq."+insert.UserID).
		SetQueryParam("captured_day", "eq."+insert.CapturedDay).
		SetBody(insert).
		Patch("/rest/v1/moods")
	if err != nil {
		return models.RemoteMood{}, classifyTransport(err)
	}
	if err = classifyResponse(resp); err != nil {
		return models.RemoteMood{}, err
	}

	return decodeSingleMood(resp.Body())
}

// FetchByOwner implements [MoodGateway].
func (h *HTTPGateway) FetchByOwner(ctx context.Context, userID string, limit int) ([]models.RemoteMood, error) {
	if err := h.offlineError(); err != nil {
		return nil, err
	}

	req := h.authedRequest(ctx).
		SetQueryParam("user_id", "eq."+userID).
		SetQueryParam("order", "created_at.desc")
	if limit > 0 {
		req.SetQueryParam("limit", fmt.Sprintf("%d", limit))
	}

	resp, err := req.Get("/rest/v1/moods")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if err = classifyResponse(resp); err != nil {
		return nil, err
	}

	var moods []models.RemoteMood
	if err = json.Unmarshal(resp.Body(), &moods); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	return moods, nil
}

// FetchByDateRange implements [MoodGateway].
func (h *HTTPGateway) FetchByDateRange(ctx context.Context, userID, from, to string) ([]models.RemoteMood, error) {
	if err := h.offlineError(); err != nil {
		return nil, err
	}

	resp, err := h.authedRequest(ctx).
		SetQueryParamsFromValues(url.Values{
			"user_id":    {"eq." + userID},
			"created_at": {"gte." + from, "lte." + to},
			"order":      {"created_at.asc"},
		}).
		Get("/rest/v1/moods")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if err = classifyResponse(resp); err != nil {
		return nil, err
	}

	var moods []models.RemoteMood
	if err = json.Unmarshal(resp.Body(), &moods); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	return moods, nil
}

// FetchByID implements [MoodGateway]. An unknown id yields (nil, nil).
func (h *HTTPGateway) FetchByID(ctx context.Context, id string) (*models.RemoteMood, error) {
	if err := h.offlineError(); err != nil {
		return nil, err
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", "application/vnd.pgrst.object+json").
		SetQueryParam("id", "eq."+id).
		Get("/rest/v1/moods")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if err = classifyResponse(resp); err != nil {
		var se *ServiceError
		if errors.As(err, &se) && se.Code == codeNoRows {
			return nil, nil
		}
		return nil, err
	}

	mood, err := decodeMood(resp.Body())
	if err != nil {
		return nil, err
	}
	return &mood, nil
}

// Update implements [MoodGateway].
func (h *HTTPGateway) Update(ctx context.Context, id string, insert models.MoodInsert) (models.RemoteMood, error) {
	if err := h.offlineError(); err != nil {
		return models.RemoteMood{}, err
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		SetBody(insert).
		Patch("/rest/v1/moods")
	if err != nil {
		return models.RemoteMood{}, classifyTransport(err)
	}
	if err = classifyResponse(resp); err != nil {
		return models.RemoteMood{}, err
	}

	return decodeSingleMood(resp.Body())
}

// Delete implements [MoodGateway].
func (h *HTTPGateway) Delete(ctx context.Context, id string) error {
	if err := h.offlineError(); err != nil {
		return err
	}

	resp, err := h.authedRequest(ctx).
		SetQueryParam("id", "eq."+id).
		Delete("/rest/v1/moods")
	if err != nil {
		return classifyTransport(err)
	}
	return classifyResponse(resp)
}

// LatestForUser implements [MoodGateway]. A user with no moods yields
// (nil, nil) rather than an error.
func (h *HTTPGateway) LatestForUser(ctx context.Context, userID string) (*models.RemoteMood, error) {
	if err := h.offlineError(); err != nil {
		return nil, err
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Accept", "application/vnd.pgrst.object+json").
		SetQueryParam("user_id", "eq."+userID).
		SetQueryParam("order", "created_at.desc").
		SetQueryParam("limit", "1").
		Get("/rest/v1/moods")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if err = classifyResponse(resp); err != nil {
		var se *ServiceError
		if errors.As(err, &se) && se.Code == codeNoRows {
			return nil, nil
		}
		return nil, err
	}

	mood, err := decodeMood(resp.Body())
	if err != nil {
		return nil, err
	}
	return &mood, nil
}

// Send implements [NoteGateway].
func (h *HTTPGateway) Send(ctx context.Context, note models.LoveNote) error {
	if err := h.offlineError(); err != nil {
		return err
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(note).
		Post("/rest/v1/love_notes")
	if err != nil {
		return classifyTransport(err)
	}
	return classifyResponse(resp)
}

// FetchSince implements [NoteGateway].
func (h *HTTPGateway) FetchSince(ctx context.Context, recipientID, since string) ([]models.LoveNote, error) {
	if err := h.offlineError(); err != nil {
		return nil, err
	}

	resp, err := h.authedRequest(ctx).
		SetQueryParam("recipient_id", "eq."+recipientID).
		SetQueryParam("created_at", "gte."+since).
		SetQueryParam("order", "created_at.asc").
		Get("/rest/v1/love_notes")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if err = classifyResponse(resp); err != nil {
		return nil, err
	}

	var notes []models.LoveNote
	if err = json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	return notes, nil
}

// Ping implements [HealthChecker].
func (h *HTTPGateway) Ping(ctx context.Context) bool {
	resp, err := h.client.R().SetContext(ctx).Get("/auth/v1/health")
	if err != nil {
		return false
	}
	return resp.StatusCode() < 500
}

func (h *HTTPGateway) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.tokens.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// decodeSingleMood decodes a one-row array response into a validated mood.
func decodeSingleMood(body []byte) (models.RemoteMood, error) {
	var moods []models.RemoteMood
	if err := json.Unmarshal(body, &moods); err != nil {
		return models.RemoteMood{}, &ValidationError{Reason: err.Error()}
	}
	if len(moods) != 1 {
		return models.RemoteMood{}, &ValidationError{Reason: fmt.Sprintf("expected one row, got %d", len(moods))}
	}
	if err := moods[0].Validate(); err != nil {
		return models.RemoteMood{}, &ValidationError{Reason: err.Error()}
	}
	return moods[0], nil
}

func decodeMood(body []byte) (models.RemoteMood, error) {
	var mood models.RemoteMood
	if err := json.Unmarshal(body, &mood); err != nil {
		return models.RemoteMood{}, &ValidationError{Reason: err.Error()}
	}
	if err := mood.Validate(); err != nil {
		return models.RemoteMood{}, &ValidationError{Reason: err.Error()}
	}
	return mood, nil
}
