// Package pms is the HTTP adapter for the property-management service. It is
// both the snapshot source (rooms, bookings, blocked dates) and the mutation
// boundary (split, rates, unblock). All mutations happen there; this process
// never writes bookings itself.
package pms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"frontdesk/internal/app/policies"
	"frontdesk/internal/app/snapshot"
	"frontdesk/internal/domain/rates"
	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/daterange"
	"frontdesk/internal/domain/split"
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
	Logger  *slog.Logger
	Now     func() time.Time
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Logger:  logger,
	}
}

type roomPayload struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StructureID    string `json:"structure_id"`
	PropertyTypeID string `json:"property_type_id"`
}

type bookingPayload struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	GuestName string `json:"guest_name"`
	Platform  string `json:"platform"`
}

type blockPayload struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// FetchCollections pulls the three collections the grid is built from. The
// lists are fetched sequentially on purpose: a half-fetched snapshot is
// worthless, so the first failure aborts the whole refresh.
func (c *Client) FetchCollections(ctx context.Context) (snapshot.Collections, error) {
	var zero snapshot.Collections

	var roomsResp struct {
		Rooms []roomPayload `json:"rooms"`
	}
	if err := c.getJSON(ctx, "/api/v1/rooms", &roomsResp); err != nil {
		return zero, fmt.Errorf("pms: fetch rooms: %w", err)
	}

	var bookingsResp struct {
		Bookings []bookingPayload `json:"bookings"`
	}
	if err := c.getJSON(ctx, "/api/v1/bookings", &bookingsResp); err != nil {
		return zero, fmt.Errorf("pms: fetch bookings: %w", err)
	}

	var blocksResp struct {
		Blocks []blockPayload `json:"blocked_dates"`
	}
	if err := c.getJSON(ctx, "/api/v1/blocked-dates", &blocksResp); err != nil {
		return zero, fmt.Errorf("pms: fetch blocked dates: %w", err)
	}

	cols := snapshot.Collections{FetchedAt: c.now()}
	for _, r := range roomsResp.Rooms {
		cols.Rooms = append(cols.Rooms, schedule.RoomRecord{
			ID:             r.ID,
			Name:           r.Name,
			StructureID:    r.StructureID,
			PropertyTypeID: r.PropertyTypeID,
		})
	}
	for _, b := range bookingsResp.Bookings {
		cols.Bookings = append(cols.Bookings, schedule.BookingRecord{
			ID:        b.ID,
			RoomID:    b.RoomID,
			CheckIn:   b.CheckIn,
			CheckOut:  b.CheckOut,
			GuestName: b.GuestName,
			Platform:  b.Platform,
		})
	}
	for _, b := range blocksResp.Blocks {
		cols.Blocks = append(cols.Blocks, schedule.BlockRecord{
			ID:        b.ID,
			RoomID:    b.RoomID,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Reason:    b.Reason,
		})
	}
	return cols, nil
}

type splitRequestPayload struct {
	SplitDate string `json:"split_date"`
	NewRoomID string `json:"new_room_id,omitempty"`
}

type splitResponsePayload struct {
	Bookings []bookingPayload `json:"bookings"`
}

// SplitBooking submits the split; the service performs it atomically and
// returns the replacement bookings.
func (c *Client) SplitBooking(ctx context.Context, req split.Request) ([]schedule.BookingRecord, error) {
	payload := splitRequestPayload{
		SplitDate: daterange.FormatDay(req.SplitDate),
		NewRoomID: string(req.NewRoomID),
	}
	path := fmt.Sprintf("/api/v1/bookings/%s/split", url.PathEscape(string(req.BookingID)))

	var resp splitResponsePayload
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &resp); err != nil {
		c.logError("pms split failed", "booking_id", string(req.BookingID), err)
		return nil, err
	}

	records := make([]schedule.BookingRecord, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		records = append(records, schedule.BookingRecord{
			ID:        b.ID,
			RoomID:    b.RoomID,
			CheckIn:   b.CheckIn,
			CheckOut:  b.CheckOut,
			GuestName: b.GuestName,
			Platform:  b.Platform,
		})
	}
	return records, nil
}

type ratePayload struct {
	RoomID     string `json:"room_id"`
	Date       string `json:"date"`
	Platform   string `json:"platform"`
	PriceCents int64  `json:"price_cents"`
}

// UpdateRates pushes the enumerated price writes in one request. Either the
// service accepts the whole batch or nothing changes.
func (c *Client) UpdateRates(ctx context.Context, targets []rates.Target) error {
	payload := struct {
		Rates []ratePayload `json:"rates"`
	}{Rates: make([]ratePayload, 0, len(targets))}
	for _, t := range targets {
		payload.Rates = append(payload.Rates, ratePayload{
			RoomID:     string(t.RoomID),
			Date:       daterange.FormatDay(t.Date),
			Platform:   string(t.Platform),
			PriceCents: t.PriceCents,
		})
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/rates", payload, nil); err != nil {
		c.logError("pms rate update failed", "targets", fmt.Sprint(len(targets)), err)
		return err
	}
	return nil
}

// UnblockDates releases a blocked range by id.
func (c *Client) UnblockDates(ctx context.Context, blockID schedule.BlockID) error {
	path := fmt.Sprintf("/api/v1/blocked-dates/%s", url.PathEscape(string(blockID)))
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		c.logError("pms unblock failed", "block_id", string(blockID), err)
		return err
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return fmt.Errorf("pms: http client not configured")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("pms: base url not configured")
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pms: %s %s returned status %d: %s", method, path, resp.StatusCode, string(snippet))
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) logError(msg, key, value string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(msg, key, value, "error", err)
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

var _ snapshot.Source = (*Client)(nil)
var _ policies.BookingService = (*Client)(nil)
var _ policies.RateService = (*Client)(nil)
var _ policies.BlockService = (*Client)(nil)
