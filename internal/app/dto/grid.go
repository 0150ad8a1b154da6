package dto

import (
	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/daterange"
	"frontdesk/internal/domain/timeline"
)

type GridBar struct {
	Kind      string `json:"kind"` // "booking" or "block"
	BookingID string `json:"booking_id,omitempty"`
	BlockID   string `json:"block_id,omitempty"`
	Label     string `json:"label,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Left      int    `json:"left"`
	Width     int    `json:"width"`
}

type GridRow struct {
	RoomID   string    `json:"room_id"`
	RoomName string    `json:"room_name"`
	Bars     []GridBar `json:"bars"`
}

type Grid struct {
	Days      []string  `json:"days"` // ISO dates of the visible columns
	Offset    int       `json:"offset"`
	CellWidth int       `json:"cell_width"`
	Rows      []GridRow `json:"rows"`
}

type Availability struct {
	RoomID string `json:"room_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Free   bool   `json:"free"`
}

func MapBookingBar(b schedule.BookingInterval, g timeline.Geometry) GridBar {
	return GridBar{
		Kind:      "booking",
		BookingID: string(b.ID),
		Label:     b.GuestLabel,
		Platform:  string(b.Platform),
		Left:      g.Left,
		Width:     g.Width,
	}
}

func MapBlockBar(b schedule.BlockedInterval, g timeline.Geometry) GridBar {
	return GridBar{
		Kind:    "block",
		BlockID: string(b.ID),
		Reason:  b.Reason,
		Left:    g.Left,
		Width:   g.Width,
	}
}

func MapWindowDays(axis timeline.DateAxis, w timeline.Window) []string {
	days := make([]string, 0, w.Count)
	for i := w.Offset; i < w.Offset+w.Count && i < axis.Len(); i++ {
		days = append(days, daterange.FormatDay(axis.At(i)))
	}
	return days
}
