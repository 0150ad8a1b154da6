package dto

import (
	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/daterange"
	"frontdesk/internal/domain/split"
)

type SplitSegment struct {
	RoomID   string `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

type SplitResult struct {
	BookingID string       `json:"booking_id"`
	SplitDate string       `json:"split_date"`
	Head      SplitSegment `json:"head"`
	Tail      SplitSegment `json:"tail"`
}

func MapSplitPlan(plan split.Plan) SplitResult {
	return SplitResult{
		BookingID: string(plan.Request.BookingID),
		SplitDate: daterange.FormatDay(plan.Request.SplitDate),
		Head:      mapSegment(plan.Head),
		Tail:      mapSegment(plan.Tail),
	}
}

func mapSegment(b schedule.BookingInterval) SplitSegment {
	return SplitSegment{
		RoomID:   string(b.RoomID),
		CheckIn:  daterange.FormatDay(b.Range.CheckIn),
		CheckOut: daterange.FormatDay(b.Range.CheckOut),
	}
}

type BulkRateResult struct {
	Rooms   int `json:"rooms"`
	Targets int `json:"targets"`
}
