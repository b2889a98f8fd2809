package models

import "time"

// Trip direction relative to the venue.
const (
	TripArrival   = "arrival"
	TripDeparture = "departure"
)

// Event days. Rides and requests are scoped to one of the three fixed days.
const (
	EventDay1 = "day1"
	EventDay2 = "day2"
	EventDay3 = "day3"
)

// Join request / invitation statuses.
const (
	JoinPending  = "pending"
	JoinAccepted = "accepted"
	JoinDeclined = "declined"
)

// Standalone ride request lifecycle.
const (
	RequestOpen      = "open"
	RequestOffered   = "offered"
	RequestAccepted  = "accepted"
	RequestDeclined  = "declined"
	RequestFulfilled = "fulfilled"
)

// Notification types.
const (
	NotifyRideModified   = "ride_modified"
	NotifyRideCancelled  = "ride_cancelled"
	NotifyRideInvitation = "ride_invitation"
)

type Ride struct {
	ID             int64     `json:"id"`
	DriverID       int64     `json:"driverId"`
	TripType       string    `json:"tripType"`
	EventDay       string    `json:"eventDay"`
	Departure      string    `json:"departure"`
	Destination    string    `json:"destination"`
	DepartureTime  string    `json:"departureTime"`
	TotalSeats     int       `json:"totalSeats"`
	AvailableSeats int       `json:"availableSeats"`
	Notes          string    `json:"notes,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RideDetail is a ride with its driver and accepted passengers resolved,
// the shape the listing endpoints return.
type RideDetail struct {
	Ride
	Driver     User   `json:"driver"`
	Passengers []User `json:"passengers"`
}

type RideInput struct {
	TripType      string  `json:"tripType" binding:"required"`
	EventDay      string  `json:"eventDay" binding:"required"`
	Departure     string  `json:"departure" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	DepartureTime string  `json:"departureTime" binding:"required"`
	TotalSeats    int     `json:"totalSeats" binding:"required"`
	Notes         string  `json:"notes"`
	InviteeIDs    []int64 `json:"inviteeIds"`
}

// InviteFanout reports the best-effort invitation sends performed when a ride
// is created with invitees. The ride itself is committed regardless.
type InviteFanout struct {
	Invited int `json:"invited"`
	Failed  int `json:"failed"`
}

type RideRequest struct {
	ID            int64     `json:"id"`
	RequesterID   int64     `json:"requesterId"`
	TripType      string    `json:"tripType"`
	EventDay      string    `json:"eventDay"`
	Departure     string    `json:"departure"`
	Destination   string    `json:"destination"`
	DepartureTime string    `json:"departureTime"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	RideID        *int64    `json:"rideId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type RideRequestDetail struct {
	RideRequest
	Requester User `json:"requester"`
}

type RideRequestInput struct {
	TripType      string `json:"tripType" binding:"required"`
	EventDay      string `json:"eventDay" binding:"required"`
	Departure     string `json:"departure" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureTime string `json:"departureTime"`
	Notes         string `json:"notes"`
}

type RideJoinRequest struct {
	ID          int64      `json:"id"`
	RideID      int64      `json:"rideId"`
	RequesterID int64      `json:"requesterId"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
}

// JoinRequestForDriver is an incoming request as the driver sees it.
type JoinRequestForDriver struct {
	RideJoinRequest
	Requester User `json:"requester"`
	Ride      Ride `json:"ride"`
}

// JoinRequestForUser is the requester's own request with the target ride.
type JoinRequestForUser struct {
	RideJoinRequest
	Ride RideDetail `json:"ride"`
}

type RideInvitation struct {
	ID          int64      `json:"id"`
	RideID      int64      `json:"rideId"`
	InviterID   int64      `json:"inviterId"`
	InviteeID   int64      `json:"inviteeId"`
	RequestID   *int64     `json:"requestId,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
}

type RideInvitationDetail struct {
	RideInvitation
	Ride    RideDetail `json:"ride"`
	Inviter User       `json:"inviter"`
}

type RideNotification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	RideID    *int64    `json:"rideId,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidTripType reports whether t is one of the two trip directions.
func ValidTripType(t string) bool {
	return t == TripArrival || t == TripDeparture
}

// ValidEventDay reports whether d names one of the three event days.
func ValidEventDay(d string) bool {
	return d == EventDay1 || d == EventDay2 || d == EventDay3
}
