package models

import "time"

// AttendanceRecord keeps one row per user, upserted in place. The day 3
// overnight column exists for export parity even though the event ends that
// evening and the period formatter never reads it.
type AttendanceRecord struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`

	Day1Breakfast bool `json:"day1Breakfast"`
	Day1Lunch     bool `json:"day1Lunch"`
	Day1Dinner    bool `json:"day1Dinner"`
	Day1Night     bool `json:"day1Night"`

	Day2Breakfast bool `json:"day2Breakfast"`
	Day2Lunch     bool `json:"day2Lunch"`
	Day2Dinner    bool `json:"day2Dinner"`
	Day2Night     bool `json:"day2Night"`

	Day3Breakfast bool `json:"day3Breakfast"`
	Day3Lunch     bool `json:"day3Lunch"`
	Day3Dinner    bool `json:"day3Dinner"`
	Day3Night     bool `json:"day3Night"`

	TransportationStatus  string `json:"transportationStatus,omitempty"`
	TransportationDetails string `json:"transportationDetails,omitempty"`

	Omnivore   bool   `json:"omnivore"`
	Vegetarian bool   `json:"vegetarian"`
	Vegan      bool   `json:"vegan"`
	GlutenFree bool   `json:"glutenFree"`
	DairyFree  bool   `json:"dairyFree"`
	Allergies  string `json:"allergies,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AttendanceInput is the upsert payload; the owning user id always comes from
// the request context, never from the body.
type AttendanceInput struct {
	Day1Breakfast bool `json:"day1Breakfast"`
	Day1Lunch     bool `json:"day1Lunch"`
	Day1Dinner    bool `json:"day1Dinner"`
	Day1Night     bool `json:"day1Night"`

	Day2Breakfast bool `json:"day2Breakfast"`
	Day2Lunch     bool `json:"day2Lunch"`
	Day2Dinner    bool `json:"day2Dinner"`
	Day2Night     bool `json:"day2Night"`

	Day3Breakfast bool `json:"day3Breakfast"`
	Day3Lunch     bool `json:"day3Lunch"`
	Day3Dinner    bool `json:"day3Dinner"`
	Day3Night     bool `json:"day3Night"`

	TransportationStatus  string `json:"transportationStatus"`
	TransportationDetails string `json:"transportationDetails"`

	Omnivore   bool   `json:"omnivore"`
	Vegetarian bool   `json:"vegetarian"`
	Vegan      bool   `json:"vegan"`
	GlutenFree bool   `json:"glutenFree"`
	DairyFree  bool   `json:"dairyFree"`
	Allergies  string `json:"allergies"`

	Notes string `json:"notes"`
}

// AttendanceStats aggregates headcounts for the admin dashboard.
type AttendanceStats struct {
	TotalParticipants int                 `json:"totalParticipants"`
	Day1              DayStats            `json:"day1"`
	Day2              DayStats            `json:"day2"`
	Day3              DayStats            `json:"day3"`
	Transportation    TransportationStats `json:"transportation"`
	Dietary           DietaryStats        `json:"dietary"`
}

type DayStats struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
	Night     int `json:"night"`
}

type TransportationStats struct {
	Offering int `json:"offering"`
	Needed   int `json:"needed"`
	Own      int `json:"own"`
}

type DietaryStats struct {
	Vegetarian    int `json:"vegetarian"`
	Vegan         int `json:"vegan"`
	GlutenFree    int `json:"glutenFree"`
	DairyFree     int `json:"dairyFree"`
	WithAllergies int `json:"withAllergies"`
}
