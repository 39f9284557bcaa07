package model

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// DestinationImage is one picture attached to a destination.
type DestinationImage struct {
	ID        int    `json:"id"`
	ImageURL  string `json:"image_url"`
	Caption   string `json:"caption"`
	IsPrimary bool   `json:"is_primary"`
}

// Destination is a place the backend can recommend.
type Destination struct {
	ID                  int                 `json:"id"`
	Name                string              `json:"name"`
	Country             string              `json:"country"`
	City                string              `json:"city"`
	Description         string              `json:"description"`
	Location            string              `json:"location"`
	ImageURL            string              `json:"image_url"`
	Images              []DestinationImage  `json:"images"`
	Category            Interest            `json:"category"`
	BestSeason          string              `json:"best_season"`
	AvgTemperature      string              `json:"avg_temperature"`
	BudgetLevel         BudgetLevel         `json:"budget_level"`
	BudgetMin           decimal.NullDecimal `json:"budget_min"`
	BudgetMax           decimal.NullDecimal `json:"budget_max"`
	ObjectivesSupported []string            `json:"objectives_supported"`
	IsActive            bool                `json:"is_active"`
	BookingURL          string              `json:"booking_url"`
}

// PrimaryImage returns the featured image URL, falling back to the first
// gallery image and then to the legacy single image field.
func (d Destination) PrimaryImage() string {
	for _, img := range d.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(d.Images) > 0 {
		return d.Images[0].ImageURL
	}
	return d.ImageURL
}

// Hotel is lodging at a destination.
type Hotel struct {
	ID              int             `json:"id"`
	Destination     int             `json:"destination"`
	DestinationName string          `json:"destination_name"`
	Name            string          `json:"name"`
	Stars           int             `json:"stars"`
	PricePerNight   decimal.Decimal `json:"price_per_night"`
	BudgetCategory  BudgetLevel     `json:"budget_category"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	Amenities       string          `json:"amenities"`
}

// Transport is a travel option between two places.
type Transport struct {
	ID             int             `json:"id"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	TransportType  string          `json:"transport_type"`
	DistanceKm     int             `json:"distance_km"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
	DurationHours  float64         `json:"duration_hours"`
	Availability   string          `json:"availability"`
}

// Itinerary is the plan for one day of a trip.
type Itinerary struct {
	ID            int    `json:"id"`
	TravelPlan    int    `json:"travel_plan"`
	DayNumber     int    `json:"day_number"`
	Activities    string `json:"activities"`
	Accommodation string `json:"accommodation"`
	Notes         string `json:"notes"`
}

// ItineraryDays decodes the itinerary attached to a plan, which the backend
// sends as null, a single day object or a list of days.
type ItineraryDays []Itinerary

// UnmarshalJSON implements json.Unmarshaler.
func (d *ItineraryDays) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*d = nil
		return nil
	case data[0] == '[':
		var days []Itinerary
		if err := json.Unmarshal(data, &days); err != nil {
			return err
		}
		*d = days
		return nil
	default:
		var day Itinerary
		if err := json.Unmarshal(data, &day); err != nil {
			return err
		}
		*d = ItineraryDays{day}
		return nil
	}
}

// TravelPlan is a saved trip.
type TravelPlan struct {
	ID                 int             `json:"id"`
	User               int             `json:"user"`
	Destination        *int            `json:"destination"`
	DestinationDetails *Destination    `json:"destination_details"`
	Hotel              *int            `json:"hotel"`
	HotelDetails       *Hotel          `json:"hotel_details"`
	Transport          *int            `json:"transport"`
	TransportDetails   *Transport      `json:"transport_details"`
	TravelDate         string          `json:"travel_date"`
	ReturnDate         string          `json:"return_date"`
	Budget             decimal.Decimal `json:"budget"`
	NumTravelers       int             `json:"num_travelers"`
	Notes              string          `json:"notes"`
	Itinerary          ItineraryDays   `json:"itinerary"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

// DestinationName returns a display name for the plan's destination.
func (p TravelPlan) DestinationName() string {
	if p.DestinationDetails != nil {
		return p.DestinationDetails.Name
	}
	return "Unknown"
}

// TripParameters are the dates and optional country entered in the first
// wizard stage.
type TripParameters struct {
	TravelDate string `json:"travel_date" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required"`
	Country    string `json:"country"`
}

// DestinationQuery filters the destination recommendations. Empty fields are
// not sent.
type DestinationQuery struct {
	Budget    string
	Interest  string
	Country   string
	BudgetMin string
	BudgetMax string
	Objective string
	Location  string
}

// PlanRequest is the body of the create-plan-with-recommendations call.
type PlanRequest struct {
	TravelDate   string `json:"travel_date"`
	ReturnDate   string `json:"return_date"`
	Budget       string `json:"budget"`
	NumTravelers int    `json:"num_travelers"`
	Interest     string `json:"interest,omitempty"`
	Country      string `json:"country,omitempty"`
	Destination  int    `json:"destination,omitempty"`
	Hotel        int    `json:"hotel,omitempty"`
}

// FlexString decodes a JSON string or number into a string. Identifiers come
// back as either depending on the endpoint.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// Int returns the value as an integer, or 0 if it is not numeric.
func (f FlexString) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}
	return n
}
