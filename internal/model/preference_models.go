package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BudgetLevel is the coarse spending band a traveller plans for.
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

// Interest is the kind of trip the traveller is after.
type Interest string

const (
	InterestBeach      Interest = "beach"
	InterestWildlife   Interest = "wildlife"
	InterestHistorical Interest = "historical"
	InterestCityTour   Interest = "city_tour"
	InterestAdventure  Interest = "adventure"
	InterestCulture    Interest = "culture"
)

// Objective is the purpose of the trip.
type Objective string

const (
	ObjectiveLeisure   Objective = "leisure"
	ObjectiveAdventure Objective = "adventure"
	ObjectiveHoneymoon Objective = "honeymoon"
	ObjectiveBusiness  Objective = "business"
	ObjectiveFamily    Objective = "family"
)

// AccommodationType is the preferred kind of lodging.
type AccommodationType string

const (
	AccommodationHotel      AccommodationType = "hotel"
	AccommodationResort     AccommodationType = "resort"
	AccommodationApartment  AccommodationType = "apartment"
	AccommodationVilla      AccommodationType = "villa"
	AccommodationHostel     AccommodationType = "hostel"
	AccommodationGuesthouse AccommodationType = "guesthouse"
)

// Preferences is the per-user travel preference record held by the backend.
// Each user has at most one.
type Preferences struct {
	ID                int                 `json:"id"`
	User              FlexString          `json:"user"`
	Budget            BudgetLevel         `json:"budget"`
	BudgetMin         decimal.NullDecimal `json:"budget_min"`
	BudgetMax         decimal.NullDecimal `json:"budget_max"`
	Interest          Interest            `json:"interest"`
	Location          string              `json:"location"`
	Objective         Objective           `json:"objective"`
	AccommodationType AccommodationType   `json:"accommodation_type"`
	NumTravelers      int                 `json:"num_travelers"`
	CreatedAt         string              `json:"created_at,omitempty"`
	UpdatedAt         string              `json:"updated_at,omitempty"`
}

// PreferencesInput is the editable form state. Budget bounds stay as text
// until submission so a blank entry can be told apart from zero.
type PreferencesInput struct {
	Budget            BudgetLevel       `json:"budget" validate:"required,oneof=low medium high"`
	BudgetMin         string            `json:"budget_min" validate:"omitempty,numeric"`
	BudgetMax         string            `json:"budget_max" validate:"omitempty,numeric"`
	Interest          Interest          `json:"interest" validate:"required,oneof=beach wildlife historical city_tour adventure culture"`
	Location          string            `json:"location"`
	Objective         Objective         `json:"objective" validate:"required,oneof=leisure adventure honeymoon business family"`
	AccommodationType AccommodationType `json:"accommodation_type" validate:"required,oneof=hotel resort apartment villa hostel guesthouse"`
	NumTravelers      int               `json:"num_travelers" validate:"min=1,max=20"`
}

// PreferencesPayload is the request body for creating or updating preferences.
type PreferencesPayload struct {
	User              string            `json:"user,omitempty"`
	Budget            BudgetLevel       `json:"budget"`
	BudgetMin         *decimal.Decimal  `json:"budget_min,omitempty"`
	BudgetMax         *decimal.Decimal  `json:"budget_max,omitempty"`
	Interest          Interest          `json:"interest"`
	Location          string            `json:"location"`
	Objective         Objective         `json:"objective"`
	AccommodationType AccommodationType `json:"accommodation_type"`
	NumTravelers      int               `json:"num_travelers"`
}

// DefaultPreferencesInput returns the form values shown before any record exists.
func DefaultPreferencesInput() PreferencesInput {
	return PreferencesInput{
		Budget:            BudgetMedium,
		Interest:          InterestBeach,
		Objective:         ObjectiveLeisure,
		AccommodationType: AccommodationHotel,
		NumTravelers:      1,
	}
}

// InputFromPreferences populates a form from a stored record.
func InputFromPreferences(p Preferences) PreferencesInput {
	in := PreferencesInput{
		Budget:            p.Budget,
		Interest:          p.Interest,
		Location:          p.Location,
		Objective:         p.Objective,
		AccommodationType: p.AccommodationType,
		NumTravelers:      p.NumTravelers,
	}
	if p.BudgetMin.Valid {
		in.BudgetMin = p.BudgetMin.Decimal.String()
	}
	if p.BudgetMax.Valid {
		in.BudgetMax = p.BudgetMax.Decimal.String()
	}
	if in.NumTravelers == 0 {
		in.NumTravelers = 1
	}
	return in
}

// Payload converts the form to a request body. Blank budget bounds are omitted.
func (in PreferencesInput) Payload(userID string) (PreferencesPayload, error) {
	min, err := parseOptionalDecimal("budget_min", in.BudgetMin)
	if err != nil {
		return PreferencesPayload{}, err
	}
	max, err := parseOptionalDecimal("budget_max", in.BudgetMax)
	if err != nil {
		return PreferencesPayload{}, err
	}
	return PreferencesPayload{
		User:              userID,
		Budget:            in.Budget,
		BudgetMin:         min,
		BudgetMax:         max,
		Interest:          in.Interest,
		Location:          in.Location,
		Objective:         in.Objective,
		AccommodationType: in.AccommodationType,
		NumTravelers:      in.NumTravelers,
	}, nil
}

func parseOptionalDecimal(field, value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", field)
	}
	return &d, nil
}
