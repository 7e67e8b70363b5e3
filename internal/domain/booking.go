package domain

import (
	"strings"
	"time"
)

// MinimumLeadDays is how far ahead an event must be booked.
const MinimumLeadDays = 2

// DateLayout is the wire format of BookingDetails.EventDate.
const DateLayout = "2006-01-02"

// BookingDetails is the customer and event information collected at checkout.
type BookingDetails struct {
	Email           string `json:"email" validate:"required,email"`
	Name            string `json:"name" validate:"required,max=200"`
	EventDate       string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	EventTime       string `json:"eventTime" validate:"required"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required,max=500"`
	City            string `json:"city" validate:"required,max=100"`
	ZipCode         string `json:"zipCode" validate:"required,max=10"`
	Notes           string `json:"notes,omitempty" validate:"max=2000"`
}

// Normalize trims surrounding whitespace from every field.
func (b *BookingDetails) Normalize() {
	b.Email = strings.TrimSpace(b.Email)
	b.Name = strings.TrimSpace(b.Name)
	b.EventDate = strings.TrimSpace(b.EventDate)
	b.EventTime = strings.TrimSpace(b.EventTime)
	b.DeliveryAddress = strings.TrimSpace(b.DeliveryAddress)
	b.City = strings.TrimSpace(b.City)
	b.ZipCode = strings.TrimSpace(b.ZipCode)
	b.Notes = strings.TrimSpace(b.Notes)
}

// MissingFields returns the JSON names of required fields that are blank.
func (b BookingDetails) MissingFields() []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("email", b.Email)
	check("name", b.Name)
	check("eventDate", b.EventDate)
	check("eventTime", b.EventTime)
	check("deliveryAddress", b.DeliveryAddress)
	check("city", b.City)
	check("zipCode", b.ZipCode)
	return missing
}

// EarliestEventDate is the first bookable day relative to now.
func EarliestEventDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, MinimumLeadDays)
}

// LeadTimeOK reports whether the event date is at least MinimumLeadDays after now.
// An unparseable date is reported as false.
func (b BookingDetails) LeadTimeOK(now time.Time) bool {
	date, err := time.ParseInLocation(DateLayout, b.EventDate, now.Location())
	if err != nil {
		return false
	}
	return !date.Before(EarliestEventDate(now))
}

// Metadata flattens the details into the string bag stored on a payment session.
func (b BookingDetails) Metadata() map[string]string {
	return map[string]string{
		"customerEmail":   b.Email,
		"customerName":    b.Name,
		"eventDate":       b.EventDate,
		"eventTime":       b.EventTime,
		"deliveryAddress": b.DeliveryAddress,
		"city":            b.City,
		"zipCode":         b.ZipCode,
		"notes":           b.Notes,
	}
}

// BookingFromMetadata reverses Metadata. Missing keys yield empty fields.
func BookingFromMetadata(md map[string]string) BookingDetails {
	return BookingDetails{
		Email:           md["customerEmail"],
		Name:            md["customerName"],
		EventDate:       md["eventDate"],
		EventTime:       md["eventTime"],
		DeliveryAddress: md["deliveryAddress"],
		City:            md["city"],
		ZipCode:         md["zipCode"],
		Notes:           md["notes"],
	}
}
