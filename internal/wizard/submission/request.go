package submission

import (
	"context"
	"math"
	"strings"

	"bookingwizard/internal/wizard/pricing"
	"bookingwizard/internal/wizard/schema"
	"bookingwizard/pkg/model"
	"bookingwizard/pkg/sanitizer"
)

const DefaultCancellationPolicy = "moderate"

// Submitter sends one assembled booking to the booking service. The
// idempotency key stays the same for retries of unchanged data.
type Submitter interface {
	Submit(ctx context.Context, idempotencyKey string, req *model.BookingRequest) (*model.BookingRecord, error)
}

// Publisher announces confirmed bookings.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, event model.BookingCreatedEvent) error
}

type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, model.BookingCreatedEvent) error {
	return nil
}

// Draft is everything the wizard accumulated, ready to be assembled.
type Draft struct {
	Category model.BookingCategory
	Common   model.CommonFields
	Values   schema.Values
	Pricing  pricing.Breakdown
}

// BuildRequest assembles the outbound payload. Category values are read
// through the schema and copied verbatim into booking_data; values of fields
// outside the schema are not sent.
func BuildRequest(d Draft, cancellationPolicy string) *model.BookingRequest {
	if cancellationPolicy == "" {
		cancellationPolicy = DefaultCancellationPolicy
	}

	data := make(map[string]any, len(d.Category.Schema))
	for _, desc := range d.Category.Schema {
		data[desc.Name] = schema.Read(desc, d.Values[desc.Name])
	}

	req := &model.BookingRequest{
		BookingType:        d.Category.Slug,
		Listing:            strings.TrimSpace(d.Common.Listing),
		StartDate:          d.Common.StartDate,
		EndDate:            d.Common.EndDate,
		StartTime:          d.Common.StartTime,
		EndTime:            d.Common.EndTime,
		BasePrice:          pricing.Display(d.Pricing.Base),
		ServiceFees:        pricing.Display(d.Pricing.Fees),
		Taxes:              pricing.Display(d.Pricing.Taxes),
		Discount:           pricing.Display(d.Pricing.Discount),
		TotalPrice:         pricing.Display(d.Pricing.Total()),
		Currency:           d.Pricing.Currency,
		ContactName:        sanitizer.NormalizeName(d.Common.ContactName),
		ContactPhone:       contactPhone(d.Common.ContactPhone),
		ContactEmail:       strings.TrimSpace(d.Common.ContactEmail),
		SpecialRequests:    strings.TrimSpace(d.Common.SpecialRequests),
		CancellationPolicy: cancellationPolicy,
		BookingData:        data,
	}
	if d.Common.GuestCount != nil {
		n := int(math.Round(*d.Common.GuestCount))
		req.GuestCount = &n
	}
	return req
}

// contactPhone prefers the E.164 form and falls back to the number as typed
// when it cannot be parsed for a supported region.
func contactPhone(raw string) string {
	if normalized := sanitizer.NormalizePhone(raw); normalized != "" {
		return normalized
	}
	return strings.TrimSpace(raw)
}
