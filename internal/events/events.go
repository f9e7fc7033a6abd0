package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const EventTypePaymentRecorded = "lease_payment.recorded"

// PaymentRecorded is emitted after a lease payment is committed
type PaymentRecorded struct {
	EventID          string              `json:"event_id"`
	EventType        string              `json:"event_type"`
	PaymentID        string              `json:"payment_id"`
	ContractID       string              `json:"contract_id"`
	Sequence         int                 `json:"sequence"`
	Amount           decimal.Decimal     `json:"amount"`
	PaymentDate      string              `json:"payment_date"`
	RemainingBalance decimal.Decimal     `json:"remaining_balance"`
	Penalty          decimal.Decimal     `json:"penalty"`
	ExchangeRate     decimal.NullDecimal `json:"exchange_rate"`
	OccurredAt       time.Time           `json:"occurred_at"`
}

// Publisher delivers domain events. key groups events of one aggregate.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                                { return nil }
