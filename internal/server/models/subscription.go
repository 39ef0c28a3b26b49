package models

import "time"

// Subscription is one-to-one with a user. Billing identifiers are opaque
// references into the external billing system.
type Subscription struct {
	ID     string
	UserID string

	Plan   string
	Status string

	BillingCustomerID     string
	BillingSubscriptionID string

	CancelAt         *time.Time
	CurrentPeriodEnd *time.Time

	CreatedAt time.Time
}

type SubscriptionPatch struct {
	Plan                  *string
	Status                *string
	BillingCustomerID     *string
	BillingSubscriptionID *string
	CancelAt              *time.Time
	CurrentPeriodEnd      *time.Time
}

func (p *SubscriptionPatch) Apply(s *Subscription) {
	if p.Plan != nil {
		s.Plan = *p.Plan
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.BillingCustomerID != nil {
		s.BillingCustomerID = *p.BillingCustomerID
	}
	if p.BillingSubscriptionID != nil {
		s.BillingSubscriptionID = *p.BillingSubscriptionID
	}
	if p.CancelAt != nil {
		s.CancelAt = p.CancelAt
	}
	if p.CurrentPeriodEnd != nil {
		s.CurrentPeriodEnd = p.CurrentPeriodEnd
	}
}
