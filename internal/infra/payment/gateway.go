// Package payment holds the outbound payment collaborator. The provider
// SDK integration is out of scope; the recording gateway stands in for it
// and satisfies the checkout contract: it receives only the final amount
// in major currency units and a description string.
package payment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordingGateway struct{}

func NewRecordingGateway() *RecordingGateway {
	return &RecordingGateway{}
}

func (g *RecordingGateway) Charge(_ context.Context, amount decimal.Decimal, description string) (string, error) {
	ref := "pay_" + uuid.NewString()
	slog.Info("payment captured",
		"amount", amount.StringFixed(2),
		"description", description,
		"reference", ref)
	return ref, nil
}
