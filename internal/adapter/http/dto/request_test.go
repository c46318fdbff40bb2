package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/tinyledger/internal/domain"
)

func TestMoneyMovementRequest_DecodesSignedAmounts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want decimal.Decimal
	}{
		{"deposit", `{"amount": 100.00}`, decimal.RequireFromString("100.00")},
		{"withdrawal", `{"amount": -40.50}`, decimal.RequireFromString("-40.50")},
		{"string amount", `{"amount": "12.34"}`, decimal.RequireFromString("12.34")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MoneyMovementRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if !req.Amount.Equal(tt.want) {
				t.Fatalf("expected amount %s, got %s", tt.want, req.Amount)
			}
		})
	}
}

func TestMoneyMovementRequest_Validate(t *testing.T) {
	short := "groceries"
	long := strings.Repeat("x", domain.MaxDescriptionLength+1)

	req := &MoneyMovementRequest{Amount: decimal.NewFromInt(10), Description: &short}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req.Description = nil
	if err := req.Validate(); err != nil {
		t.Fatalf("expected nil description to be valid, got %v", err)
	}

	req.Description = &long
	if err := req.Validate(); !errors.Is(err, domain.ErrInvalidDescription) {
		t.Fatalf("expected ErrInvalidDescription, got %v", err)
	}
}

func TestMoneyMovementRequest_ToUseCaseInput(t *testing.T) {
	desc := "rent"
	req := &MoneyMovementRequest{
		Amount:      decimal.RequireFromString("-950.00"),
		Description: &desc,
	}

	got := req.ToUseCaseInput("acc-1")
	if got.AccountID != "acc-1" || !got.Amount.Equal(req.Amount) || got.Description != &desc {
		t.Fatalf("unexpected input: %+v", got)
	}
}
