package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"travelbudget/internal/money"
)

type expenseInput struct {
	Date     string       `json:"date" binding:"required,calendar_date"`
	Category string       `json:"category" binding:"required,category"`
	Amount   money.Amount `json:"amount" binding:"required,positive_amount"`
}

func TestRegister(t *testing.T) {
	Register()

	tests := []struct {
		name      string
		in        expenseInput
		wantField string
	}{
		{
			name: "valid",
			in:   expenseInput{Date: "2025-07-01", Category: "Food", Amount: money.MustParse("12.30")},
		},
		{
			name:      "blank category",
			in:        expenseInput{Date: "2025-07-01", Category: "   ", Amount: money.MustParse("1")},
			wantField: "category",
		},
		{
			name:      "bad date",
			in:        expenseInput{Date: "07/01/2025", Category: "Food", Amount: money.MustParse("1")},
			wantField: "date",
		},
		{
			name:      "zero amount",
			in:        expenseInput{Date: "2025-07-01", Category: "Food", Amount: money.Zero},
			wantField: "amount",
		},
		{
			name:      "negative amount",
			in:        expenseInput{Date: "2025-07-01", Category: "Food", Amount: money.MustParse("-4")},
			wantField: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			verrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			if verrs[0].Field() != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verrs[0].Field())
			}
		})
	}
}
