package validate_test

import (
	"testing"

	"github.com/risewynn/qellum/pkg/validate"
)

type purchaseInput struct {
	PackageID string `json:"packageId" validate:"required,in=sprout,gourmet,epicurean"`
	Currency  string `json:"currency"  validate:"required,in=GBP,EUR"`
}

type planInput struct {
	Days   int    `json:"days"   validate:"required,gte=1,lte=7"`
	Brief  string `json:"brief"  validate:"nullable,max=2000"`
	Email  string `json:"email"  validate:"nullable,email"`
	Tokens int    `json:"tokens" validate:"required,between=1,5000"`
}

func TestStruct_Valid(t *testing.T) {
	errs := validate.Struct(&purchaseInput{PackageID: "gourmet", Currency: "EUR"})
	if validate.HasErrors(errs) {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestStruct_Required(t *testing.T) {
	errs := validate.Struct(&purchaseInput{Currency: "GBP"})
	if errs["packageId"] == "" {
		t.Errorf("expected required error for packageId, got %v", errs)
	}
}

func TestStruct_InRuleKeepsCommaValues(t *testing.T) {
	errs := validate.Struct(&purchaseInput{PackageID: "sprout", Currency: "USD"})
	if errs["currency"] == "" {
		t.Errorf("USD should be rejected by in=GBP,EUR, got %v", errs)
	}

	for _, cur := range []string{"GBP", "EUR"} {
		errs := validate.Struct(&purchaseInput{PackageID: "sprout", Currency: cur})
		if errs["currency"] != "" {
			t.Errorf("%s should be accepted, got %q", cur, errs["currency"])
		}
	}
}

func TestStruct_NumericBounds(t *testing.T) {
	errs := validate.Struct(&planInput{Days: 9, Tokens: 100})
	if errs["days"] == "" {
		t.Errorf("days=9 should fail lte=7, got %v", errs)
	}

	errs = validate.Struct(&planInput{Days: 3, Tokens: 9000})
	if errs["tokens"] == "" {
		t.Errorf("tokens=9000 should fail between=1,5000, got %v", errs)
	}
}

func TestStruct_NullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(&planInput{Days: 2, Tokens: 50})
	if errs["brief"] != "" || errs["email"] != "" {
		t.Errorf("empty nullable fields must pass, got %v", errs)
	}

	errs = validate.Struct(&planInput{Days: 2, Tokens: 50, Email: "not-an-email"})
	if errs["email"] == "" {
		t.Errorf("non-empty nullable field must still be validated, got %v", errs)
	}
}
