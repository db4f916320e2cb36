package services

import (
	"fmt"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/app/pricing"
)

// PurchaseService turns a token package purchase into a ledger credit.
type PurchaseService struct {
	ledger *LedgerService
}

func NewPurchaseService() *PurchaseService {
	return &PurchaseService{ledger: NewLedgerService()}
}

// Purchase looks up the package, prices it in the requested currency and
// credits the tokens.
//
// TODO: integrate the payment gateway; today the purchase is recorded as
// paid without collecting money, matching the checkout stub.
func (s *PurchaseService) Purchase(uid, packageID, currency string) (*models.Transaction, error) {
	pkg, ok := pricing.FindPackage(packageID)
	if !ok {
		return nil, ErrPackageNotFound
	}

	amount, err := pkg.Price(currency)
	if err != nil {
		return nil, err
	}

	memo := fmt.Sprintf("%s package (%d tokens)", pkg.Name, pkg.Tokens)
	return s.ledger.Credit(uid, pkg.Tokens, amount, currency, memo)
}
