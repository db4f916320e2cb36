package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/app/repositories"
	"github.com/risewynn/qellum/pkg/logger"
	"github.com/risewynn/qellum/pkg/metrics"
	"github.com/risewynn/qellum/pkg/orm"
)

// LedgerService owns the token balance. Every mutation happens inside a
// single database transaction so the balance, the order row and the
// ledger row always agree.
type LedgerService struct {
	users *repositories.UserRepository
}

func NewLedgerService() *LedgerService {
	return &LedgerService{users: repositories.NewUserRepository()}
}

// OrderDraft is what Debit persists alongside the balance decrement.
type OrderDraft struct {
	Type        string // models.PlanTypeAI or models.PlanTypeChef
	Details     string
	Content     string
	Status      string
	ChefUID     string
	CompletedAt *time.Time // set for orders born completed (AI plans)
}

// Credit increases a user's balance and writes a Purchase transaction.
// tokens must be positive; amount is the real-currency price paid.
func (s *LedgerService) Credit(uid string, tokens int64, amount decimal.Decimal, currency, memo string) (*models.Transaction, error) {
	if tokens <= 0 {
		return nil, fmt.Errorf("ledger: credit of %d tokens rejected", tokens)
	}

	var tx models.Transaction
	err := orm.Transaction(func(q *orm.Query) error {
		user, err := findUserForUpdate(q, uid)
		if err != nil {
			return err
		}

		affected, err := q.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{"token_balance": gorm.Expr("token_balance + ?", tokens)})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrUserNotFound
		}

		tx = models.Transaction{
			ReferenceID: uuid.NewString(),
			UserID:      user.ID,
			UserUID:     user.UID,
			Details:     memo,
			Tokens:      tokens,
			Amount:      amount,
			Currency:    currency,
			Type:        models.TxPurchase,
		}
		return q.Create(&tx)
	})
	if err != nil {
		return nil, err
	}

	s.users.InvalidateBalance(uid)
	metrics.TokensCredited.WithLabelValues("purchase").Add(float64(tokens))
	logger.Info("ledger: credited", "uid", uid, "tokens", tokens, "currency", currency)

	return &tx, nil
}

// Debit atomically charges cost tokens and records the order plus its
// ledger entry. A balance below cost fails the entire operation: no
// order, no transaction, no balance change.
func (s *LedgerService) Debit(uid string, cost int64, draft OrderDraft) (*models.MealPlan, *models.Transaction, error) {
	if cost <= 0 {
		return nil, nil, fmt.Errorf("ledger: debit of %d tokens rejected", cost)
	}

	var (
		plan models.MealPlan
		tx   models.Transaction
	)
	err := orm.Transaction(func(q *orm.Query) error {
		user, err := findUserForUpdate(q, uid)
		if err != nil {
			return err
		}

		// The balance guard lives in the UPDATE itself so two
		// concurrent debits cannot both pass a stale read.
		affected, err := q.Model(&models.User{}).
			Where("id = ? AND token_balance >= ?", user.ID, cost).
			Updates(map[string]interface{}{"token_balance": gorm.Expr("token_balance - ?", cost)})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientTokens
		}

		plan = models.MealPlan{
			ReferenceID: uuid.NewString(),
			UserID:      user.ID,
			UserUID:     user.UID,
			Type:        draft.Type,
			Cost:        cost,
			Details:     draft.Details,
			Content:     draft.Content,
			Status:      draft.Status,
			ChefUID:     draft.ChefUID,
			CompletedAt: draft.CompletedAt,
		}
		if err := q.Create(&plan); err != nil {
			return err
		}

		tx = models.Transaction{
			ReferenceID: uuid.NewString(),
			UserID:      user.ID,
			UserUID:     user.UID,
			Details:     draft.Details,
			Tokens:      -cost,
			Amount:      decimal.Zero,
			Currency:    models.CurrencyGBP,
			Type:        models.TxMealPlan,
			MealPlanID:  &plan.ID,
			MealPlanRef: plan.ReferenceID,
		}
		return q.Create(&tx)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientTokens) {
			metrics.DebitsDeclined.Inc()
		}
		return nil, nil, err
	}

	s.users.InvalidateBalance(uid)
	metrics.TokensDebited.WithLabelValues(planTypeLabel(draft.Type)).Add(float64(cost))
	logger.Info("ledger: debited", "uid", uid, "tokens", cost, "plan", plan.ReferenceID)

	return &plan, &tx, nil
}

// Adjust applies a signed manual correction to a user's balance and
// records it. Negative adjustments respect the non-negativity invariant.
// Admin surface only.
func (s *LedgerService) Adjust(uid string, tokens int64, memo string) (*models.Transaction, error) {
	if tokens == 0 {
		return nil, fmt.Errorf("ledger: zero adjustment rejected")
	}

	var tx models.Transaction
	err := orm.Transaction(func(q *orm.Query) error {
		user, err := findUserForUpdate(q, uid)
		if err != nil {
			return err
		}

		affected, err := q.Model(&models.User{}).
			Where("id = ? AND token_balance + ? >= 0", user.ID, tokens).
			Updates(map[string]interface{}{"token_balance": gorm.Expr("token_balance + ?", tokens)})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientTokens
		}

		tx = models.Transaction{
			ReferenceID: uuid.NewString(),
			UserID:      user.ID,
			UserUID:     user.UID,
			Details:     memo,
			Tokens:      tokens,
			Amount:      decimal.Zero,
			Currency:    models.CurrencyGBP,
			Type:        models.TxAdjustment,
		}
		return q.Create(&tx)
	})
	if err != nil {
		return nil, err
	}

	s.users.InvalidateBalance(uid)
	if tokens > 0 {
		metrics.TokensCredited.WithLabelValues("adjustment").Add(float64(tokens))
	}
	logger.Info("ledger: adjusted", "uid", uid, "tokens", tokens)

	return &tx, nil
}

func findUserForUpdate(q *orm.Query, uid string) (models.User, error) {
	var user models.User
	err := q.Model(&models.User{}).Where("uid = ?", uid).First(&user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrUserNotFound
	}
	return user, err
}

func planTypeLabel(planType string) string {
	if strings.HasPrefix(planType, "AI") {
		return "ai"
	}
	return "chef"
}
