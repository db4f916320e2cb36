package repositories

import (
	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/pkg/collection"
	"github.com/risewynn/qellum/pkg/orm"
)

// TransactionRepository handles database operations for Transaction.
type TransactionRepository struct{}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// AllForUser returns a user's ledger entries, newest first.
func (r *TransactionRepository) AllForUser(uid string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := orm.DB().
		Model(&models.Transaction{}).
		Where("user_uid = ?", uid).
		Order("created_at desc").
		Get(&txs)
	return txs, err
}

// SumForUser returns the sum of a user's token deltas. Together with the
// initial grant this must equal the current balance.
func (r *TransactionRepository) SumForUser(uid string) (int64, error) {
	var txs []models.Transaction
	err := orm.DB().
		Model(&models.Transaction{}).
		Where("user_uid = ?", uid).
		Get(&txs)
	if err != nil {
		return 0, err
	}

	return collection.Sum(txs, func(tx models.Transaction) int64 { return tx.Tokens }), nil
}
