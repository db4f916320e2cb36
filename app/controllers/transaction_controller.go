package controllers

import (
	"net/http"

	"github.com/risewynn/qellum/app/repositories"
	"github.com/risewynn/qellum/pkg/middleware"
	"github.com/risewynn/qellum/pkg/response"
)

type TransactionController struct {
	repo *repositories.TransactionRepository
}

func NewTransactionController() *TransactionController {
	return &TransactionController{repo: repositories.NewTransactionRepository()}
}

// List returns the caller's ledger history, newest first.
func (c *TransactionController) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	txs, err := c.repo.AllForUser(uid)
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, txs)
}
