package server

import (
	"fmt"

	"github.com/risewynn/qellum/app/services"
	"github.com/risewynn/qellum/pkg/event"
	"github.com/risewynn/qellum/pkg/logger"
	"github.com/risewynn/qellum/pkg/mail"
	"github.com/risewynn/qellum/pkg/storage"
	"github.com/risewynn/qellum/pkg/workerpool"
)

// pool runs the order side effects so they never block a request.
var pool *workerpool.Pool

// registerListeners wires the "order.completed" side effects: notify the
// customer and archive the plan document.
func registerListeners() {
	pool = workerpool.New(10)

	event.Listen("order.completed", func(payload interface{}) {
		done, ok := payload.(services.OrderCompleted)
		if !ok {
			return
		}

		// The event fires on its own goroutine, so waiting for a pool
		// slot under burst is safe and never drops a notification.
		err := pool.SubmitWait(func() {
			notifyCustomer(done)
			archivePlan(done)
		})
		if err != nil {
			logger.Warn("listeners: side effects dropped", "plan", done.Plan.ReferenceID, "error", err)
		}
	})
}

func shutdownListeners() {
	if pool != nil {
		pool.Shutdown()
	}
	event.Flush()
}

func notifyCustomer(done services.OrderCompleted) {
	if done.UserEmail == "" {
		return
	}

	err := mail.To(done.UserEmail).
		Subject("Your meal plan is ready").
		Body(fmt.Sprintf("<p>Your %s is ready to view in your dashboard.</p><p>%s</p>",
			done.Plan.Type, done.Plan.Details)).
		Send()
	if err != nil {
		logger.Warn("listeners: notification mail failed", "plan", done.Plan.ReferenceID, "error", err)
	}
}

func archivePlan(done services.OrderCompleted) {
	path := fmt.Sprintf("plans/%s.md", done.Plan.ReferenceID)
	if err := storage.Put(path, []byte(done.Plan.Content)); err != nil {
		logger.Warn("listeners: plan archive failed", "plan", done.Plan.ReferenceID, "error", err)
	}
}
