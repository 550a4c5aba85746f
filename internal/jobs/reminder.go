package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/freshveld/fulfillment-api/internal/application/service"
	"github.com/freshveld/fulfillment-api/pkg/email"
	"github.com/google/uuid"
)

// ReminderJob periodically emails customers whose invoices are past due.
// Invoices are grouped per customer so each customer gets at most one email
// per run. Customers without an email address on file are skipped.
type ReminderJob struct {
	ledger   *service.LedgerService
	email    *email.EmailService
	interval time.Duration
}

// NewReminderJob creates a new reminder job
func NewReminderJob(ledger *service.LedgerService, emailService *email.EmailService, interval time.Duration) *ReminderJob {
	return &ReminderJob{
		ledger:   ledger,
		email:    emailService,
		interval: interval,
	}
}

// Start runs the reminder loop until the context is cancelled. One run fires
// immediately, then one per interval.
func (j *ReminderJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *ReminderJob) runOnce(ctx context.Context) {
	views, err := j.ledger.GetOverdueInvoices(ctx, time.Now())
	if err != nil {
		log.Printf("reminder job: failed to load overdue invoices: %v", err)
		return
	}
	if len(views) == 0 {
		return
	}

	type customerReminder struct {
		name     string
		email    string
		invoices []email.OverdueInvoice
	}
	byCustomer := make(map[uuid.UUID]*customerReminder)

	for i := range views {
		view := &views[i]
		reminder, ok := byCustomer[view.CustomerID]
		if !ok {
			if view.Customer.Email == nil {
				continue
			}
			reminder = &customerReminder{
				name:  view.Customer.Name,
				email: *view.Customer.Email,
			}
			byCustomer[view.CustomerID] = reminder
		}
		reminder.invoices = append(reminder.invoices, email.OverdueInvoice{
			InvoiceNo: view.InvoiceNo,
			DueDate:   view.DueDate.Format("02 Jan 2006"),
			AmountDue: fmt.Sprintf("R %.2f", view.AmountDueDecimal()),
		})
	}

	for _, reminder := range byCustomer {
		if err := j.email.SendOverdueReminder(reminder.email, reminder.name, reminder.invoices); err != nil {
			log.Printf("reminder job: failed to email %s: %v", reminder.email, err)
			continue
		}
		log.Printf("reminder job: sent overdue reminder to %s (%d invoices)", reminder.email, len(reminder.invoices))
	}
}
