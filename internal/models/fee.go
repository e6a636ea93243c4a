package models

import "time"

// Fee status labels derived from a student's payment history.
const (
	FeeStatusCurrent  = "al_dia"
	FeeStatusOverdue  = "vencida"
	FeeStatusNoRecord = "sin_registro"
)

// FeePayment is an append-only record of a single fee payment. PaymentDate is
// the canonical YYYY-MM-DD string; rows are inserted or individually deleted,
// never updated.
type FeePayment struct {
	ID          int64     `db:"id" json:"id"`
	StudentID   int64     `db:"student_id" json:"student_id"`
	PaymentDate string    `db:"payment_date" json:"payment_date"`
	Amount      float64   `db:"amount" json:"amount"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FeePaymentEntry is one line of the payment history returned to callers.
type FeePaymentEntry struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// FeeStatus is the derived account state for one student. It is never stored;
// it is recomputed from the full history on every read.
type FeeStatus struct {
	StudentID   int64             `json:"student_id"`
	Status      string            `json:"status"`
	LastPayment string            `json:"last_payment,omitempty"`
	History     []FeePaymentEntry `json:"history"`
}
