package services

import (
	"errors"
	"testing"

	"study-abroad-api/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecordPaymentValidation(t *testing.T) {
	svc := NewPaymentService(DefaultRates(), NewCache(nil))

	base := RecordPaymentInput{UserID: 7, Amount: 100000, Currency: "XOF", Method: models.MethodCash}

	if _, err := svc.RecordPayment(nil, base, student); !errors.Is(err, ErrNotPermitted) {
		t.Errorf("non-admin: got %v, want ErrNotPermitted", err)
	}

	in := base
	in.Amount = 0
	if _, err := svc.RecordPayment(nil, in, admin); !IsValidation(err) {
		t.Errorf("zero amount: got %v, want a validation error", err)
	}

	in = base
	in.Currency = "GBP"
	if _, err := svc.RecordPayment(nil, in, admin); !IsValidation(err) {
		t.Errorf("unsupported currency: got %v, want a validation error", err)
	}

	in = base
	in.Method = "CHEQUE"
	if _, err := svc.RecordPayment(nil, in, admin); !IsValidation(err) {
		t.Errorf("unknown method: got %v, want a validation error", err)
	}
}

func TestRecordPaymentWithoutApplication(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPaymentService(DefaultRates(), NewCache(nil))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("INSERT INTO `activities`").
		WillReturnResult(sqlmock.NewResult(30, 1))
	mock.ExpectCommit()

	payment, err := svc.RecordPayment(db, RecordPaymentInput{
		UserID:    7,
		Amount:    150000,
		Currency:  "xof", // normalized on the way in
		Method:    models.MethodOrangeMoney,
		ActorName: "Admin",
	}, admin)
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.Currency != "XOF" {
		t.Errorf("currency = %s, want XOF", payment.Currency)
	}
	if payment.Status != models.PaymentCompleted {
		t.Errorf("status = %s, want COMPLETED", payment.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBankTransfersStartPending(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPaymentService(DefaultRates(), NewCache(nil))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(22, 1))
	mock.ExpectExec("INSERT INTO `activities`").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectCommit()

	payment, err := svc.RecordPayment(db, RecordPaymentInput{
		UserID:   7,
		Amount:   500,
		Currency: "EUR",
		Method:   models.MethodBankTransfer,
	}, admin)
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Errorf("status = %s, want PENDING", payment.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestComputeBalanceNormalizesToXOF(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPaymentService(DefaultRates(), NewCache(nil))

	mock.ExpectQuery("SELECT (.+) FROM `applications`").WillReturnRows(
		sqlmock.NewRows([]string{"application_id", "user_id", "university_id", "application_fee"}).
			AddRow(3, 7, nil, 500000))
	// FAILED rows are already filtered by the query.
	mock.ExpectQuery("SELECT (.+) FROM `payments`").WillReturnRows(
		sqlmock.NewRows([]string{"payment_id", "amount", "currency", "status"}).
			AddRow(1, 100, "EUR", models.PaymentCompleted).
			AddRow(2, 100000, "XOF", models.PaymentPending))

	balance, err := svc.ComputeBalance(db, 3)
	if err != nil {
		t.Fatalf("ComputeBalance: %v", err)
	}
	if balance.TotalPaid != 165596 { // 100 EUR at 655.957 plus 100000 XOF
		t.Errorf("total paid = %d, want 165596", balance.TotalPaid)
	}
	if balance.AmountDue != 500000 {
		t.Errorf("amount due = %d, want 500000", balance.AmountDue)
	}
	if balance.Remaining != 334404 {
		t.Errorf("remaining = %d, want 334404", balance.Remaining)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestComputeBalanceNeverNegative(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPaymentService(DefaultRates(), NewCache(nil))

	mock.ExpectQuery("SELECT (.+) FROM `applications`").WillReturnRows(
		sqlmock.NewRows([]string{"application_id", "user_id", "university_id", "application_fee"}).
			AddRow(3, 7, nil, 100000))
	mock.ExpectQuery("SELECT (.+) FROM `payments`").WillReturnRows(
		sqlmock.NewRows([]string{"payment_id", "amount", "currency", "status"}).
			AddRow(1, 150000, "XOF", models.PaymentCompleted))

	balance, err := svc.ComputeBalance(db, 3)
	if err != nil {
		t.Fatalf("ComputeBalance: %v", err)
	}
	if balance.Remaining != 0 {
		t.Errorf("remaining = %d, want 0 on overpayment", balance.Remaining)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeletePaymentRemovesFeedEntry(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPaymentService(DefaultRates(), NewCache(nil))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `payments`").WillReturnRows(
		sqlmock.NewRows([]string{"payment_id", "user_id", "amount", "currency"}).
			AddRow(21, 7, 150000, "XOF"))
	mock.ExpectExec("DELETE FROM `activities`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `payments`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `activities`").
		WillReturnResult(sqlmock.NewResult(32, 1))
	mock.ExpectCommit()

	if err := svc.DeletePayment(db, 21, admin); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
