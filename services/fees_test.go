package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chine", "chine"},
		{"  CHINE  ", "chine"},
		{"Côte d'Ivoire", "côte d'ivoire"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeCountry(tt.in); got != tt.want {
			t.Errorf("NormalizeCountry(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFeeForUsesScheduleRow(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"fee_id", "country_key", "country", "amount"}).
		AddRow(1, "chine", "Chine", 650000)
	mock.ExpectQuery("SELECT (.+) FROM `fees_by_country`").WillReturnRows(rows)

	fees := NewFeeService(500000)
	if got := fees.FeeFor(db, "  Chine "); got != 650000 {
		t.Errorf("FeeFor = %d, want 650000", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFeeForFallsBackToDefault(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `fees_by_country`").
		WillReturnRows(sqlmock.NewRows([]string{"fee_id", "country_key", "country", "amount"}))

	fees := NewFeeService(500000)
	if got := fees.FeeFor(db, "Canada"); got != 500000 {
		t.Errorf("FeeFor = %d, want the 500000 default", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpsertRejectsBadInput(t *testing.T) {
	fees := NewFeeService(500000)

	if _, err := fees.Upsert(nil, "   ", 100000); !IsValidation(err) {
		t.Errorf("blank country: got %v, want a validation error", err)
	}
	if _, err := fees.Upsert(nil, "Chine", 0); !IsValidation(err) {
		t.Errorf("zero amount: got %v, want a validation error", err)
	}
	if _, err := fees.Upsert(nil, "Chine", -5); !IsValidation(err) {
		t.Errorf("negative amount: got %v, want a validation error", err)
	}
}

func TestDeleteMissingFee(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `fees_by_country`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	fees := NewFeeService(500000)
	err := fees.Delete(db, 42)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want a not-found error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
