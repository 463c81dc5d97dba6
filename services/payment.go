package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"study-abroad-api/models"

	"gorm.io/gorm"
)

var knownMethods = map[string]bool{
	models.MethodCash:         true,
	models.MethodOrangeMoney:  true,
	models.MethodMoovMoney:    true,
	models.MethodWave:         true,
	models.MethodBankTransfer: true,
}

// Balance is the reconciliation result for one application, in XOF.
type Balance struct {
	TotalPaid int64 `json:"total_paid"`
	AmountDue int64 `json:"amount_due"`
	Remaining int64 `json:"remaining"`
}

// PaymentService records payment events and reconciles them against what
// an application owes, normalized to the accounting currency.
type PaymentService struct {
	rates RateProvider
	cache *Cache
}

func NewPaymentService(rates RateProvider, cache *Cache) *PaymentService {
	return &PaymentService{rates: rates, cache: cache}
}

type RecordPaymentInput struct {
	UserID        int
	ApplicationID *int
	Amount        float64
	Currency      string
	Method        string
	Reference     string
	ActorName     string
}

// RecordPayment inserts one payment event. The balance guard runs inside
// the insert transaction so two concurrent payments cannot both pass a
// stale check. Bank transfers start PENDING until confirmed.
func (s *PaymentService) RecordPayment(db *gorm.DB, in RecordPaymentInput, actor Actor) (*models.Payment, error) {
	if !actor.IsAdmin {
		return nil, ErrNotPermitted
	}
	if in.Amount <= 0 {
		return nil, NewValidationError("amount", "amount must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if _, ok := s.rates.Rate(currency); !ok {
		return nil, NewValidationError("currency", "unsupported currency "+currency)
	}
	if !knownMethods[in.Method] {
		return nil, NewValidationError("method", "unknown payment method "+in.Method)
	}

	status := models.PaymentCompleted
	if in.Method == models.MethodBankTransfer {
		status = models.PaymentPending
	}

	now := time.Now()
	payment := models.Payment{
		UserID:        in.UserID,
		ApplicationID: in.ApplicationID,
		Amount:        in.Amount,
		Currency:      currency,
		Method:        in.Method,
		Status:        status,
		Reference:     strings.TrimSpace(in.Reference),
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	var appUserID int
	err := db.Transaction(func(tx *gorm.DB) error {
		if in.ApplicationID != nil {
			balance, err := s.balanceInTx(tx, *in.ApplicationID)
			if err != nil {
				return err
			}
			paidXOF, err := ConvertToXOF(s.rates, in.Amount, currency)
			if err != nil {
				return err
			}
			if paidXOF > balance.Remaining {
				return NewValidationError("amount",
					fmt.Sprintf("payment of %d XOF exceeds the remaining balance of %d XOF", paidXOF, balance.Remaining))
			}

			var application models.Application
			if err := tx.First(&application, *in.ApplicationID).Error; err != nil {
				return err
			}
			appUserID = application.UserID
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		actorName := in.ActorName
		if actorName == "" {
			actorName = actor.Name
		}
		return LogActivity(tx, models.Activity{
			Type:        models.ActivityPaymentNew,
			Title:       fmt.Sprintf("Paiement de %.0f %s", payment.Amount, payment.Currency),
			Description: fmt.Sprintf("%s a enregistré un paiement de %.0f %s.", actorName, payment.Amount, payment.Currency),
			Actor:       actorName,
			Color:       ColorYellow,
			RefID:       fmt.Sprintf("%d", payment.PaymentID),
		})
	})
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, err
		}
		return nil, NewStorageError(err)
	}

	if in.ApplicationID != nil {
		s.cache.InvalidateApplicationViews(*in.ApplicationID, appUserID)
	} else {
		s.cache.Invalidate(KeyAdminDashboard(), KeyStudentDashboard(in.UserID))
	}
	return &payment, nil
}

// ComputeBalance reconciles an application's payments against its due
// amount, everything normalized to XOF.
func (s *PaymentService) ComputeBalance(db *gorm.DB, appID int) (Balance, error) {
	balance, err := s.balanceInTx(db, appID)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) || IsValidation(err) {
			return Balance{}, err
		}
		return Balance{}, NewStorageError(err)
	}
	return balance, nil
}

func (s *PaymentService) balanceInTx(tx *gorm.DB, appID int) (Balance, error) {
	var application models.Application
	if err := tx.Preload("University").First(&application, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Balance{}, NewNotFoundError("application")
		}
		return Balance{}, err
	}

	// The university cost range is the reference amount when present and
	// numeric; otherwise the dossier's own application fee.
	amountDue := application.ApplicationFee
	if application.University != nil {
		if due, err := strconv.ParseFloat(strings.TrimSpace(application.University.CostRange), 64); err == nil && due > 0 {
			amountDue = int64(due)
		}
	}

	var payments []models.Payment
	if err := tx.Where("application_id = ? AND status <> ?", appID, models.PaymentFailed).
		Find(&payments).Error; err != nil {
		return Balance{}, err
	}

	var totalPaid int64
	for _, p := range payments {
		paid, err := ConvertToXOF(s.rates, p.Amount, p.Currency)
		if err != nil {
			// A stored payment in an unknown currency means the rate
			// table regressed; surface it instead of guessing.
			return Balance{}, err
		}
		totalPaid += paid
	}

	remaining := amountDue - totalPaid
	if remaining < 0 {
		remaining = 0
	}
	return Balance{TotalPaid: totalPaid, AmountDue: amountDue, Remaining: remaining}, nil
}

// DeletePayment removes a payment and traces the deletion in the feed,
// capturing the amount and currency before the row disappears.
func (s *PaymentService) DeletePayment(db *gorm.DB, paymentID int, actor Actor) error {
	if !actor.IsAdmin {
		return ErrNotPermitted
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("payment")
			}
			return err
		}

		// Drop the feed row that announced this payment.
		if err := tx.Where("ref_id = ? AND type = ?",
			fmt.Sprintf("%d", paymentID), models.ActivityPaymentNew).
			Delete(&models.Activity{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Payment{}, paymentID).Error; err != nil {
			return err
		}

		return LogActivity(tx, models.Activity{
			Type:        models.ActivityPaymentDeleted,
			Title:       fmt.Sprintf("Suppression paiement %.0f %s", payment.Amount, payment.Currency),
			Description: fmt.Sprintf("Un paiement de %.0f %s a été supprimé.", payment.Amount, payment.Currency),
			Actor:       actor.Name,
			Color:       ColorRed,
			RefID:       fmt.Sprintf("%d", paymentID),
		})
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return err
		}
		return NewStorageError(err)
	}

	s.cache.Invalidate(KeyAdminDashboard())
	return nil
}
