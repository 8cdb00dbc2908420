// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/config"
	"github.com/jenny07007/deserhub-backend/internal/database"
	"github.com/jenny07007/deserhub-backend/internal/models"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

// PaymentService funds ledger accounts from card payments. A deposit starts
// as a Stripe PaymentIntent and is credited to the ledger only after Stripe
// reports the intent as succeeded.
type PaymentService struct {
	db     *gorm.DB
	config *config.Config
	ledger *LedgerService
}

type CreateDepositRequest struct {
	Amount   uint64 `json:"amount" validate:"required,min=1"` // in the smallest currency unit
	Currency string `json:"currency,omitempty"`
}

type DepositIntentResponse struct {
	DepositID    uuid.UUID `json:"deposit_id"`
	ClientSecret string    `json:"client_secret"`
	PaymentID    string    `json:"payment_id"`
	Status       string    `json:"status"`
}

type ConfirmDepositRequest struct {
	DepositID       uuid.UUID `json:"deposit_id" validate:"required"`
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config, ledger *LedgerService) *PaymentService {
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
		ledger: ledger,
	}
}

// CreateDepositIntent records a pending deposit and opens the matching
// Stripe PaymentIntent.
func (s *PaymentService) CreateDepositIntent(userID uuid.UUID, req *CreateDepositRequest) (*DepositIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.config.Payment.DepositCurrency
	}

	account, err := s.ledger.GetOrCreateAccount(nil, userID, models.AccountKindUser)
	if err != nil {
		return nil, err
	}

	deposit := &models.Deposit{
		UserID:    userID,
		AccountID: account.ID,
		Amount:    req.Amount,
		Currency:  currency,
		Status:    models.DepositStatusPending,
	}
	if err := s.db.Create(deposit).Error; err != nil {
		return nil, fmt.Errorf("failed to create deposit: %w", err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", userID.String())
	params.AddMetadata("deposit_id", deposit.ID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	deposit.PaymentReference = pi.ID
	if err := s.db.Save(deposit).Error; err != nil {
		return nil, fmt.Errorf("failed to update deposit: %w", err)
	}

	return &DepositIntentResponse{
		DepositID:    deposit.ID,
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmDeposit checks the PaymentIntent with Stripe and, when it has
// succeeded, credits the user's ledger account. Confirming the same deposit
// twice is a no-op.
func (s *PaymentService) ConfirmDeposit(userID uuid.UUID, req *ConfirmDepositRequest) (*models.Deposit, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var deposit models.Deposit
	err := s.db.Where("id = ? AND user_id = ?", req.DepositID, userID).First(&deposit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("deposit not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if deposit.Status == models.DepositStatusCompleted {
		return &deposit, nil
	}
	if deposit.PaymentReference != req.PaymentIntentID {
		return nil, errors.New("payment intent does not match deposit")
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
			// Guarded status flip so a concurrent confirmation cannot credit twice.
			res := tx.Model(&models.Deposit{}).
				Where("id = ? AND status = ?", deposit.ID, models.DepositStatusPending).
				Updates(map[string]interface{}{
					"status":       models.DepositStatusCompleted,
					"processed_at": time.Now(),
				})
			if res.Error != nil {
				return fmt.Errorf("failed to update deposit: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil
			}
			return s.ledger.Credit(tx, deposit.AccountID, deposit.Amount)
		})
		if err != nil {
			return nil, err
		}
		deposit.Status = models.DepositStatusCompleted

	case stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusProcessing:
		// Still pending; leave the deposit as is.

	default:
		deposit.Status = models.DepositStatusFailed
		if err := s.db.Save(&deposit).Error; err != nil {
			return nil, fmt.Errorf("failed to update deposit: %w", err)
		}
	}

	return &deposit, nil
}

func (s *PaymentService) GetBalance(userID uuid.UUID) (uint64, error) {
	account, err := s.ledger.GetOrCreateAccount(nil, userID, models.AccountKindUser)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (s *PaymentService) GetUserDeposits(userID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Deposit{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var deposits []models.Deposit
	query = utils.ApplySort(query, params, []string{"created_at", "amount", "status"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&deposits).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(deposits, total, params)
	return &result, nil
}
