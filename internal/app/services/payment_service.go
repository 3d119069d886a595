package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
)

type paymentRepository interface {
	CreateWithInstallment(ctx context.Context, p *models.Payment, inst models.Installment, feeStatus models.FeeStatus) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Payment, error)
	GetAllByFeeID(ctx context.Context, feeID string, offset uint64, limit int) ([]*models.Payment, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// PaymentService records payments against fees. The gateway interaction
// itself happens elsewhere; this service only persists outcomes.
type PaymentService struct {
	paymentRepo paymentRepository
	feeRepo     feeRepository
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(paymentRepo paymentRepository, feeRepo feeRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, feeRepo: feeRepo}
}

// Create records a successful payment and appends a paid installment on the
// fee, both inside one transaction so a failed fee update never leaves a
// stray payment. paid_amount grows by the payment amount and the fee status
// moves to paid or partial depending on the new total; due_amount is left
// untouched.
func (s *PaymentService) Create(ctx context.Context, req *dto.CreatePaymentRequest) (*models.Payment, error) {
	fee, err := s.feeRepo.GetByID(ctx, req.FeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFeeNotFound
		}
		return nil, err
	}
	if fee.IsDeleted {
		return nil, apperrors.ErrFeeNotFound
	}

	now := time.Now()
	payment := &models.Payment{
		ID:        uuid.New().String(),
		CampusID:  req.CampusID,
		FeeID:     req.FeeID,
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Status:    models.PaymentStatusSuccessful,
		PaidAt:    now,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	installment := models.Installment{
		Amount: req.Amount,
		PaidAt: now,
		Method: req.Method,
		Status: "paid",
	}
	newStatus := models.FeeStatusPartial
	if fee.PaidAmount+req.Amount >= fee.TotalAmount {
		newStatus = models.FeeStatusPaid
	}
	if err := s.paymentRepo.CreateWithInstallment(ctx, payment, installment, newStatus); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFeeNotUpdated
		}
		return nil, err
	}
	return payment, nil
}

// GetByID returns a payment; soft-deleted rows count as not found.
func (s *PaymentService) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.IsDeleted {
		return nil, apperrors.ErrPaymentNotFound
	}
	return payment, nil
}

// GetAllByCampusID lists a campus's payments with the total count.
func (s *PaymentService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Payment, int64, error) {
	payments, err := s.paymentRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// GetAllByFeeID lists the payments recorded against one fee.
func (s *PaymentService) GetAllByFeeID(ctx context.Context, feeID string, offset uint64, limit int) ([]*models.Payment, error) {
	return s.paymentRepo.GetAllByFeeID(ctx, feeID, offset, limit)
}

// UpdateByID applies a partial update (status/reference) and re-stamps updated_at.
func (s *PaymentService) UpdateByID(ctx context.Context, id string, req *dto.UpdatePaymentRequest) error {
	patch := req.ToPatch()
	patch["updated_at"] = time.Now()

	if err := s.paymentRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrPaymentNotFound
		}
		return err
	}
	return nil
}

// DeleteByID soft-deletes a payment record.
func (s *PaymentService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"updated_at": time.Now(),
	}
	if err := s.paymentRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrPaymentNotFound
		}
		return err
	}
	return nil
}
