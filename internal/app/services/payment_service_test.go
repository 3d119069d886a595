package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
)

type fakePaymentRepo struct {
	payments       map[string]*models.Payment
	fees           *fakeFeeRepo
	installmentErr error
}

func newFakePaymentRepo(fees *fakeFeeRepo) *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*models.Payment{}, fees: fees}
}

func (r *fakePaymentRepo) CreateWithInstallment(_ context.Context, p *models.Payment, inst models.Installment, feeStatus models.FeeStatus) error {
	if r.installmentErr != nil {
		return r.installmentErr
	}
	f, ok := r.fees.fees[p.FeeID]
	if !ok || f.IsDeleted {
		return repositories.ErrNotFound
	}
	r.payments[p.ID] = p
	f.InstallmentsPaid = append(f.InstallmentsPaid, inst)
	f.PaidAmount += inst.Amount
	f.Status = feeStatus
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id string) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePaymentRepo) GetAllByCampusID(_ context.Context, campusID string, _ uint64, _ int) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range r.payments {
		if p.CampusID == campusID && !p.IsDeleted {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) GetAllByFeeID(_ context.Context, feeID string, _ uint64, _ int) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range r.payments {
		if p.FeeID == feeID && !p.IsDeleted {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) CountByCampusID(_ context.Context, campusID string) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.CampusID == campusID && !p.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakePaymentRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	p, ok := r.payments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := patch["status"]; ok {
		p.Status = v.(models.PaymentStatus)
	}
	if v, ok := patch["is_deleted"]; ok {
		p.IsDeleted = v.(bool)
	}
	return nil
}

type fakeFeeRepo struct {
	fees map[string]*models.Fee
}

func newFakeFeeRepo() *fakeFeeRepo {
	return &fakeFeeRepo{fees: map[string]*models.Fee{}}
}

func (r *fakeFeeRepo) Create(_ context.Context, f *models.Fee) error {
	r.fees[f.ID] = f
	return nil
}

func (r *fakeFeeRepo) GetByID(_ context.Context, id string) (*models.Fee, error) {
	f, ok := r.fees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFeeRepo) GetAllByCampusID(_ context.Context, campusID string, _ uint64, _ int) ([]*models.Fee, error) {
	var out []*models.Fee
	for _, f := range r.fees {
		if f.CampusID == campusID && !f.IsDeleted {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeFeeRepo) GetAllByStudentID(_ context.Context, studentID string, _ uint64, _ int) ([]*models.Fee, error) {
	var out []*models.Fee
	for _, f := range r.fees {
		if f.StudentID == studentID && !f.IsDeleted {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeFeeRepo) CountByCampusID(_ context.Context, campusID string) (int64, error) {
	var n int64
	for _, f := range r.fees {
		if f.CampusID == campusID && !f.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeFeeRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	f, ok := r.fees[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := patch["paid_amount"]; ok {
		f.PaidAmount = v.(float64)
	}
	if v, ok := patch["due_amount"]; ok {
		f.DueAmount = v.(float64)
	}
	if v, ok := patch["status"]; ok {
		f.Status = v.(models.FeeStatus)
	}
	if v, ok := patch["is_deleted"]; ok {
		f.IsDeleted = v.(bool)
	}
	return nil
}

func seedFee(repo *fakeFeeRepo, id string, total, paid float64) *models.Fee {
	fee := &models.Fee{
		ID:          id,
		CampusID:    "campus-1",
		StudentID:   "student-1",
		TotalAmount: total,
		PaidAmount:  paid,
		DueAmount:   total - paid,
		Status:      models.FeeStatusPending,
	}
	repo.fees[id] = fee
	return fee
}

func TestPaymentServiceCreatePartial(t *testing.T) {
	feeRepo := newFakeFeeRepo()
	paymentRepo := newFakePaymentRepo(feeRepo)
	seedFee(feeRepo, "fee-1", 1000, 0)
	svc := NewPaymentService(paymentRepo, feeRepo)

	payment, err := svc.Create(context.Background(), &dto.CreatePaymentRequest{
		CampusID:  "campus-1",
		FeeID:     "fee-1",
		StudentID: "student-1",
		Amount:    400,
		Method:    "card",
		Reference: "txn-123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusSuccessful, payment.Status)
	assert.False(t, payment.PaidAt.IsZero())

	fee := feeRepo.fees["fee-1"]
	assert.Equal(t, models.FeeStatusPartial, fee.Status)
	assert.Equal(t, 400.0, fee.PaidAmount)
	require.Len(t, fee.InstallmentsPaid, 1)
	assert.Equal(t, "paid", fee.InstallmentsPaid[0].Status)
	assert.Equal(t, "card", fee.InstallmentsPaid[0].Method)

	// due_amount is a snapshot; recording a payment never recomputes it.
	assert.Equal(t, 1000.0, fee.DueAmount)
}

func TestPaymentServiceCreateSettlesFee(t *testing.T) {
	feeRepo := newFakeFeeRepo()
	paymentRepo := newFakePaymentRepo(feeRepo)
	seedFee(feeRepo, "fee-1", 1000, 600)
	svc := NewPaymentService(paymentRepo, feeRepo)

	_, err := svc.Create(context.Background(), &dto.CreatePaymentRequest{
		CampusID:  "campus-1",
		FeeID:     "fee-1",
		StudentID: "student-1",
		Amount:    400,
		Method:    "upi",
	})
	require.NoError(t, err)

	assert.Equal(t, models.FeeStatusPaid, feeRepo.fees["fee-1"].Status)
}

func TestPaymentServiceCreateOverpaymentStillSettles(t *testing.T) {
	feeRepo := newFakeFeeRepo()
	paymentRepo := newFakePaymentRepo(feeRepo)
	seedFee(feeRepo, "fee-1", 1000, 900)
	svc := NewPaymentService(paymentRepo, feeRepo)

	_, err := svc.Create(context.Background(), &dto.CreatePaymentRequest{
		CampusID:  "campus-1",
		FeeID:     "fee-1",
		StudentID: "student-1",
		Amount:    500,
		Method:    "cash",
	})
	require.NoError(t, err)

	fee := feeRepo.fees["fee-1"]
	assert.Equal(t, models.FeeStatusPaid, fee.Status)
	assert.Equal(t, 1400.0, fee.PaidAmount)
}

func TestPaymentServiceCreateFeeNotFound(t *testing.T) {
	feeRepo := newFakeFeeRepo()
	svc := NewPaymentService(newFakePaymentRepo(feeRepo), feeRepo)

	_, err := svc.Create(context.Background(), &dto.CreatePaymentRequest{
		CampusID:  "campus-1",
		FeeID:     "missing",
		StudentID: "student-1",
		Amount:    100,
		Method:    "card",
	})
	assert.ErrorIs(t, err, apperrors.ErrFeeNotFound)
}

func TestPaymentServiceCreateDeletedFee(t *testing.T) {
	feeRepo := newFakeFeeRepo()
	fee := seedFee(feeRepo, "fee-1", 1000, 0)
	fee.IsDeleted = true
	svc := NewPaymentService(newFakePaymentRepo(feeRepo), feeRepo)

	_, err := svc.Create(context.Background(), &dto.CreatePaymentRequest{
		CampusID:  "campus-1",
		FeeID:     "fee-1",
		StudentID: "student-1",
		Amount:    100,
		Method:    "card",
	})
	assert.ErrorIs(t, err, apperrors.ErrFeeNotFound)
}

func TestPaymentServiceCreateFeeVanishesMidWrite(t *testing.T) {
	feeRepo := newFakeFeeRepo()
	paymentRepo := newFakePaymentRepo(feeRepo)
	seedFee(feeRepo, "fee-1", 1000, 0)
	paymentRepo.installmentErr = repositories.ErrNotFound
	svc := NewPaymentService(paymentRepo, feeRepo)

	_, err := svc.Create(context.Background(), &dto.CreatePaymentRequest{
		CampusID:  "campus-1",
		FeeID:     "fee-1",
		StudentID: "student-1",
		Amount:    100,
		Method:    "card",
	})
	require.ErrorIs(t, err, apperrors.ErrFeeNotUpdated)

	// The write is all-or-nothing: no payment without its installment.
	assert.Empty(t, paymentRepo.payments)
	assert.Empty(t, feeRepo.fees["fee-1"].InstallmentsPaid)
}

func TestPaymentServiceSoftDelete(t *testing.T) {
	feeRepo := newFakeFeeRepo()
	paymentRepo := newFakePaymentRepo(feeRepo)
	seedFee(feeRepo, "fee-1", 1000, 0)
	svc := NewPaymentService(paymentRepo, feeRepo)

	payment, err := svc.Create(context.Background(), &dto.CreatePaymentRequest{
		CampusID:  "campus-1",
		FeeID:     "fee-1",
		StudentID: "student-1",
		Amount:    100,
		Method:    "card",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(context.Background(), payment.ID))

	_, err = svc.GetByID(context.Background(), payment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
}
