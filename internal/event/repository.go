package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arenahub/event-dashboard-backend/internal/apperrors"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) Create(ctx context.Context, e *Event) error {
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		return err
	}
	if e.ID == 0 {
		// should not happen, the insert reports success only with a row back
		return fmt.Errorf("%w: insert returned no row", apperrors.ErrPersistence)
	}
	return nil
}

// ===========================
// 🔍 Get Event By ID
//
// Absence is (nil, nil), never an error.
func (r *Repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.DB.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 List Events With Filters & Pagination
//
// Page fetch and count run concurrently against the same predicate set. They
// share no snapshot, so total and the returned page can disagree under
// concurrent writes. Acceptable for a dashboard.
func (r *Repository) List(ctx context.Context, f Filters, page, limit int) ([]Event, int64, error) {
	offset := (page - 1) * limit

	var (
		events = []Event{}
		total  int64
	)

	errCh := make(chan error, 2)

	go func() {
		errCh <- r.filtered(ctx, f).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&events).Error
	}()
	go func() {
		errCh <- r.filtered(ctx, f).Count(&total).Error
	}()

	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			return nil, 0, err
		}
	}

	return events, total, nil
}

// filtered builds the conjunction of the supplied predicates. Search is a
// case-sensitive substring match over name OR location. Both date bounds
// compare against start_date: EndDate keeps events that begin on or before it.
func (r *Repository) filtered(ctx context.Context, f Filters) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&Event{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR location LIKE ?", pattern, pattern)
	}
	if f.StartDate != nil {
		q = q.Where("start_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("start_date <= ?", *f.EndDate)
	}
	return q
}

// ===========================
// 🛠 Update Event
//
// Applies only the supplied columns and always refreshes updated_at. Returns
// (nil, nil) when the id does not exist.
func (r *Repository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*Event, error) {
	fields := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		fields[k] = v
	}
	fields["updated_at"] = time.Now().UTC()

	res := r.DB.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// ===========================
// 🎫 Set NFT Mint Address
//
// Called by the external minting collaborator after a successful mint; the
// HTTP handlers never write this column. Reports whether the id existed.
func (r *Repository) SetMintAddress(ctx context.Context, id uint, addr string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&Event{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"nft_mint_address": addr,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ===========================
// ❌ Delete Event
//
// Success is confirmed by a follow-up lookup, not by the row count.
func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	if err := r.DB.WithContext(ctx).Delete(&Event{}, id).Error; err != nil {
		return false, err
	}

	e, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return e == nil, nil
}
