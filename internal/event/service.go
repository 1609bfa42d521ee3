package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/arenahub/event-dashboard-backend/internal/apperrors"
)

const (
	defaultTimezone = "GMT-6"

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100 // hard cap, unbounded page sizes are not served

	// The list query is abandoned after this deadline. The store is not
	// guaranteed to cancel its side, so a timeout means "unknown outcome".
	listTimeout = 15 * time.Second

	cacheTTL = 5 * time.Minute

	// export is a bounded snapshot, not a streaming dump
	exportLimit = 5000
)

// Service wraps business logic for dashboard events: input mapping and
// defaults, the optional read cache, and classification of raw store errors
// into the API taxonomy.
type Service struct {
	Repo  *Repository
	Cache *redis.Client // nil disables caching
}

func NewService(r *Repository, cache *redis.Client) *Service {
	return &Service{Repo: r, Cache: cache}
}

func cacheKey(id uint) string {
	return fmt.Sprintf("event:%d", id)
}

// ===========================
// 🎯 Create Event
func (s *Service) Create(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	startDate, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidation(map[string]string{"startDate": "must be a parseable date"})
	}
	endDate, err := ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidation(map[string]string{"endDate": "must be a parseable date"})
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}

	e := &Event{
		Name:            req.Name,
		Description:     optionalString(req.Description),
		StartDate:       startDate,
		EndDate:         endDate,
		Location:        req.Location,
		Category:        optionalString(req.Category),
		SubCategory:     optionalString(req.SubCategory),
		Status:          status,
		TicketsSold:     req.TicketsSold,
		TotalRevenue:    req.TotalRevenue,
		UniqueAttendees: req.UniqueAttendees,
		ImageURL:        optionalString(req.ImageURL),
		LogoURL:         optionalString(req.LogoURL),
		Policy:          optionalString(req.Policy),
		Organizer:       optionalString(req.Organizer),
		OrganizerLogo:   optionalString(req.OrganizerLogo),
		Teams:           marshalJSON(req.Teams),
		Tags:            marshalJSON(req.Tags),
		Timezone:        timezone,
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		if errors.Is(err, apperrors.ErrPersistence) {
			return nil, err
		}
		return nil, apperrors.ClassifyPostgres(err)
	}
	return e, nil
}

// ===========================
// 🔍 Get Event
func (s *Service) Get(ctx context.Context, id uint) (*Event, error) {
	if e := s.cacheGet(ctx, id); e != nil {
		return e, nil
	}

	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ClassifyPostgres(err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: event %d", apperrors.ErrNotFound, id)
	}

	s.cacheSet(ctx, e)
	return e, nil
}

// ===========================
// 📄 List Events
func (s *Service) List(ctx context.Context, f Filters, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	events, total, err := s.Repo.List(ctx, f, page, limit)
	if err != nil {
		return nil, apperrors.ClassifyPostgres(err)
	}

	return &ListResponse{
		Events: events,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

// ===========================
// 🛠 Update Event
func (s *Service) Update(ctx context.Context, id uint, req *UpdateEventRequest) (*Event, error) {
	updates, err := buildUpdates(req)
	if err != nil {
		return nil, err
	}

	e, err := s.Repo.Update(ctx, id, updates)
	if err != nil {
		return nil, apperrors.ClassifyPostgres(err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: event %d", apperrors.ErrNotFound, id)
	}

	s.cacheInvalidate(ctx, id)
	return e, nil
}

// ===========================
// ❌ Delete Event
func (s *Service) Delete(ctx context.Context, id uint) error {
	gone, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return apperrors.ClassifyPostgres(err)
	}
	if !gone {
		return fmt.Errorf("%w: event %d", apperrors.ErrNotFound, id)
	}

	s.cacheInvalidate(ctx, id)
	return nil
}

// ===========================
// 🧱 Update Mapping

// buildUpdates turns the partial request into a column → value map. Nil
// pointers are absent fields and stay untouched; empty strings on optional
// text/URL columns clear the stored value. An explicit JSON null decodes to
// the same nil pointer as an absent key, so null also means "leave
// unchanged" — clients clear a column by sending "".
func buildUpdates(req *UpdateEventRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = nullable(*req.Description)
	}
	if req.StartDate != nil {
		t, err := ParseDate(*req.StartDate)
		if err != nil {
			return nil, apperrors.NewValidation(map[string]string{"startDate": "must be a parseable date"})
		}
		updates["start_date"] = t
	}
	if req.EndDate != nil {
		t, err := ParseDate(*req.EndDate)
		if err != nil {
			return nil, apperrors.NewValidation(map[string]string{"endDate": "must be a parseable date"})
		}
		updates["end_date"] = t
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Category != nil {
		updates["category"] = nullable(*req.Category)
	}
	if req.SubCategory != nil {
		updates["sub_category"] = nullable(*req.SubCategory)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.TicketsSold != nil {
		updates["tickets_sold"] = *req.TicketsSold
	}
	if req.TotalRevenue != nil {
		updates["total_revenue"] = *req.TotalRevenue
	}
	if req.UniqueAttendees != nil {
		updates["unique_attendees"] = *req.UniqueAttendees
	}
	if req.ImageURL != nil {
		updates["image_url"] = nullable(*req.ImageURL)
	}
	if req.LogoURL != nil {
		updates["logo_url"] = nullable(*req.LogoURL)
	}
	if req.Policy != nil {
		updates["policy"] = nullable(*req.Policy)
	}
	if req.Organizer != nil {
		updates["organizer"] = nullable(*req.Organizer)
	}
	if req.OrganizerLogo != nil {
		updates["organizer_logo"] = nullable(*req.OrganizerLogo)
	}
	if req.Teams != nil {
		updates["teams"] = marshalJSON(*req.Teams)
	}
	if req.Tags != nil {
		updates["tags"] = marshalJSON(*req.Tags)
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}

	return updates, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullable maps an explicitly-sent empty string to SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func marshalJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case []Team:
		if t == nil {
			return nil
		}
	case []string:
		if t == nil {
			return nil
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// ===========================
// 🗄 Read Cache (optional)

func (s *Service) cacheGet(ctx context.Context, id uint) *Event {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		return nil // miss or redis unavailable, fall through to the store
	}
	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil
	}
	return &e
}

func (s *Service) cacheSet(ctx context.Context, e *Event) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(e.ID), raw, cacheTTL).Err(); err != nil {
		log.Printf("⚠️ Cache set failed for event %d: %v", e.ID, err)
	}
}

func (s *Service) cacheInvalidate(ctx context.Context, id uint) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Printf("⚠️ Cache invalidation failed for event %d: %v", id, err)
	}
}
