package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

// Errors surfaced by the staff service.
var (
	ErrAlreadyStaff  = errors.New("already a staff member")
	ErrStaffNotFound = errors.New("staff member not found")
)

// StaffService manages the staff roster.
type StaffService interface {
	Roster(ctx context.Context) ([]repository.StaffRosterRow, error)
	Add(ctx context.Context, payload dto.StaffAddRequest, actor Actor) (models.Staff, error)
	Update(ctx context.Context, id uint, payload dto.StaffUpdateRequest, actor Actor) error
	Remove(ctx context.Context, id uint, actor Actor) error
}

const rosterCacheKey = "staff:roster"

type staffService struct {
	staff     repository.StaffRepository
	users     repository.UserRepository
	validator *validator.Validate
	activity  ActivityRecorder
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
}

// NewStaffService constructs the staff service. The cache client may be nil,
// in which case every roster read hits the database.
func NewStaffService(staff repository.StaffRepository, users repository.UserRepository, validate *validator.Validate, activity ActivityRecorder, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) StaffService {
	return &staffService{
		staff:     staff,
		users:     users,
		validator: validate,
		activity:  activity,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger.With().Str("component", "staff_service").Logger(),
	}
}

// Roster returns the full staff listing with active punishment counts.
// Roster mutations drop the cached copy; punishment changes leave it to age
// out, so the counts may trail by up to the cache TTL.
func (s *staffService) Roster(ctx context.Context) ([]repository.StaffRosterRow, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, rosterCacheKey).Result(); err == nil {
			var rows []repository.StaffRosterRow
			if unmarshalErr := json.Unmarshal([]byte(cached), &rows); unmarshalErr == nil {
				return rows, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read roster cache")
		}
	}

	rows, err := s.staff.ListRoster(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, rosterCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store roster cache")
			}
		}
	}
	return rows, nil
}

func (s *staffService) invalidateRoster(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, rosterCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate roster cache")
	}
}

func (s *staffService) Add(ctx context.Context, payload dto.StaffAddRequest, actor Actor) (models.Staff, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Staff{}, err
	}

	if _, err := s.users.GetByID(ctx, payload.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Staff{}, ErrUserNotFound
		}
		return models.Staff{}, err
	}

	if _, err := s.staff.GetByUserID(ctx, payload.UserID); err == nil {
		return models.Staff{}, ErrAlreadyStaff
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Staff{}, err
	}

	record := models.Staff{UserID: payload.UserID}
	if payload.RealName != nil {
		record.RealName = strings.TrimSpace(*payload.RealName)
	}
	if payload.AppointmentDate != nil {
		date, err := parseDate(*payload.AppointmentDate)
		if err != nil {
			return models.Staff{}, err
		}
		record.AppointmentDate = date
	}
	if payload.Points != nil {
		record.Points = *payload.Points
	}

	if err := s.staff.Create(ctx, &record); err != nil {
		// unique user_id: a concurrent add for the same user lost the race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Staff{}, ErrAlreadyStaff
		}
		return models.Staff{}, err
	}

	s.invalidateRoster(ctx)
	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "staff_add",
		Details: map[string]interface{}{"user_id": payload.UserID, "staff_id": record.ID},
		IP:      actor.IP,
	})
	return record, nil
}

// Update mutates only the supplied subset of staff fields. An absent field
// is a no-op for that field, not a clear.
func (s *staffService) Update(ctx context.Context, id uint, payload dto.StaffUpdateRequest, actor Actor) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if payload.RealName != nil {
		updates["real_name"] = strings.TrimSpace(*payload.RealName)
	}
	if payload.Position != nil {
		updates["position"] = strings.TrimSpace(*payload.Position)
	}
	if payload.AppointmentDate != nil {
		date, err := parseDate(*payload.AppointmentDate)
		if err != nil {
			return err
		}
		updates["appointment_date"] = date
	}
	if payload.LastPromotionDate != nil {
		date, err := parseDate(*payload.LastPromotionDate)
		if err != nil {
			return err
		}
		updates["last_promotion_date"] = date
	}
	if payload.Points != nil {
		updates["points"] = *payload.Points
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.staff.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	s.invalidateRoster(ctx)
	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "staff_update",
		Details: map[string]interface{}{"staff_id": id, "fields": fieldNames(updates)},
		IP:      actor.IP,
	})
	return nil
}

// Remove deletes the staff record; its punishments go with it.
func (s *staffService) Remove(ctx context.Context, id uint, actor Actor) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	s.invalidateRoster(ctx)
	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "staff_remove",
		Details: map[string]interface{}{"staff_id": id},
		IP:      actor.IP,
	})
	return nil
}

func parseDate(value string) (*time.Time, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
