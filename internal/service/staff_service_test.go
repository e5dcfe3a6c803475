package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

func seedUser(t *testing.T, db *gorm.DB, nickname, role string) models.User {
	t.Helper()
	user := models.User{Nickname: nickname, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newStaffService(t *testing.T, db *gorm.DB, cache *redis.Client, ttl time.Duration) (StaffService, *recorderStub) {
	t.Helper()
	recorder := &recorderStub{}
	svc := NewStaffService(repository.NewStaffRepository(db), repository.NewUserRepository(db), validator.New(), recorder, cache, ttl, testLogger())
	return svc, recorder
}

func TestStaffServiceAdd(t *testing.T) {
	db := openTestDB(t, "staff_add")
	user := seedUser(t, db, "Alice", models.RoleUser)
	svc, recorder := newStaffService(t, db, nil, 0)

	points := 5
	record, err := svc.Add(context.Background(), dto.StaffAddRequest{UserID: user.ID, Points: &points}, Actor{ID: 99, Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, user.ID, record.UserID)
	require.Equal(t, 5, record.Points)
	require.Equal(t, "staff_add", recorder.lastAction())
}

func TestStaffServiceAddUnknownUser(t *testing.T) {
	db := openTestDB(t, "staff_add_unknown")
	svc, _ := newStaffService(t, db, nil, 0)

	_, err := svc.Add(context.Background(), dto.StaffAddRequest{UserID: 42}, Actor{ID: 1})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestStaffServiceAddTwice(t *testing.T) {
	db := openTestDB(t, "staff_add_twice")
	user := seedUser(t, db, "Alice", models.RoleUser)
	svc, _ := newStaffService(t, db, nil, 0)

	_, err := svc.Add(context.Background(), dto.StaffAddRequest{UserID: user.ID}, Actor{ID: 1})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), dto.StaffAddRequest{UserID: user.ID}, Actor{ID: 1})
	require.ErrorIs(t, err, ErrAlreadyStaff)
}

func TestStaffServiceUpdatePartial(t *testing.T) {
	db := openTestDB(t, "staff_update")
	user := seedUser(t, db, "Alice", models.RoleUser)
	svc, _ := newStaffService(t, db, nil, 0)

	record, err := svc.Add(context.Background(), dto.StaffAddRequest{UserID: user.ID}, Actor{ID: 1})
	require.NoError(t, err)

	name := "Alice Real"
	date := "2025-02-01"
	require.NoError(t, svc.Update(context.Background(), record.ID, dto.StaffUpdateRequest{RealName: &name, AppointmentDate: &date}, Actor{ID: 1}))

	var stored models.Staff
	require.NoError(t, db.First(&stored, record.ID).Error)
	require.Equal(t, "Alice Real", stored.RealName)
	require.NotNil(t, stored.AppointmentDate)
	require.Equal(t, "2025-02-01", stored.AppointmentDate.Format("2006-01-02"))
	require.Equal(t, record.Points, stored.Points)
}

func TestStaffServiceUpdateMissing(t *testing.T) {
	db := openTestDB(t, "staff_update_missing")
	svc, _ := newStaffService(t, db, nil, 0)

	name := "Nobody"
	err := svc.Update(context.Background(), 77, dto.StaffUpdateRequest{RealName: &name}, Actor{ID: 1})
	require.ErrorIs(t, err, ErrStaffNotFound)
}

func TestStaffServiceRemoveCascadesPunishments(t *testing.T) {
	db := openTestDB(t, "staff_remove")
	admin := seedUser(t, db, "Admin", models.RoleAdmin)
	user := seedUser(t, db, "Alice", models.RoleUser)
	svc, recorder := newStaffService(t, db, nil, 0)

	record, err := svc.Add(context.Background(), dto.StaffAddRequest{UserID: user.ID}, Actor{ID: admin.ID})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Punishment{StaffID: record.ID, Type: models.PunishmentTypeWarning, IssuedByID: admin.ID}).Error)

	require.NoError(t, svc.Remove(context.Background(), record.ID, Actor{ID: admin.ID}))
	require.Equal(t, "staff_remove", recorder.lastAction())

	var orphans int64
	require.NoError(t, db.Model(&models.Punishment{}).Where("staff_id = ?", record.ID).Count(&orphans).Error)
	require.Zero(t, orphans)

	require.ErrorIs(t, svc.Remove(context.Background(), record.ID, Actor{ID: admin.ID}), ErrStaffNotFound)
}

func TestStaffServiceRosterCache(t *testing.T) {
	db := openTestDB(t, "staff_roster_cache")
	user := seedUser(t, db, "Alice", models.RoleUser)

	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer cache.Close()

	svc, _ := newStaffService(t, db, cache, time.Minute)

	_, err = svc.Add(context.Background(), dto.StaffAddRequest{UserID: user.ID}, Actor{ID: 1})
	require.NoError(t, err)

	roster, err := svc.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.Equal(t, "Alice", roster[0].Nickname)
	require.True(t, server.Exists(rosterCacheKey))

	// a stale cached copy proves subsequent reads hit redis, not the database
	require.NoError(t, server.Set(rosterCacheKey, `[]`))
	cached, err := svc.Roster(context.Background())
	require.NoError(t, err)
	require.Empty(t, cached)

	// roster mutations drop the cached copy
	bob := seedUser(t, db, "Bob", models.RoleUser)
	_, err = svc.Add(context.Background(), dto.StaffAddRequest{UserID: bob.ID}, Actor{ID: 1})
	require.NoError(t, err)
	require.False(t, server.Exists(rosterCacheKey))

	roster, err = svc.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 2)
}
