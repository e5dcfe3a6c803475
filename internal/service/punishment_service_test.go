package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

func newPunishmentFixture(t *testing.T, name string) (PunishmentService, *gorm.DB, models.Staff, models.User) {
	t.Helper()
	db := openTestDB(t, name)
	admin := seedUser(t, db, "Admin", models.RoleAdmin)
	member := seedUser(t, db, "Alice", models.RoleUser)

	staff := models.Staff{UserID: member.ID}
	require.NoError(t, db.Create(&staff).Error)

	svc := NewPunishmentService(repository.NewPunishmentRepository(db), repository.NewStaffRepository(db), validator.New(), &recorderStub{}, testLogger())
	return svc, db, staff, admin
}

func TestPunishmentServiceIssue(t *testing.T) {
	svc, db, staff, admin := newPunishmentFixture(t, "punishment_issue")

	punishment, err := svc.Issue(context.Background(), dto.PunishmentIssueRequest{
		StaffID: staff.ID,
		Type:    models.PunishmentTypeWarning,
		Reason:  "late to shift",
	}, Actor{ID: admin.ID, Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, admin.ID, punishment.IssuedByID)
	require.True(t, punishment.Active())

	count, err := repository.NewPunishmentRepository(db).CountActiveByUser(context.Background(), staff.UserID, models.PunishmentTypeWarning)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestPunishmentServiceIssueUnknownStaff(t *testing.T) {
	svc, _, _, admin := newPunishmentFixture(t, "punishment_unknown_staff")

	_, err := svc.Issue(context.Background(), dto.PunishmentIssueRequest{StaffID: 99, Type: models.PunishmentTypeReprimand}, Actor{ID: admin.ID})
	require.ErrorIs(t, err, ErrStaffNotFound)
}

func TestPunishmentServiceIssueInvalidType(t *testing.T) {
	svc, _, staff, admin := newPunishmentFixture(t, "punishment_bad_type")

	_, err := svc.Issue(context.Background(), dto.PunishmentIssueRequest{StaffID: staff.ID, Type: "ban"}, Actor{ID: admin.ID})
	require.Error(t, err)
}

func TestPunishmentServiceRemoveOnce(t *testing.T) {
	svc, db, staff, admin := newPunishmentFixture(t, "punishment_remove")

	punishment, err := svc.Issue(context.Background(), dto.PunishmentIssueRequest{
		StaffID: staff.ID,
		Type:    models.PunishmentTypeWarning,
		Reason:  "late",
	}, Actor{ID: admin.ID})
	require.NoError(t, err)

	reason := "resolved"
	require.NoError(t, svc.Remove(context.Background(), punishment.ID, dto.PunishmentRemoveRequest{Reason: &reason}, Actor{ID: admin.ID}))

	var stored models.Punishment
	require.NoError(t, db.First(&stored, punishment.ID).Error)
	require.False(t, stored.Active())
	require.NotNil(t, stored.RemovedByID)
	require.Equal(t, admin.ID, *stored.RemovedByID)
	require.NotNil(t, stored.RemoveReason)
	require.Equal(t, "resolved", *stored.RemoveReason)

	count, err := repository.NewPunishmentRepository(db).CountActiveByUser(context.Background(), staff.UserID, models.PunishmentTypeWarning)
	require.NoError(t, err)
	require.Zero(t, count)

	// the removal fields are written exactly once
	err = svc.Remove(context.Background(), punishment.ID, dto.PunishmentRemoveRequest{}, Actor{ID: admin.ID})
	require.ErrorIs(t, err, ErrPunishmentNotFound)
}

func TestPunishmentServiceListByStaff(t *testing.T) {
	svc, _, staff, admin := newPunishmentFixture(t, "punishment_list")

	for _, kind := range []string{models.PunishmentTypeWarning, models.PunishmentTypeReprimand} {
		_, err := svc.Issue(context.Background(), dto.PunishmentIssueRequest{StaffID: staff.ID, Type: kind}, Actor{ID: admin.ID})
		require.NoError(t, err)
	}

	rows, err := svc.ListByStaff(context.Background(), staff.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Admin", rows[0].IssuedByNickname)
}
