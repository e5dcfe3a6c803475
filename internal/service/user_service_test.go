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

func newUserService(t *testing.T, name string) (UserService, *gorm.DB, *recorderStub) {
	t.Helper()
	db := openTestDB(t, name)
	recorder := &recorderStub{}
	svc := NewUserService(repository.NewUserRepository(db), repository.NewStaffRepository(db), repository.NewPunishmentRepository(db), validator.New(), recorder, testLogger())
	return svc, db, recorder
}

func TestUserServiceProfileWithStaffAndPunishments(t *testing.T) {
	svc, db, _ := newUserService(t, "user_profile")
	admin := seedUser(t, db, "Admin", models.RoleAdmin)
	member := seedUser(t, db, "Alice", models.RoleUser)

	staff := models.Staff{UserID: member.ID, RealName: "Alice Real"}
	require.NoError(t, db.Create(&staff).Error)
	require.NoError(t, db.Create(&models.Punishment{StaffID: staff.ID, Type: models.PunishmentTypeWarning, IssuedByID: admin.ID}).Error)

	profile, err := svc.Profile(context.Background(), member.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", profile.Nickname)
	require.NotNil(t, profile.Staff)
	require.Equal(t, "Alice Real", profile.Staff.RealName)
	require.Len(t, profile.Punishments, 1)
	require.EqualValues(t, 1, profile.WarningsCount)
	require.Zero(t, profile.ReprimandsCount)
}

func TestUserServiceProfilePlainMember(t *testing.T) {
	svc, db, _ := newUserService(t, "user_profile_plain")
	member := seedUser(t, db, "Bob", models.RoleUser)

	profile, err := svc.Profile(context.Background(), member.ID)
	require.NoError(t, err)
	require.Nil(t, profile.Staff)
	require.Empty(t, profile.Punishments)
}

func TestUserServiceProfileUnknown(t *testing.T) {
	svc, _, _ := newUserService(t, "user_profile_unknown")

	_, err := svc.Profile(context.Background(), 404)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceUpdateContacts(t *testing.T) {
	svc, db, recorder := newUserService(t, "user_contacts")
	member := seedUser(t, db, "Alice", models.RoleUser)

	vk := "https://vk.com/alice"
	require.NoError(t, svc.UpdateContacts(context.Background(), member.ID, dto.UpdateContactsRequest{VkURL: &vk}, Actor{ID: member.ID}))

	var stored models.User
	require.NoError(t, db.First(&stored, member.ID).Error)
	require.Equal(t, vk, stored.VkURL)
	require.Empty(t, stored.DiscordURL)
	require.Equal(t, "profile_update", recorder.lastAction())
}

func TestUserServiceChangeNicknameConflict(t *testing.T) {
	svc, db, _ := newUserService(t, "user_nickname_conflict")
	seedUser(t, db, "Alice", models.RoleUser)
	bob := seedUser(t, db, "Bob", models.RoleUser)

	err := svc.ChangeNickname(context.Background(), bob.ID, dto.NicknameUpdateRequest{Nickname: "Alice"}, Actor{ID: 1, Role: models.RoleAdmin})
	require.ErrorIs(t, err, ErrNicknameTaken)

	// renaming to the current value is not a conflict with yourself
	require.NoError(t, svc.ChangeNickname(context.Background(), bob.ID, dto.NicknameUpdateRequest{Nickname: "Bob"}, Actor{ID: 1, Role: models.RoleAdmin}))
}

func TestUserServiceAdminProfileUpdateRoleGate(t *testing.T) {
	svc, db, _ := newUserService(t, "user_role_gate")
	member := seedUser(t, db, "Alice", models.RoleUser)

	role := models.RoleCurator
	err := svc.AdminProfileUpdate(context.Background(), member.ID, dto.AdminProfileUpdateRequest{Role: &role}, Actor{ID: 2, Role: models.RoleCurator})
	require.ErrorIs(t, err, ErrRoleChangeRequires)

	require.NoError(t, svc.AdminProfileUpdate(context.Background(), member.ID, dto.AdminProfileUpdateRequest{Role: &role}, Actor{ID: 3, Role: models.RoleAdmin}))

	var stored models.User
	require.NoError(t, db.First(&stored, member.ID).Error)
	require.Equal(t, models.RoleCurator, stored.Role)
}

func TestUserServiceAdminProfileUpdateUpsertsStaff(t *testing.T) {
	svc, db, _ := newUserService(t, "user_staff_upsert")
	member := seedUser(t, db, "Alice", models.RoleUser)

	name := "Alice Real"
	require.NoError(t, svc.AdminProfileUpdate(context.Background(), member.ID, dto.AdminProfileUpdateRequest{RealName: &name}, Actor{ID: 1, Role: models.RoleAdmin}))

	var staff models.Staff
	require.NoError(t, db.Where("user_id = ?", member.ID).First(&staff).Error)
	require.Equal(t, "Alice Real", staff.RealName)

	position := "Deputy"
	require.NoError(t, svc.AdminProfileUpdate(context.Background(), member.ID, dto.AdminProfileUpdateRequest{Position: &position}, Actor{ID: 1, Role: models.RoleAdmin}))

	require.NoError(t, db.Where("user_id = ?", member.ID).First(&staff).Error)
	require.Equal(t, "Alice Real", staff.RealName)
	require.Equal(t, "Deputy", staff.Position)
}

func TestUserServiceListAll(t *testing.T) {
	svc, db, _ := newUserService(t, "user_list_all")
	seedUser(t, db, "Charlie", models.RoleUser)
	seedUser(t, db, "Alice", models.RoleUser)

	users, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Alice", users[0].Nickname)
}
