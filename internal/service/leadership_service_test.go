package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/repository"
)

func newLeadershipService(t *testing.T, name string) LeadershipService {
	t.Helper()
	db := openTestDB(t, name)
	return NewLeadershipService(repository.NewLeadershipRepository(db), validator.New(), testLogger())
}

func TestLeadershipServiceCreateSanitizesBio(t *testing.T) {
	svc := newLeadershipService(t, "leadership_sanitize")

	entry, err := svc.Create(context.Background(), dto.LeadershipCreateRequest{
		Name: "Victor",
		Bio:  `<p>Founder</p><script>alert("xss")</script>`,
	})
	require.NoError(t, err)
	require.Contains(t, entry.Bio, "<p>Founder</p>")
	require.NotContains(t, entry.Bio, "<script>")
}

func TestLeadershipServiceUpdate(t *testing.T) {
	svc := newLeadershipService(t, "leadership_update")

	entry, err := svc.Create(context.Background(), dto.LeadershipCreateRequest{Name: "Victor", Position: "Founder"})
	require.NoError(t, err)

	bio := `Runs the server <img src=x onerror=alert(1)>`
	require.NoError(t, svc.Update(context.Background(), entry.ID, dto.LeadershipUpdateRequest{Bio: &bio}))

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotContains(t, entries[0].Bio, "onerror")
}

func TestLeadershipServiceUpdateMissing(t *testing.T) {
	svc := newLeadershipService(t, "leadership_update_missing")

	name := "Ghost"
	err := svc.Update(context.Background(), 42, dto.LeadershipUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrLeadershipNotFound)
}

func TestLeadershipServiceListOrder(t *testing.T) {
	svc := newLeadershipService(t, "leadership_order")

	second, first := 2, 1
	_, err := svc.Create(context.Background(), dto.LeadershipCreateRequest{Name: "Beta", SortOrder: &second})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.LeadershipCreateRequest{Name: "Alpha", SortOrder: &first})
	require.NoError(t, err)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Alpha", entries[0].Name)
	require.Equal(t, "Beta", entries[1].Name)
}

func TestLeadershipServiceDelete(t *testing.T) {
	svc := newLeadershipService(t, "leadership_delete")

	entry, err := svc.Create(context.Background(), dto.LeadershipCreateRequest{Name: "Victor"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), entry.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), entry.ID), ErrLeadershipNotFound)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}
