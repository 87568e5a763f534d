package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
)

type fakeAdminAPI struct {
	users   []entities.User
	events  []entities.Event
	created []entities.EventDraft
	deleted []int64
}

func (f *fakeAdminAPI) ListUsers(context.Context) ([]entities.User, error) { return f.users, nil }

func (f *fakeAdminAPI) GetUser(_ context.Context, id int64) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrRequestFailed
}

func (f *fakeAdminAPI) UpdateUser(ctx context.Context, id int64, patch entities.UserPatch) (*entities.User, error) {
	u, err := f.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return u, nil
}

func (f *fakeAdminAPI) DeleteUser(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAdminAPI) ListAllEvents(context.Context) ([]entities.Event, error) { return f.events, nil }

func (f *fakeAdminAPI) CreateEvent(_ context.Context, draft entities.EventDraft) (string, error) {
	f.created = append(f.created, draft)
	return "new-event", nil
}

func (f *fakeAdminAPI) UpdateEvent(_ context.Context, id int64, patch entities.EventPatch) (*entities.Event, error) {
	return &entities.Event{ID: id}, nil
}

func newAdminFixture(t *testing.T, role string) (*AdminService, *fakeAdminAPI) {
	t.Helper()
	f := newSessionFixture(t)
	f.users.profile.Role = role
	_, err := f.session.Login(context.Background(), "admin@x.ru", "secret1")
	require.NoError(t, err)

	api := &fakeAdminAPI{}
	svc := NewAdminService(api, f.session)
	svc.now = func() time.Time { return f.now }
	return svc, api
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	ctx := context.Background()

	anonymous := NewAdminService(&fakeAdminAPI{}, newSessionFixture(t).session)
	_, err := anonymous.ListUsers(ctx, entities.UserFilter{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	svc, api := newAdminFixture(t, domain.RoleUser)
	_, err = svc.ListUsers(ctx, entities.UserFilter{})
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
	assert.ErrorIs(t, svc.DeleteUser(ctx, 3), domain.ErrNotAdmin)
	assert.Empty(t, api.deleted)
}

func TestAdminService_ListUsersFilters(t *testing.T) {
	ctx := context.Background()
	svc, api := newAdminFixture(t, domain.RoleAdmin)
	api.users = []entities.User{
		{ID: 1, DisplayName: "Anna", Role: domain.RoleAdmin, CreatedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, DisplayName: "Boris", Role: domain.RoleUser, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, DisplayName: "anastasia", Role: domain.RoleUser, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	users, err := svc.ListUsers(ctx, entities.UserFilter{Name: "AN"})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = svc.ListUsers(ctx, entities.UserFilter{
		Role: domain.RoleUser,
		To:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(2), users[0].ID)
}

func TestAdminService_UpdateUserRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	svc, api := newAdminFixture(t, domain.RoleAdmin)
	api.users = []entities.User{{ID: 2, Role: domain.RoleUser}}

	role := "owner"
	_, err := svc.UpdateUser(ctx, 2, entities.UserPatch{Role: &role})
	assert.ErrorIs(t, err, domain.ErrRequestFailed)

	role = domain.RoleAdmin
	u, err := svc.UpdateUser(ctx, 2, entities.UserPatch{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestAdminService_ListEventsByStatus(t *testing.T) {
	ctx := context.Background()
	svc, api := newAdminFixture(t, domain.RoleAdmin)
	now := svc.now()
	api.events = []entities.Event{
		{ID: 1, StartsAt: now.Add(time.Hour)},
		{ID: 2, StartsAt: now.Add(-time.Hour)},
	}

	active, err := svc.ListEvents(ctx, entities.EventsActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)

	all, err := svc.ListEvents(ctx, entities.EventsAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdminService_CreateEventValidatesDraft(t *testing.T) {
	ctx := context.Background()
	svc, api := newAdminFixture(t, domain.RoleAdmin)
	valid := entities.EventDraft{Name: "Jazz", StartsAt: svc.now().Add(24 * time.Hour), SeatsTotal: 50}

	for name, mutate := range map[string]func(*entities.EventDraft){
		"no name":        func(d *entities.EventDraft) { d.Name = " " },
		"no start":       func(d *entities.EventDraft) { d.StartsAt = time.Time{} },
		"no seats":       func(d *entities.EventDraft) { d.SeatsTotal = 0 },
		"negative sold":  func(d *entities.EventDraft) { d.PurchasedCount = -1 },
		"negative price": func(d *entities.EventDraft) { d.Price = -10 },
	} {
		t.Run(name, func(t *testing.T) {
			d := valid
			mutate(&d)
			_, err := svc.CreateEvent(ctx, d)
			assert.ErrorIs(t, err, domain.ErrInvalidEvent)
		})
	}
	assert.Empty(t, api.created)

	slug, err := svc.CreateEvent(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, "new-event", slug)
}

func TestAdminService_UpdateEventValidatesPatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAdminFixture(t, domain.RoleAdmin)

	zero := 0
	_, err := svc.UpdateEvent(ctx, 1, entities.EventPatch{SeatsTotal: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	seats := 10
	e, err := svc.UpdateEvent(ctx, 1, entities.EventPatch{SeatsTotal: &seats})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
}
