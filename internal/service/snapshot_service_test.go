package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/watch"
)

type mockSnapshotUsers struct {
	mock.Mock
}

func (m *mockSnapshotUsers) ListPublic(ctx context.Context, viewerID uuid.UUID, search, location string) ([]models.User, error) {
	args := m.Called(ctx, viewerID, search, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type mockSnapshotSkills struct {
	mock.Mock
}

func (m *mockSnapshotSkills) ListActive(ctx context.Context) ([]models.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

type mockSnapshotSwaps struct {
	mock.Mock
}

func (m *mockSnapshotSwaps) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SwapRequest), args.Error(1)
}

func waitSnapshot(t *testing.T, ch <-chan watch.Snapshot) watch.Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(time.Second):
		t.Fatal("снимок не доставлен за отведённое время")
		return watch.Snapshot{}
	}
}

func TestSnapshotService_RefreshPublishesSkills(t *testing.T) {
	users := new(mockSnapshotUsers)
	skills := new(mockSnapshotSkills)
	swaps := new(mockSnapshotSwaps)
	broker := watch.NewBroker()
	svc := NewSnapshotService(users, skills, swaps, broker)

	sub := broker.Subscribe(watch.CollectionSkills)
	defer sub.Cancel()

	all := []models.Skill{{ID: uuid.New(), Title: "Guitar Playing", IsActive: true}}
	skills.On("ListActive", mock.Anything).Return(all, nil)

	assert.NoError(t, svc.Refresh(context.Background(), watch.CollectionSkills))

	snap := waitSnapshot(t, sub.C())
	assert.Equal(t, watch.CollectionSkills, snap.Collection)
	assert.Equal(t, all, snap.Items)
}

func TestSnapshotService_RefreshUsersStripsPrivateFields(t *testing.T) {
	users := new(mockSnapshotUsers)
	skills := new(mockSnapshotSkills)
	swaps := new(mockSnapshotSwaps)
	broker := watch.NewBroker()
	svc := NewSnapshotService(users, skills, swaps, broker)

	sub := broker.Subscribe(watch.CollectionUsers)
	defer sub.Cancel()

	userID := uuid.New()
	users.On("ListPublic", mock.Anything, uuid.Nil, "", "").Return([]models.User{
		{ID: userID, Email: "sarah.chen@example.com", DisplayName: "Sarah Chen", Rating: 4.5},
	}, nil)

	assert.NoError(t, svc.Refresh(context.Background(), watch.CollectionUsers))

	snap := waitSnapshot(t, sub.C())
	profiles, ok := snap.Items.([]*dto.PublicProfileResponse)
	assert.True(t, ok)
	assert.Len(t, profiles, 1)
	assert.Equal(t, userID, profiles[0].ID)
	assert.Equal(t, "Sarah Chen", profiles[0].DisplayName)
}

func TestSnapshotService_StoreFailureKeepsLastSnapshot(t *testing.T) {
	users := new(mockSnapshotUsers)
	skills := new(mockSnapshotSkills)
	swaps := new(mockSnapshotSwaps)
	broker := watch.NewBroker()
	svc := NewSnapshotService(users, skills, swaps, broker)

	sub := broker.Subscribe(watch.CollectionSwaps)
	defer sub.Cancel()

	first := []models.SwapRequest{{ID: uuid.New(), Status: "pending"}}
	swaps.On("ListAll", mock.Anything).Return(first, nil).Once()
	assert.NoError(t, svc.Refresh(context.Background(), watch.CollectionSwaps))
	snap := waitSnapshot(t, sub.C())
	assert.Equal(t, first, snap.Items)

	// Сбой хранилища: ошибки наружу, публикации нет.
	swaps.On("ListAll", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	assert.Error(t, svc.Refresh(context.Background(), watch.CollectionSwaps))

	select {
	case snap := <-sub.C():
		t.Fatalf("неожиданный снимок после сбоя: %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSnapshotService_UnknownCollection(t *testing.T) {
	svc := NewSnapshotService(new(mockSnapshotUsers), new(mockSnapshotSkills), new(mockSnapshotSwaps), watch.NewBroker())
	assert.Error(t, svc.Refresh(context.Background(), "orders"))
}
