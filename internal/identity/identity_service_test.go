package identity_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Yadlapure/health-care/internal/identity"
	identityerrors "github.com/Yadlapure/health-care/internal/identity/errors"
	identityMock "github.com/Yadlapure/health-care/internal/identity/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestIdentityService_Resolve(t *testing.T) {
	ctx := context.Background()
	client := identity.Profile{UserID: "C1", Name: "Asha", Role: identity.RoleClient}

	t.Run("cache miss loads from repository and fills cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := identityMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := identity.NewService(repo, rdb)

		payload, _ := json.Marshal(client)
		redisMock.ExpectGet(identity.GetProfileKey("C1")).RedisNil()
		repo.EXPECT().FindByUserID(ctx, "C1").Return(&client, nil)
		redisMock.ExpectSet(identity.GetProfileKey("C1"), payload, time.Hour).SetVal("OK")

		got, err := svc.Resolve(ctx, "C1", identity.RoleClient)
		assert.NoError(t, err)
		assert.Equal(t, "Asha", got.Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := identityMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := identity.NewService(repo, rdb)

		payload, _ := json.Marshal(client)
		redisMock.ExpectGet(identity.GetProfileKey("C1")).SetVal(string(payload))

		got, err := svc.Resolve(ctx, "C1", identity.RoleClient)
		assert.NoError(t, err)
		assert.Equal(t, "C1", got.UserID)
	})

	t.Run("role mismatch is not found for the requested role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := identityMock.NewMockRepository(ctrl)
		svc := identity.NewService(repo, nil)

		repo.EXPECT().FindByUserID(ctx, "C1").Return(&client, nil)

		_, err := svc.Resolve(ctx, "C1", identity.RoleEmployee)
		assert.ErrorIs(t, err, identityerrors.ErrEmployeeNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := identityMock.NewMockRepository(ctrl)
		svc := identity.NewService(repo, nil)

		repo.EXPECT().FindByUserID(ctx, "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Resolve(ctx, "nope", identity.RoleClient)
		assert.ErrorIs(t, err, identityerrors.ErrClientNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := identity.NewService(identityMock.NewMockRepository(gomock.NewController(t)), nil)

		_, err := svc.Resolve(ctx, "", identity.RoleClient)
		assert.ErrorIs(t, err, identityerrors.ErrMissingUserID)

		_, err = svc.Resolve(ctx, "C1", identity.Role("doctor"))
		assert.ErrorIs(t, err, identityerrors.ErrInvalidRole)
	})

	t.Run("infrastructure failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := identityMock.NewMockRepository(ctrl)
		svc := identity.NewService(repo, nil)

		boom := errors.New("connection reset")
		repo.EXPECT().FindByUserID(ctx, "C1").Return(nil, boom)

		_, err := svc.Resolve(ctx, "C1", identity.RoleClient)
		assert.ErrorIs(t, err, boom)
	})
}

func TestIdentityService_ResolveMany(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := identityMock.NewMockRepository(ctrl)
	svc := identity.NewService(repo, nil)

	repo.EXPECT().
		FindByUserIDs(ctx, []string{"E1", "C1"}).
		Return([]identity.Profile{
			{UserID: "E1", Name: "Ravi", Role: identity.RoleEmployee},
			{UserID: "C1", Name: "Asha", Role: identity.RoleClient},
		}, nil)

	got, err := svc.ResolveMany(ctx, []string{"E1", "C1", "E1", ""})
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Ravi", identity.DisplayName(got, "E1"))
	assert.Equal(t, "unknown (X9)", identity.DisplayName(got, "X9"))
}

func TestIdentityService_List(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := identityMock.NewMockRepository(ctrl)
	svc := identity.NewService(repo, nil)

	repo.EXPECT().
		FindByRole(ctx, identity.RoleEmployee).
		Return([]identity.Profile{{UserID: "E1", Name: "Ravi", Role: identity.RoleEmployee}}, nil)

	resp, err := svc.List(ctx, identity.RoleEmployee)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "E1", resp[0].UserID)

	_, err = svc.List(ctx, identity.Role("root"))
	assert.ErrorIs(t, err, identityerrors.ErrInvalidRole)
}
