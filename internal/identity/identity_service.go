package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	identityerrors "github.com/Yadlapure/health-care/internal/identity/errors"
	"github.com/Yadlapure/health-care/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ProfileKeyPrefix = "identity:profile:"
	profileCacheTTL  = time.Hour
)

func GetProfileKey(userID string) string {
	return ProfileKeyPrefix + userID
}

//go:generate mockgen -source=identity_service.go -destination=mock/identity_service_mock.go -package=mock
type Service interface {
	Resolve(ctx context.Context, userID string, role Role) (Profile, error)
	ResolveMany(ctx context.Context, userIDs []string) (map[string]Profile, error)
	List(ctx context.Context, role Role) ([]ProfileResponse, error)
	GetByID(ctx context.Context, userID string) (ProfileResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("identity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Resolve returns the profile only when it carries the expected role.
// A profile with another role is reported as not found for that role.
func (s *service) Resolve(ctx context.Context, userID string, role Role) (Profile, error) {
	if userID == "" {
		return Profile{}, identityerrors.ErrMissingUserID
	}
	if !role.Valid() {
		return Profile{}, identityerrors.ErrInvalidRole
	}

	p, err := s.load(ctx, userID)
	if err != nil {
		return Profile{}, mapRepositoryError(err, role)
	}
	if p.Role != role {
		contextutil.Logger(ctx, s.logger).Warn("resolve identity role mismatch",
			zap.String("user_id", userID),
			zap.String("expected_role", string(role)),
			zap.String("actual_role", string(p.Role)),
		)
		return Profile{}, notFoundFor(role)
	}
	return p, nil
}

func (s *service) ResolveMany(ctx context.Context, userIDs []string) (map[string]Profile, error) {
	out := make(map[string]Profile, len(userIDs))
	missing := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))

	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := s.fromCache(ctx, id); ok {
			out[id] = p
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return out, nil
	}

	rows, err := s.repo.FindByUserIDs(ctx, missing)
	if err != nil {
		s.logger.Error("resolve many identities failed", zap.Int("count", len(missing)), zap.Error(err))
		return nil, err
	}
	for _, p := range rows {
		out[p.UserID] = p
		s.toCache(ctx, p)
	}
	return out, nil
}

func (s *service) List(ctx context.Context, role Role) ([]ProfileResponse, error) {
	s.logger.Debug("list identities requested", zap.String("role", string(role)))
	if !role.Valid() {
		return nil, identityerrors.ErrInvalidRole
	}

	rows, err := s.repo.FindByRole(ctx, role)
	if err != nil {
		s.logger.Error("list identities failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, userID string) (ProfileResponse, error) {
	if userID == "" {
		return ProfileResponse{}, identityerrors.ErrMissingUserID
	}
	p, err := s.load(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err, "")
	}
	return mapToResponse(p), nil
}

// load reads through redis and collapses concurrent misses for the same id.
func (s *service) load(ctx context.Context, userID string) (Profile, error) {
	if p, ok := s.fromCache(ctx, userID); ok {
		return p, nil
	}

	v, err, _ := s.sf.Do(GetProfileKey(userID), func() (interface{}, error) {
		p, err := s.repo.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, *p)
		return *p, nil
	})
	if err != nil {
		return Profile{}, err
	}
	return v.(Profile), nil
}

func (s *service) fromCache(ctx context.Context, userID string) (Profile, bool) {
	if s.rdb == nil {
		return Profile{}, false
	}
	cached, err := s.rdb.Get(ctx, GetProfileKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("identity cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		return Profile{}, false
	}
	var p Profile
	if err := json.Unmarshal([]byte(cached), &p); err != nil {
		return Profile{}, false
	}
	return p, true
}

func (s *service) toCache(ctx context.Context, p Profile) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, GetProfileKey(p.UserID), data, profileCacheTTL).Err(); err != nil {
		s.logger.Warn("identity cache write failed",
			zap.String("key", GetProfileKey(p.UserID)),
			zap.Error(err),
		)
	}
}

func mapToResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		UserID: p.UserID,
		Name:   p.Name,
		Role:   p.Role,
		Mobile: p.Mobile,
		Email:  p.Email,
		Lat:    p.Lat,
		Lng:    p.Lng,
	}
}

func mapToListResponse(rows []Profile) []ProfileResponse {
	res := make([]ProfileResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res
}

// DisplayName falls back to the id when the profile is unknown.
func DisplayName(profiles map[string]Profile, userID string) string {
	if p, ok := profiles[userID]; ok && p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("unknown (%s)", userID)
}
