package rbac

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

type Service interface {
	Allow(role, resource, action string) (bool, error)
	Enforce(req EnforceRequest) (bool, error)
	Policies() []Policy
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService builds an in-memory enforcer loaded with policies.
func NewService(policies []Policy, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	rules := make([][]string, 0, len(policies))
	for _, p := range policies {
		rules = append(rules, []string{p.Role, p.Resource, p.Action})
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddGroupingPolicies(defaultGroups); err != nil {
		return nil, err
	}

	l.Info("rbac policies loaded", zap.Int("policies", len(rules)))
	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Allow(role, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	if !allowed {
		s.logger.Debug("rbac denied",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
		)
	}
	return allowed, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	return s.Allow(req.Role, req.Resource, req.Action)
}

func (s *service) Policies() []Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetPolicy()
	if err != nil {
		return nil
	}
	out := make([]Policy, 0, len(rules))
	for _, r := range rules {
		if len(r) < 3 {
			continue
		}
		out = append(out, Policy{Role: r[0], Resource: r[1], Action: r[2]})
	}
	return out
}
