package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/internal/repository"
	"github.com/quillcms/quill-backend/pkg/logger"
)

// CapabilityGuard answers "may this actor perform this capability?".
type CapabilityGuard interface {
	RequireCapability(actor *domain.Actor, capability string) error
	HasCapability(actor *domain.Actor, capability string) bool
}

// CapabilityProvider exposes the role → capability mapping plus the explicit
// cache reset hook option writes must call. Stale capability data is a
// correctness risk, not a performance concern.
type CapabilityProvider interface {
	Capabilities(role string) ([]string, error)
	Invalidate()
}

// CapabilityService loads the role mapping from the user_roles option,
// caches it process-wide and guards capability checks against it.
type CapabilityService struct {
	store repository.Store

	mu    sync.RWMutex
	roles map[string][]string // nil until first load
}

// NewCapabilityService creates a new CapabilityService
func NewCapabilityService(store repository.Store) *CapabilityService {
	return &CapabilityService{store: store}
}

// Capabilities returns the capability set granted to the role. Unknown roles
// have an empty set.
func (s *CapabilityService) Capabilities(role string) ([]string, error) {
	s.mu.RLock()
	roles := s.roles
	s.mu.RUnlock()

	if roles == nil {
		var err error
		roles, err = s.load()
		if err != nil {
			return nil, err
		}
	}
	return roles[role], nil
}

// Invalidate drops the cached mapping; the next check reloads it.
func (s *CapabilityService) Invalidate() {
	s.mu.Lock()
	s.roles = nil
	s.mu.Unlock()
	logger.Warn("capability cache invalidated")
}

// RequireCapability fails with a forbidden error when the actor's role does
// not grant the capability. An actor without a role has no capabilities.
func (s *CapabilityService) RequireCapability(actor *domain.Actor, capability string) error {
	if actor == nil || actor.Role == "" {
		return fmt.Errorf("capability %q required: %w", capability, common.ErrForbidden)
	}

	caps, err := s.Capabilities(actor.Role)
	if err != nil {
		return err
	}
	for _, c := range caps {
		if c == capability {
			return nil
		}
	}
	return fmt.Errorf("capability %q required: %w", capability, common.ErrForbidden)
}

// HasCapability is the soft-check variant of RequireCapability.
func (s *CapabilityService) HasCapability(actor *domain.Actor, capability string) bool {
	return s.RequireCapability(actor, capability) == nil
}

func (s *CapabilityService) load() (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// another goroutine may have loaded while we waited for the lock
	if s.roles != nil {
		return s.roles, nil
	}

	opt, err := s.store.Options().FindByName(domain.OptionUserRoles)
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}

	roles := domain.DefaultRoles()
	if opt != nil {
		decoded := map[string][]string{}
		if err := json.Unmarshal([]byte(opt.Value), &decoded); err != nil {
			return nil, fmt.Errorf("decode user roles option: %w", err)
		}
		roles = decoded
	}

	s.roles = roles
	return roles, nil
}
