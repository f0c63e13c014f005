package service

import (
	"context"
	"fmt"

	"github.com/quillcms/quill-backend/internal/repository"
	"github.com/quillcms/quill-backend/pkg/cache"
	"github.com/quillcms/quill-backend/pkg/logger"
)

// OptionService reads and writes named configuration values. Reads go through
// the redis option cache when available; every write invalidates the cached
// value and notifies registered invalidators (the capability cache among
// them) because stale configuration is a correctness risk.
type OptionService struct {
	store        repository.Store
	cache        cache.Service
	invalidators []func()
}

// NewOptionService creates a new OptionService
func NewOptionService(store repository.Store, c cache.Service) *OptionService {
	return &OptionService{store: store, cache: c}
}

// RegisterInvalidator adds a hook run after every option write.
func (s *OptionService) RegisterInvalidator(fn func()) {
	s.invalidators = append(s.invalidators, fn)
}

// Get returns the option value and whether it exists.
func (s *OptionService) Get(ctx context.Context, name string) (string, bool, error) {
	if s.cache != nil {
		if value, ok, err := s.cache.GetOption(ctx, name); err == nil && ok {
			return value, true, nil
		}
	}

	opt, err := s.store.Options().FindByName(name)
	if err != nil {
		return "", false, err
	}
	if opt == nil {
		return "", false, nil
	}

	if s.cache != nil {
		if err := s.cache.SetOption(ctx, name, opt.Value); err != nil {
			logger.Warn("option cache set failed for %q: %v", name, err)
		}
	}
	return opt.Value, true, nil
}

// GetBool returns the option parsed as a boolean, or def when absent.
func (s *OptionService) GetBool(ctx context.Context, name string, def bool) bool {
	value, ok, err := s.Get(ctx, name)
	if err != nil || !ok {
		return def
	}
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

// GetString returns the option value, or def when absent.
func (s *OptionService) GetString(ctx context.Context, name, def string) string {
	value, ok, err := s.Get(ctx, name)
	if err != nil || !ok {
		return def
	}
	return value
}

// Set upserts the option and invalidates every dependent cache.
func (s *OptionService) Set(ctx context.Context, name, value string, autoload bool) error {
	if err := s.store.Options().Upsert(name, value, autoload); err != nil {
		return fmt.Errorf("upsert option %q: %w", name, err)
	}
	s.invalidate(ctx, name)
	return nil
}

// Delete removes the option and invalidates every dependent cache.
func (s *OptionService) Delete(ctx context.Context, name string) error {
	if err := s.store.Options().Delete(name); err != nil {
		return err
	}
	s.invalidate(ctx, name)
	return nil
}

func (s *OptionService) invalidate(ctx context.Context, name string) {
	if s.cache != nil {
		if err := s.cache.InvalidateOption(ctx, name); err != nil {
			logger.Warn("option cache invalidation failed for %q: %v", name, err)
		}
	}
	for _, fn := range s.invalidators {
		fn()
	}
}
