package service

import (
	"fmt"

	"github.com/quillcms/quill-backend/internal/repository"
	"github.com/quillcms/quill-backend/pkg/slug"
)

// NameService derives URL-safe unique names for content items.
type NameService struct{}

// NewNameService creates a new NameService
func NewNameService() *NameService {
	return &NameService{}
}

// ResolveUniqueName sanitizes candidate and suffixes it with the count of
// existing names sharing the prefix when the sanitized form is taken:
// "hello-world", then "hello-world-1", "hello-world-2", ...
//
// Uniqueness here is advisory: the count and the later insert are not one
// atomic step, so two concurrent creators can still race to the same name.
// A unique constraint at the storage layer returning a retryable conflict
// would be the hardening if this ran under real concurrent load.
func (s *NameService) ResolveUniqueName(st repository.Store, candidate string) (string, error) {
	return s.suffixUnique(st, sanitize(candidate))
}

// ResolveNameChange resolves a rename. When the sanitized candidate equals
// the item's current name there is nothing to change and "" is returned, so
// the item never collides with itself.
func (s *NameService) ResolveNameChange(st repository.Store, current, candidate string) (string, error) {
	name := sanitize(candidate)
	if name == current {
		return "", nil
	}
	return s.suffixUnique(st, name)
}

func (s *NameService) suffixUnique(st repository.Store, name string) (string, error) {
	count, err := st.Content().CountByNamePrefix(name)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return name, nil
	}
	return fmt.Sprintf("%s-%d", name, count), nil
}

func sanitize(candidate string) string {
	name := slug.Make(candidate)
	if name == "" {
		name = "untitled"
	}
	return name
}
