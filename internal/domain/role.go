package domain

// Actor is the request-scoped identity every privileged operation receives.
// The engine never authenticates; the caller resolves the role beforehand.
type Actor struct {
	ID       uint64 `json:"id"`
	Role     string `json:"role"`
	Language string `json:"language,omitempty"`
}

// Capability tokens, WordPress-flavored: a base token per kind plus elevated
// tokens for published, others' and private content.
const (
	CapEditPosts          = "edit_posts"
	CapEditPages          = "edit_pages"
	CapEditPublishedPosts = "edit_published_posts"
	CapEditPublishedPages = "edit_published_pages"
	CapEditOthersPosts    = "edit_others_posts"
	CapEditOthersPages    = "edit_others_pages"
	CapEditPrivatePosts   = "edit_private_posts"
	CapEditPrivatePages   = "edit_private_pages"

	CapDeletePosts          = "delete_posts"
	CapDeletePages          = "delete_pages"
	CapDeletePublishedPosts = "delete_published_posts"
	CapDeletePublishedPages = "delete_published_pages"
	CapDeleteOthersPosts    = "delete_others_posts"
	CapDeleteOthersPages    = "delete_others_pages"
	CapDeletePrivatePosts   = "delete_private_posts"
	CapDeletePrivatePages   = "delete_private_pages"
)

// CapFamily selects the edit or delete capability family.
type CapFamily int

const (
	FamilyEdit CapFamily = iota
	FamilyDelete
)

func forKind(kind ContentKind, post, page string) string {
	if kind == KindPage {
		return page
	}
	return post
}

// BaseCap returns the base capability of the family for the kind. The base
// edit capability doubles as the create capability.
func BaseCap(f CapFamily, kind ContentKind) string {
	if f == FamilyDelete {
		return forKind(kind, CapDeletePosts, CapDeletePages)
	}
	return forKind(kind, CapEditPosts, CapEditPages)
}

// PublishedCap returns the elevated capability required on published items.
func PublishedCap(f CapFamily, kind ContentKind) string {
	if f == FamilyDelete {
		return forKind(kind, CapDeletePublishedPosts, CapDeletePublishedPages)
	}
	return forKind(kind, CapEditPublishedPosts, CapEditPublishedPages)
}

// OthersCap returns the elevated capability required on other users' items.
func OthersCap(f CapFamily, kind ContentKind) string {
	if f == FamilyDelete {
		return forKind(kind, CapDeleteOthersPosts, CapDeleteOthersPages)
	}
	return forKind(kind, CapEditOthersPosts, CapEditOthersPages)
}

// PrivateCap returns the elevated capability required on other users'
// private items.
func PrivateCap(f CapFamily, kind ContentKind) string {
	if f == FamilyDelete {
		return forKind(kind, CapDeletePrivatePosts, CapDeletePrivatePages)
	}
	return forKind(kind, CapEditPrivatePosts, CapEditPrivatePages)
}

// DefaultRoles is the role → capability mapping seeded when the user_roles
// option is absent.
func DefaultRoles() map[string][]string {
	return map[string][]string{
		"administrator": {
			CapEditPosts, CapEditPages,
			CapEditPublishedPosts, CapEditPublishedPages,
			CapEditOthersPosts, CapEditOthersPages,
			CapEditPrivatePosts, CapEditPrivatePages,
			CapDeletePosts, CapDeletePages,
			CapDeletePublishedPosts, CapDeletePublishedPages,
			CapDeleteOthersPosts, CapDeleteOthersPages,
			CapDeletePrivatePosts, CapDeletePrivatePages,
		},
		"editor": {
			CapEditPosts, CapEditPages,
			CapEditPublishedPosts, CapEditPublishedPages,
			CapEditOthersPosts, CapEditOthersPages,
			CapEditPrivatePosts, CapEditPrivatePages,
			CapDeletePosts, CapDeletePages,
			CapDeletePublishedPosts, CapDeletePublishedPages,
			CapDeleteOthersPosts, CapDeleteOthersPages,
			CapDeletePrivatePosts, CapDeletePrivatePages,
		},
		"author": {
			CapEditPosts, CapEditPublishedPosts,
			CapDeletePosts, CapDeletePublishedPosts,
		},
		"contributor": {
			CapEditPosts, CapDeletePosts,
		},
		"subscriber": {},
	}
}
