package domain

import "strings"

// MetaOwnerType names the entity family a meta entry belongs to.
type MetaOwnerType string

const (
	OwnerPost    MetaOwnerType = "post"
	OwnerUser    MetaOwnerType = "user"
	OwnerComment MetaOwnerType = "comment"
	OwnerMedia   MetaOwnerType = "media"
	OwnerTerm    MetaOwnerType = "term"
)

// PrivateKeyMarker prefixes system-internal meta keys. Entries carrying it
// share the table with user-visible custom fields but are excluded from every
// public read and write path.
const PrivateKeyMarker = "_"

// MetaEntry is a generic key/value extension record owned by exactly one
// entity (post, user, comment, media, term).
type MetaEntry struct {
	ID        uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OwnerType MetaOwnerType `gorm:"column:owner_type;type:varchar(20);index:idx_meta_owner" json:"owner_type"`
	OwnerID   uint64        `gorm:"column:owner_id;index:idx_meta_owner" json:"owner_id"`
	Key       string        `gorm:"column:meta_key;type:varchar(255);index" json:"key"`
	Value     string        `gorm:"column:meta_value;type:longtext" json:"value"`
}

func (MetaEntry) TableName() string { return "meta_entries" }

// IsPrivate reports whether the stored key is system-internal.
func (m *MetaEntry) IsPrivate() bool {
	return strings.HasPrefix(m.Key, PrivateKeyMarker)
}

// MetaKey formalizes the private-marker and namespace-prefix conventions so
// string-prefix checks don't spread through call sites.
type MetaKey struct {
	Bare    string
	Private bool
}

// ParseMetaKey splits the private marker off a raw key.
func ParseMetaKey(raw string) MetaKey {
	if strings.HasPrefix(raw, PrivateKeyMarker) {
		return MetaKey{Bare: strings.TrimPrefix(raw, PrivateKeyMarker), Private: true}
	}
	return MetaKey{Bare: raw}
}

// String returns the stored form of the key.
func (k MetaKey) String() string {
	if k.Private {
		return PrivateKeyMarker + k.Bare
	}
	return k.Bare
}

// Public returns the key with the private marker stripped. Used when a public
// caller submits a marked key: the marker is not theirs to set.
func (k MetaKey) Public() MetaKey {
	return MetaKey{Bare: k.Bare}
}

// Candidates returns every stored form a read must match: the bare form and,
// when a namespace prefix is configured, the prefixed form of well-known keys.
func (k MetaKey) Candidates(prefix string) []string {
	stored := k.String()
	if prefix == "" {
		return []string{stored}
	}
	if k.Private {
		// prefix goes between the marker and the bare key: _qc_lock
		return []string{stored, PrivateKeyMarker + prefix + k.Bare}
	}
	return []string{stored, prefix + stored}
}

// CreateMetaRequest is the payload for creating one meta entry.
type CreateMetaRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
