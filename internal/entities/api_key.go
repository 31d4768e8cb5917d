package entities

import "time"

// APIKey is a stored credential. Only a bcrypt hash of the key is kept;
// Prefix holds the first characters of the plaintext key for lookup.
type APIKey struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Name       string     `gorm:"size:100" json:"name"`
	Prefix     string     `gorm:"index;size:16" json:"prefix"`
	KeyHash    string     `gorm:"size:100" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	RevokedAt  *time.Time `gorm:"index" json:"revoked_at,omitempty"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

// IsRevoked reports whether the key can no longer be used.
func (k *APIKey) IsRevoked() bool {
	return k.RevokedAt != nil
}
