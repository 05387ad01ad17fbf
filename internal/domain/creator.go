package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Creator is the creator-mode profile attached to a user
type Creator struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	CoverImageURL *string       `json:"cover_image_url,omitempty"`
	Bio           string        `json:"bio"`
	Categories    []string      `json:"categories"`
	IsVerified    bool          `json:"is_verified"`
	ExternalLinks ExternalLinks `json:"external_links"`
	Stats         CreatorStats  `json:"stats"`
	XmtpGroupID   *string       `json:"xmtp_group_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ExternalLinks are the optional links shown under a creator bio
type ExternalLinks struct {
	Website   *string `json:"website,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Farcaster *string `json:"farcaster,omitempty"`
}

// CreatorStats are denormalized convenience counters, not a source of truth
type CreatorStats struct {
	FollowerCount  int64           `json:"follower_count"`
	PatronCount    int64           `json:"patron_count"`
	TotalVolumeUSD decimal.Decimal `json:"total_volume_usd"`
}

// CreatorWithUser is a creator joined with its owning user
type CreatorWithUser struct {
	Creator
	User User `json:"user"`
}
