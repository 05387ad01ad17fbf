package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// User represents an identity inside Mivy
type User struct {
	ID                   string     `json:"id"`
	Username             string     `json:"username"`
	PfpURL               string     `json:"pfp_url"`
	DisplayName          *string    `json:"display_name,omitempty"`
	Bio                  *string    `json:"bio,omitempty"`
	Email                *string    `json:"email,omitempty"`
	EmailVerifiedAt      *time.Time `json:"email_verified_at,omitempty"`
	CurrentWalletAddress *string    `json:"current_wallet_address,omitempty"`
	ProfileInitializedAt *time.Time `json:"profile_initialized_at,omitempty"`
	Socials              *Socials   `json:"socials,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// Socials holds optional social handles shown on a profile
type Socials struct {
	X        *string `json:"x,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
}

// ProfileFields is the profile snapshot asserted by an external identity on sign-in
type ProfileFields struct {
	Username             string     `json:"username" validate:"required,max=64"`
	PfpURL               string     `json:"pfp_url" validate:"omitempty,url"`
	DisplayName          *string    `json:"display_name,omitempty" validate:"omitempty,max=128"`
	Bio                  *string    `json:"bio,omitempty" validate:"omitempty,max=1024"`
	CurrentWalletAddress *string    `json:"current_wallet_address,omitempty"`
	InitializedAt        *time.Time `json:"initialized_at,omitempty"`
}

// ProfileUpdate carries the editable profile fields; nil means unchanged
type ProfileUpdate struct {
	DisplayName *string  `json:"display_name,omitempty" validate:"omitempty,max=128"`
	Bio         *string  `json:"bio,omitempty" validate:"omitempty,max=1024"`
	PfpURL      *string  `json:"pfp_url,omitempty" validate:"omitempty,url"`
	Socials     *Socials `json:"socials,omitempty"`
}

// FidUserView is the projection returned when looking a user up by Farcaster ID
type FidUserView struct {
	DisplayName          *string   `json:"display_name,omitempty"`
	Username             string    `json:"username"`
	PfpURL               string    `json:"pfp_url"`
	Bio                  *string   `json:"bio,omitempty"`
	CurrentWalletAddress *string   `json:"current_wallet_address,omitempty"`
	Fid                  int64     `json:"fid"`
	UserID               string    `json:"user_id"`
	LinkedAt             time.Time `json:"linked_at"`
}

// Protocol identifies the kind of external account linked to a user
type Protocol string

const (
	ProtocolFarcaster Protocol = "farcaster"
	ProtocolWallet    Protocol = "wallet"
	ProtocolEmail     Protocol = "email"
	ProtocolPhone     Protocol = "phone"
)

// Account is one variant of an external identity. Implemented by
// FarcasterAccount, WalletAccount, EmailAccount and PhoneAccount.
type Account interface {
	Protocol() Protocol
}

// FarcasterAccount is a linked Farcaster identity
type FarcasterAccount struct {
	Fid          int64      `json:"fid"`
	Username     *string    `json:"username,omitempty"`
	PfpURL       *string    `json:"pfp_url,omitempty"`
	DisplayName  *string    `json:"display_name,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// WalletAccount is a linked wallet address
type WalletAccount struct {
	Address string `json:"address"`
}

// EmailAccount is a linked email address
type EmailAccount struct {
	Email string `json:"email"`
}

// PhoneAccount is a linked phone number
type PhoneAccount struct {
	Phone string `json:"phone"`
}

func (FarcasterAccount) Protocol() Protocol { return ProtocolFarcaster }
func (WalletAccount) Protocol() Protocol    { return ProtocolWallet }
func (EmailAccount) Protocol() Protocol     { return ProtocolEmail }
func (PhoneAccount) Protocol() Protocol     { return ProtocolPhone }

// LinkedAccount ties exactly one external account to a user
type LinkedAccount struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Account  Account   `json:"account"`
	LinkedAt time.Time `json:"linked_at"`
}

// Farcaster returns the farcaster variant, if that is what this link holds
func (l LinkedAccount) Farcaster() (FarcasterAccount, bool) {
	switch a := l.Account.(type) {
	case FarcasterAccount:
		return a, true
	case *FarcasterAccount:
		return *a, a != nil
	}
	return FarcasterAccount{}, false
}

// MarshalJSON flattens the account variant with a protocol discriminator
func (l LinkedAccount) MarshalJSON() ([]byte, error) {
	account, err := MarshalAccount(l.Account)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID       string          `json:"id"`
		UserID   string          `json:"user_id"`
		Account  json.RawMessage `json:"account"`
		LinkedAt time.Time       `json:"linked_at"`
	}{l.ID, l.UserID, account, l.LinkedAt})
}

// MarshalAccount encodes an account variant as {"protocol": ..., fields...}
func MarshalAccount(a Account) ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	fields, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(fields, &m); err != nil {
		return nil, err
	}
	proto, _ := json.Marshal(a.Protocol())
	m["protocol"] = proto
	return json.Marshal(m)
}

// UnmarshalAccount decodes an account variant using its protocol discriminator
func UnmarshalAccount(data []byte) (Account, error) {
	var head struct {
		Protocol Protocol `json:"protocol"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Protocol {
	case ProtocolFarcaster:
		var a FarcasterAccount
		err := json.Unmarshal(data, &a)
		return a, err
	case ProtocolWallet:
		var a WalletAccount
		err := json.Unmarshal(data, &a)
		return a, err
	case ProtocolEmail:
		var a EmailAccount
		err := json.Unmarshal(data, &a)
		return a, err
	case ProtocolPhone:
		var a PhoneAccount
		err := json.Unmarshal(data, &a)
		return a, err
	default:
		return nil, fmt.Errorf("%w: unknown account protocol %q", ErrInvalidInput, head.Protocol)
	}
}
