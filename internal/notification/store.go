package notification

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// Details are the mini-app notification endpoint and token for one user
type Details struct {
	URL   string `json:"url" validate:"required,url"`
	Token string `json:"token" validate:"required,max=512"`
}

// Entry pairs a fid with its stored details
type Entry struct {
	Fid     int64   `json:"fid"`
	Details Details `json:"details"`
}

// Store keeps notification details with a TTL per entry
type Store interface {
	// Get returns nil when no details are stored for fid
	Get(ctx context.Context, fid int64) (*Details, error)
	Set(ctx context.Context, fid int64, details Details) error
	Delete(ctx context.Context, fid int64) error
	List(ctx context.Context) ([]Entry, error)
}

var validate = validator.New()

// Validate checks details before they are stored
func (d Details) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// Key returns the storage key for fid
func Key(fid int64) string {
	return KeyPrefix + strconv.FormatInt(fid, 10)
}

// parseKey extracts the fid from a storage key
func parseKey(key string) (int64, bool) {
	raw, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return 0, false
	}
	fid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || fid <= 0 {
		return 0, false
	}
	return fid, true
}

func checkFid(fid int64) error {
	if fid <= 0 {
		return domain.ErrInvalidFid
	}
	return nil
}
