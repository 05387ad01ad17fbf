package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// BodyType discriminates the post body variant
type BodyType string

const (
	BodyTypeText  BodyType = "text"
	BodyTypeImage BodyType = "image"
	BodyTypeVideo BodyType = "video"
)

// PostBody is one variant of post content. Implemented by TextBody,
// ImageBody and VideoBody.
type PostBody interface {
	Type() BodyType
}

// TextBody is a plain text post
type TextBody struct {
	Content string `json:"content,omitempty"`
}

// ImageBody references an image hosted on decentralized storage
type ImageBody struct {
	Caption     *string `json:"caption,omitempty"`
	FilecoinCID string  `json:"filecoin_cid,omitempty"`
	MimeType    string  `json:"mime_type"`
	Blurhash    *string `json:"blurhash,omitempty"`
}

// VideoBody references a video hosted on decentralized storage
type VideoBody struct {
	Description        *string `json:"description,omitempty"`
	FilecoinCID        string  `json:"filecoin_cid,omitempty"`
	EncryptionMetadata *string `json:"encryption_metadata,omitempty"`
	ThumbnailURL       *string `json:"thumbnail_url,omitempty"`
}

func (TextBody) Type() BodyType  { return BodyTypeText }
func (ImageBody) Type() BodyType { return BodyTypeImage }
func (VideoBody) Type() BodyType { return BodyTypeVideo }

// PostStats are denormalized social counters
type PostStats struct {
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	ShareCount   int64 `json:"share_count"`
}

// Post is a piece of content published by a creator
type Post struct {
	ID             string    `json:"id"`
	CreatorID      string    `json:"creator_id"`
	CreationTime   time.Time `json:"creation_time"`
	RequiredTierID *string   `json:"required_tier_id,omitempty"`
	Body           PostBody  `json:"body"`
	Stats          PostStats `json:"stats"`
}

// Gated reports whether the post requires a membership tier
func (p Post) Gated() bool {
	return p.RequiredTierID != nil && *p.RequiredTierID != ""
}

// MarshalJSON encodes the body variant with a type discriminator
func (p Post) MarshalJSON() ([]byte, error) {
	body, err := MarshalBody(p.Body)
	if err != nil {
		return nil, err
	}
	type alias Post
	return json.Marshal(struct {
		alias
		Body json.RawMessage `json:"body"`
	}{alias(p), body})
}

// FeedPost is a post enriched with its creator and the creator's user.
// Locked is set when the body was replaced by a teaser for this viewer.
type FeedPost struct {
	Post
	Creator CreatorWithUser `json:"creator"`
	Locked  bool            `json:"locked"`
}

// MarshalJSON keeps the custom body encoding of the embedded post
func (f FeedPost) MarshalJSON() ([]byte, error) {
	post, err := f.Post.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(post, &m); err != nil {
		return nil, err
	}
	if m["creator"], err = json.Marshal(f.Creator); err != nil {
		return nil, err
	}
	if m["locked"], err = json.Marshal(f.Locked); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// MarshalBody encodes a body variant as {"type": ..., fields...}
func MarshalBody(b PostBody) ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	fields, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(fields, &m); err != nil {
		return nil, err
	}
	kind, _ := json.Marshal(b.Type())
	m["type"] = kind
	return json.Marshal(m)
}

// UnmarshalBody decodes a body variant using its type discriminator
func UnmarshalBody(data []byte) (PostBody, error) {
	var head struct {
		Type BodyType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case BodyTypeText:
		var b TextBody
		err := json.Unmarshal(data, &b)
		return b, err
	case BodyTypeImage:
		var b ImageBody
		err := json.Unmarshal(data, &b)
		return b, err
	case BodyTypeVideo:
		var b VideoBody
		err := json.Unmarshal(data, &b)
		return b, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, head.Type)
	}
}

// Comment is a free-text reply on a post
type Comment struct {
	ID       string    `json:"id"`
	PostID   string    `json:"post_id"`
	UserID   string    `json:"user_id"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"posted_at"`
}

// Like records that a user liked a post
type Like struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
