package handler

import (
	"net/http"

	"github.com/osse101/Mivy_Go/internal/auth"
	"github.com/osse101/Mivy_Go/internal/domain"
	"github.com/osse101/Mivy_Go/internal/feed"
	"github.com/osse101/Mivy_Go/internal/interaction"
	"github.com/osse101/Mivy_Go/internal/post"
)

// PostHandlers serve the feed, post creation, and post interactions
type PostHandlers struct {
	posts        post.Service
	feed         feed.Service
	interactions interaction.Service
}

// NewPostHandlers creates post handlers
func NewPostHandlers(posts post.Service, feedSvc feed.Service, interactions interaction.Service) *PostHandlers {
	return &PostHandlers{posts: posts, feed: feedSvc, interactions: interactions}
}

// LikeResponse reports whether a like changed state
type LikeResponse struct {
	PostID  string `json:"post_id"`
	Changed bool   `json:"changed"`
}

// ShareResponse carries the share count after the increment
type ShareResponse struct {
	PostID string `json:"post_id"`
	Shares int64  `json:"shares"`
}

func viewerID(r *http.Request) string {
	if u := auth.GetAuthUser(r.Context()); u != nil {
		return u.ID
	}
	return ""
}

// HandleList returns the viewer-gated feed, newest first
// @Summary List posts
// @Description Gated bodies are replaced by a teaser and marked locked when the viewer lacks a covering membership
// @Tags posts
// @Produce json
// @Param creator_id query string false "Only this creator's posts"
// @Param limit query int false "Maximum posts to return"
// @Success 200 {object} DataResponse{data=[]domain.FeedPost}
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/posts [get]
func (h *PostHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetLimitParam(r, w)
		if !ok {
			return
		}

		posts, err := h.feed.ListFeed(r.Context(), viewerID(r), feed.Query{
			CreatorID: GetOptionalQueryParam(r, "creator_id", ""),
			Limit:     limit,
		})
		if err != nil {
			respondServiceError(w, r, ErrMsgListPostsFailed, err)
			return
		}
		if posts == nil {
			posts = []domain.FeedPost{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: posts})
	}
}

// HandleGet returns one post with the same gating as the feed
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} DataResponse{data=domain.FeedPost}
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/posts/{id} [get]
func (h *PostHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		fp, err := h.feed.GetPost(r.Context(), viewerID(r), id)
		if err != nil {
			respondServiceError(w, r, "Get post", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: fp})
	}
}

// HandleCreate publishes a text post for the caller's creator profile
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body post.CreateInput true "Post"
// @Success 201 {object} DataResponse{data=domain.Post}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Creator profile not found"
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/posts [post]
func (h *PostHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCreate(w, r, ErrMsgCreatePostFailed, MsgPostCreated, h.posts.Create)
	}
}

// HandleLike records a like; liking twice leaves one like
// @Summary Like post
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} DataResponse{data=LikeResponse}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/posts/{id}/like [post]
func (h *PostHandlers) HandleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		changed, err := h.interactions.Like(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgInteractFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: LikeResponse{PostID: id, Changed: changed}})
	}
}

// HandleUnlike removes the caller's like
// @Summary Unlike post
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} DataResponse{data=LikeResponse}
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/posts/{id}/like [delete]
func (h *PostHandlers) HandleUnlike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		changed, err := h.interactions.Unlike(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgInteractFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: LikeResponse{PostID: id, Changed: changed}})
	}
}

// HandleShare counts a share
// @Summary Share post
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} DataResponse{data=ShareResponse}
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/posts/{id}/share [post]
func (h *PostHandlers) HandleShare() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		shares, err := h.interactions.Share(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgInteractFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: ShareResponse{PostID: id, Shares: shares}})
	}
}

// HandleListComments lists comments on a post the viewer can read
// @Summary List comments
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} DataResponse{data=[]domain.Comment}
// @Failure 403 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/posts/{id}/comments [get]
func (h *PostHandlers) HandleListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		comments, err := h.interactions.ListComments(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgInteractFailed, err)
			return
		}
		if comments == nil {
			comments = []domain.Comment{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: comments})
	}
}

// HandleComment adds a comment
// @Summary Comment on post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param request body interaction.CommentInput true "Comment"
// @Success 201 {object} DataResponse{data=domain.Comment}
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/posts/{id}/comments [post]
func (h *PostHandlers) HandleComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		var req interaction.CommentInput
		if err := DecodeAndValidateRequest(r, w, &req, "Comment"); err != nil {
			return
		}

		c, err := h.interactions.Comment(r.Context(), id, req)
		if err != nil {
			respondServiceError(w, r, ErrMsgInteractFailed, err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgCommentAdded, Data: c})
	}
}
