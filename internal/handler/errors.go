package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingPathParam  = "Missing %s path parameter"
	ErrMsgInvalidFidParam   = "Invalid fid"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Auth error messages
	ErrMsgSignInFailed   = "Failed to sign in"
	ErrMsgIssueTokenFail = "Failed to issue session token"

	// User error messages
	ErrMsgGetUserFailed    = "Failed to get user"
	ErrMsgUpdateUserFailed = "Failed to update profile"

	// Creator error messages
	ErrMsgBecomeCreatorFailed = "Failed to create creator profile"
	ErrMsgSearchFailed        = "Failed to search creators"

	// Membership error messages
	ErrMsgActivateFailed    = "Failed to activate membership"
	ErrMsgCreateTierFailed  = "Failed to create tier"
	ErrMsgListTiersFailed   = "Failed to list tiers"
	ErrMsgExpireDueFailed   = "Failed to expire memberships"
	ErrMsgListMembershipErr = "Failed to list memberships"

	// Post error messages
	ErrMsgListPostsFailed  = "Failed to list posts"
	ErrMsgCreatePostFailed = "Failed to create post"
	ErrMsgInteractFailed   = "Failed to update post"

	// Notification error messages
	ErrMsgNotificationFailed = "Failed to access notification details"

	// Upload error messages
	ErrMsgUploadFailed = "Failed to upload content"
)

// Success messages for API responses
const (
	MsgSignedIn               = "Signed in"
	MsgProfileUpdated         = "Profile updated"
	MsgCreatorCreated         = "Creator profile created"
	MsgTierCreated            = "Tier created"
	MsgMembershipActivated    = "Membership activated"
	MsgMembershipsExpired     = "Expired memberships swept"
	MsgPostCreated            = "Post created"
	MsgCommentAdded           = "Comment added"
	MsgNotificationSaved      = "Notification details saved"
	MsgNotificationDeleted    = "Notification details deleted"
	MsgUploadComplete         = "Upload complete"
	MsgNoNotificationsForUser = "No notification details stored"
)
