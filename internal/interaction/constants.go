package interaction

// Log messages
const (
	LogMsgLiked     = "Post liked"
	LogMsgUnliked   = "Post unliked"
	LogMsgShared    = "Post shared"
	LogMsgCommented = "Comment added"
)
