package feed

// Log messages
const (
	LogMsgDanglingCreator = "Dropping post with missing creator"
	LogMsgDanglingUser    = "Dropping post with missing creator user"
	LogMsgGatingFailed    = "Membership check failed, serving teaser"
	LogMsgFeedComposed    = "Feed composed"
)
