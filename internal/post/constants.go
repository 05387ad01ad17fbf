package post

// BodySeparator joins the non-empty title, summary and content of a text post
const BodySeparator = "\n\n"

// MaxContentLength bounds the composed text body
const MaxContentLength = 20000

// Log messages
const (
	LogMsgPostCreated  = "Post created"
	LogMsgTierRejected = "Required tier does not belong to caller"
)
