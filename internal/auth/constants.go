package auth

// Session token settings
const (
	TokenIssuer  = "mivy"
	TokenSubject = "session"
	BearerPrefix = "Bearer "
)

// HTTP header names
const (
	HeaderAuthorization = "Authorization"
)

// Log messages
const (
	LogMsgSessionRejected = "Session token rejected"
	LogMsgSessionMissing  = "Session required but not provided"
)
