package auth

const (
	// principalContextKey is where LoadSession stores the resolved principal
	// on the echo context.
	principalContextKey = "auth.principal"

	loginPath = "/login"

	msgAuthenticationRequired = "authentication required"
	msgPermissionDenied       = "permission denied"
)

const sessionTokenBytes = 32
