package types

// ContextPrincipalKey holds the *auth.Claims of the authenticated caller.
const ContextPrincipalKey = "principal"
