// Package auth provides API key authentication for the catalog API.
//
// It supports two modes:
//   - "none": No authentication required
//   - "apikey": Every non-public route requires a valid API key (default)
//
// # Configuration
//
// Set AUTH_MODE environment variable to select the mode:
//
//	AUTH_MODE=apikey   # Default
//	AUTH_MODE=none     # Open API, e.g. for local development
//
// For apikey mode, keys come from two places:
//
//	AUTH_API_KEY=<secret>                # Static key, compared in constant time
//	AUTH_API_KEY_HEADER=Authorization    # Header carrying the key
//
// and from the api_keys table, managed with the apikey-create and
// apikey-revoke commands. Stored keys are bcrypt hashed and looked up by
// their non-secret prefix.
//
// # Usage
//
//	svc := auth.NewService(apikeys.NewRepository(db), cfg.Auth)
//	router.Use(auth.NewMiddleware(svc, cfg.Auth).Handler())
package auth
