// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package auth provides account storage, token issuance and bearer middleware.

Key Components:

  - JWTManager: HS256 access and refresh tokens with a "type" claim
  - Accounts: bcrypt registration and verification over a UserStore
  - MemoryUserStore, BadgerUserStore: account persistence
  - Middleware: RequireAccess guards routes with an access token

Tokens:

Access tokens live 15 minutes and refresh tokens 7 days by default. Both carry
sub (normalized email), type, iat and exp. A refresh token is never accepted
where an access token is expected, and the reverse.

Emails are lowercased and trimmed before storage and lookup. Passwords shorter
than MinPasswordLength are rejected at signup.

Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	store, err := auth.NewUserStore(&cfg.Security)
	accounts := auth.NewAccounts(store, cfg.Security.BcryptCost)
	r.With(auth.NewMiddleware(jwtManager, writeError).RequireAccess).Get("/pois/categories", h)
*/
package auth
