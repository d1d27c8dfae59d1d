// Package auth implements the authentication core for a single privileged
// admin account: signup, credential verification, and a three token session
// lifecycle (short lived access token, rotating refresh token, short lived
// secondary elevation token).
//
// Token lifecycle:
//   - Access tokens are stateless HS256 JWTs; validity is signature plus
//     expiry, nothing is persisted and early revocation is not possible.
//   - Refresh tokens are signed AND registered in the SessionStore with a
//     TTL. The store is authoritative for revocation: a token that verifies
//     but has no store entry is treated as revoked. Each refresh token is
//     valid for exactly one reissue; rotation consumes the old entry
//     atomically before the replacement pair is minted.
//   - Secondary tokens are store registered step up credentials with their
//     own shorter TTL, independent of the refresh lifecycle.
//
// Collaborators are interfaces: Admins (credential store, bun backed
// implementation included), SessionStore (Redis backed implementation
// included), TokenSigner, and PasswordAuthenticator (bcrypt default). The
// Auther itself holds no cross request state, so operations for different
// requests can run concurrently without coordination.
package auth
