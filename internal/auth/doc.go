// Package auth is the identity collaborator: it resolves bearer tokens into
// the acting account id. Tokens are HS256 JWTs with the account as subject.
package auth
