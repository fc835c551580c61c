// Package user provides the User aggregate: an account with credentials, a role and
// an administrator-controlled state.
//
// New accounts are ACTIVE, unverified and not deleted. Email addresses are stored
// lower-cased and never change. Only ACTIVE, non-deleted accounts may sign in.
package user
