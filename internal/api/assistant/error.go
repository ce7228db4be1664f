package assistant

import "WellCommand/pkg/response"

var (
	ErrEmptyQuery       = response.NewError(400, "query must not be empty")
	ErrQueryInFlight    = response.NewError(409, "a query is already in progress for this session")
	ErrSessionNotFound  = response.NewError(404, "session not found")
	ErrSessionForbidden = response.NewError(403, "token does not grant access to this session")
	ErrTokenIssue       = response.NewError(500, "failed to issue session token")
)
