package stories

import "errors"

var (
	// ErrInvalidURL reports a story URL that cannot be parsed.
	ErrInvalidURL = errors.New("invalid story url")

	// ErrUnauthenticated reports a mutating call attempted without a
	// session token. It is raised before any remote call is made.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrAuthRejected reports that the remote service refused the
	// supplied credentials. Retrying with the same credentials is
	// pointless.
	ErrAuthRejected = errors.New("credentials rejected")

	// ErrRemoteUnavailable reports a transport or server failure. The
	// operation may succeed if retried later.
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)
