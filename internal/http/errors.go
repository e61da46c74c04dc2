package http

import (
	"fmt"

	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
)

// Leaderboard handler errors
const (
	codePageNotPublished     = "HTTP_4040"
	codeSnapshotNotPublished = "HTTP_4041"
	codeUnknownPeriod        = "HTTP_4042"

	codeInternalPageStoreFailed     = "HTTP_9000"
	codeInternalSnapshotStoreFailed = "HTTP_9001"
)

// errPageNotPublished returns an error when no leaderboard page has been published yet.
func errPageNotPublished(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codePageNotPublished, "leaderboard page not published yet", cause)
}

// errSnapshotNotPublished returns an error when no snapshot has been published yet.
func errSnapshotNotPublished(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeSnapshotNotPublished, "leaderboards not published yet", cause)
}

func errUnknownPeriod(periodKey string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeUnknownPeriod, fmt.Sprintf("unknown reporting period %q", periodKey), nil)
}

// errInternalPageStoreFailed returns an error when the page store cannot be read.
func errInternalPageStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPageStoreFailed, fmt.Errorf("pageStoreFailed: %w", cause))
}

// errInternalSnapshotStoreFailed returns an error when the snapshot store cannot be read.
func errInternalSnapshotStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSnapshotStoreFailed, fmt.Errorf("snapshotStoreFailed: %w", cause))
}
