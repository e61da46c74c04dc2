package publishers

import (
	"fmt"

	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
)

// LeaderboardPublisher errors
const (
	codePublishCanceled = "PUB_5000"

	codeInternalSnapshotStoreFailed = "PUB_9000"
	codeInternalRenderFailed        = "PUB_9001"
	codeInternalPageStoreFailed     = "PUB_9002"
)

// errPublishCanceled returns an error when the context ended during the build; nothing is persisted.
func errPublishCanceled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codePublishCanceled, "publish canceled", cause)
}

// errInternalSnapshotStoreFailed returns an error when the snapshot cannot be persisted.
func errInternalSnapshotStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSnapshotStoreFailed, fmt.Errorf("snapshotStoreFailed: %w", cause))
}

// errInternalRenderFailed returns an error when the leaderboard page cannot be rendered.
func errInternalRenderFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRenderFailed, fmt.Errorf("renderFailed: %w", cause))
}

// errInternalPageStoreFailed returns an error when the rendered page cannot be persisted.
func errInternalPageStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPageStoreFailed, fmt.Errorf("pageStoreFailed: %w", cause))
}
