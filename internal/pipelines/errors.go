package pipelines

import (
	"fmt"

	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
)

// LeaderboardService errors
const (
	codeCurrentWindowUnavailable = "PIPE_5000"
	codeBuildCanceled            = "PIPE_5001"

	codeInternalPeriodPanicked = "PIPE_9000"
)

// errCurrentWindowUnavailable returns an error when the current window of a period cannot be fetched.
func errCurrentWindowUnavailable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeCurrentWindowUnavailable, "current window could not be fetched", cause)
}

// errBuildCanceled returns an error when the build context ended before the current window was fetched.
func errBuildCanceled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeBuildCanceled, "build canceled", cause)
}

// errInternalPeriodPanicked returns an error when building a single period panicked.
func errInternalPeriodPanicked(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPeriodPanicked, fmt.Errorf("periodPanicked: %w", cause))
}
