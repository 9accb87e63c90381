// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/modules"
	"github.com/KirkDiggler/feat-weaver/internal/repositories/snapshot"
	snapshotmock "github.com/KirkDiggler/feat-weaver/internal/repositories/snapshot/mock"
)

// packageMatcher matches snapshot inputs by package path, ignoring size and
// modification time which differ on every test run.
type packageMatcher struct {
	path string
}

func (m packageMatcher) Matches(x any) bool {
	switch input := x.(type) {
	case snapshot.GetInput:
		return input.Package.Path == m.path
	case snapshot.PutInput:
		return input.Package.Path == m.path
	default:
		return false
	}
}

func (m packageMatcher) String() string {
	return fmt.Sprintf("is a snapshot input for package %s", m.path)
}

// ForPackage matches a snapshot GetInput or PutInput by package path
func ForPackage(path string) gomock.Matcher {
	return packageMatcher{path: path}
}

// ExpectSnapshotMiss sets up a cache miss for a package followed by storing
// the freshly read snapshots with the given TTL
func ExpectSnapshotMiss(mockRepo *snapshotmock.MockRepository, path string, ttl time.Duration) {
	mockRepo.EXPECT().
		Get(gomock.Any(), ForPackage(path)).
		Return(nil, errors.NotFound("snapshot not found"))

	mockRepo.EXPECT().
		Put(gomock.Any(), ForPackage(path)).
		DoAndReturn(func(_ context.Context, input snapshot.PutInput) (*snapshot.PutOutput, error) {
			if input.TTL != ttl {
				return nil, errors.InvalidArgumentf("unexpected ttl %s", input.TTL)
			}
			return &snapshot.PutOutput{Key: "snapshot:" + path}, nil
		})
}

// ExpectSnapshotHit sets up a cache hit returning the given snapshots
func ExpectSnapshotHit(mockRepo *snapshotmock.MockRepository, path string, cached ...*modules.Module) {
	mockRepo.EXPECT().
		Get(gomock.Any(), ForPackage(path)).
		Return(&snapshot.GetOutput{
			Modules:  cached,
			CachedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}, nil)
}

// ExpectSnapshotUnavailable sets up a cache whose server cannot be reached
func ExpectSnapshotUnavailable(mockRepo *snapshotmock.MockRepository, path string) {
	mockRepo.EXPECT().
		Get(gomock.Any(), ForPackage(path)).
		Return(nil, errors.Unavailable("connection refused"))

	mockRepo.EXPECT().
		Put(gomock.Any(), ForPackage(path)).
		Return(nil, errors.Unavailable("connection refused"))
}
