package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "module not found",
			expected: "NOT_FOUND: module not found",
		},
		{
			name:     "unimplemented error",
			code:     errors.CodeUnimplemented,
			message:  "spell selectors are not expandable",
			expected: "UNIMPLEMENTED: spell selectors are not expandable",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("candidate list not found").
		WithMeta("list_id", "499230af-5946-4680-a7ee-4d76d421f2ef").
		WithMeta("module", "Shared")

	s.Assert().Equal("499230af-5946-4680-a7ee-4d76d421f2ef", err.Meta["list_id"])
	s.Assert().Equal("Shared", err.Meta["module"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("unexpected EOF")
	wrapped := errors.Wrap(baseErr, "failed to read feats.lsx")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to read feats.lsx", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.FailedPrecondition("dependency cycle")
	wrapped := errors.Wrap(baseErr, "failed to merge modules")

	s.Assert().Equal(errors.CodeFailedPrecondition, wrapped.Code)
	s.Assert().Equal("failed to merge modules", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "snapshot cache unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("snapshot cache unavailable", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"ResourceExhausted", func() *errors.Error { return errors.ResourceExhausted("test") }, errors.CodeResourceExhausted},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Unimplemented", func() *errors.Error { return errors.Unimplemented("test") }, errors.CodeUnimplemented},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.NotFoundf("module %s not found", "Shared")
	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("module Shared not found", err.Message)

	err2 := errors.ResourceExhaustedf("more than %d leaves", 10)
	s.Assert().Equal(errors.CodeResourceExhausted, err2.Code)
	s.Assert().Equal("more than 10 leaves", err2.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.Unimplemented("test")
	err2 := errors.Unimplemented("other")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	unimplementedErr := errors.Unimplemented("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(unimplementedErr, "wrapped")

	s.Assert().True(errors.IsUnimplemented(unimplementedErr))
	s.Assert().True(errors.IsUnimplemented(wrappedErr))
	s.Assert().False(errors.IsUnimplemented(invalidErr))

	s.Assert().True(errors.IsInvalidArgument(invalidErr))
	s.Assert().False(errors.IsInvalidArgument(unimplementedErr))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.NotFound("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestExitCode() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 0},
		{errors.CodeInvalidArgument, 2},
		{errors.CodeNotFound, 2},
		{errors.CodeFailedPrecondition, 3},
		{errors.CodeResourceExhausted, 3},
		{errors.CodeUnimplemented, 3},
		{errors.CodeInternal, 1},
		{errors.CodeUnavailable, 1},
		{errors.CodeCanceled, 130},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.ExitCode())
		})
	}
}
