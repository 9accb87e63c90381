// Package errors provides the structured error type used across feat-weaver.
//
// Errors carry a Code, a message, an optional cause, and metadata:
//
//	err := errors.NotFound("module not found").
//	    WithMeta("module", name)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := reader.Read(file); err != nil {
//	    return errors.Wrapf(err, "failed to read %s", file.Name())
//	}
//
// # Codes used by the pipeline
//
//   - InvalidArgument: bad configuration or selector text that is not understood
//   - NotFound: a referenced package, list or description does not exist
//   - FailedPrecondition: modules cannot be put in a load order
//   - ResourceExhausted: expansion generated more spells than allowed
//   - Unimplemented: content reached a code path that has no implementation yet
//   - Internal: anything else
//
// The CLI turns the code of the final error into a process exit status with
// Code.ExitCode.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidatePositive("concurrency", cfg.Concurrency, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
