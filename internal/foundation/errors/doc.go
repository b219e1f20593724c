// Package errors provides the classified error primitives used across bundlebuilder.
//
// Every failure that crosses a package boundary is a ClassifiedError carrying a
// category (config, filesystem, verification, ...), a severity and a retry
// strategy. The build pipeline never retries, so in practice the retry strategy
// is RetryNever for everything raised by this module; the field is kept so the
// CLI adapter can present engine-originated errors consistently.
//
// Example usage:
//
//	err := errors.ConfigError("unsupported compression option").
//		WithContext("compress_option", opt).
//		Build()
package errors
