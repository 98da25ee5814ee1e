// Package log provides simple leveled logging for md5.
//
// This package implements a lightweight logging system with colored output
// and support for different log levels: DEBUG, INFO, WARN, and ERROR.
// It provides global logging functions that can be used throughout the application.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures and exceptions
//
// # Example Usage
//
//	log.Infof("Hashing %d bytes", len(message))
//	log.Errorf("Failed to read input: %v", err)
//
// Commands that print a digest on stdout keep logs off that stream:
//
//	log.SetForceStdErr(true)
//
// Enabling verbose mode for debug output:
//
//	log.SetVerbose(true)
//	log.Debugf("Padded to %d blocks", blocks)
//
// The package uses global state guarded by a mutex, so it is safe to call
// from concurrent goroutines.
package log
