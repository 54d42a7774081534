// Package exitcode provides standardized exit codes for genframeworks
package exitcode

// Exit codes for the genframeworks CLI. UsageError follows the BSD
// sysexits convention (EX_USAGE) that callers of the original baseline
// script already expect.
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	FileSystemError = 4
	ToolNotFound    = 9
	UsageError      = 64
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case FileSystemError:
		return "File system error"
	case ToolNotFound:
		return "Tool not found"
	case UsageError:
		return "Usage error"
	default:
		return "Unknown error"
	}
}
