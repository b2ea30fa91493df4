package log

// ErrorCategory defines the category of a delivery error
type ErrorCategory int

const (
	ErrorUndefined ErrorCategory = iota
	ErrorConfiguration
	ErrorInfrastructure
	ErrorService
)

var errorCategory ErrorCategory = ErrorUndefined

func (e ErrorCategory) String() string {
	return [...]string{
		"undefined",
		"configuration",
		"infrastructure",
		"service",
	}[e]
}

// SetErrorCategory sets the error category
// This can be used later by calling log.GetErrorCategory()
func SetErrorCategory(category ErrorCategory) {
	errorCategory = category
}

// GetErrorCategory retrieves the error category of the last failure recorded by the command line
func GetErrorCategory() ErrorCategory {
	return errorCategory
}
