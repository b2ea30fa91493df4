package appender

import (
	"fmt"
	"net/http"

	"github.com/vrp/restappender/pkg/log"
)

// ConfigurationError reports an appender property which is missing at delivery time.
type ConfigurationError struct {
	Field string
}

var configurationMessages = map[string]string{
	FieldRestURL:       "missing endpoint URL",
	FieldProjectName:   "missing project name",
	FieldModuleName:    "missing module name",
	FieldCredBasicAuth: "missing credentials",
}

func (e *ConfigurationError) Error() string {
	message, ok := configurationMessages[e.Field]
	if !ok {
		message = "missing " + e.Field
	}
	return fmt.Sprintf("%s: check appender property %s", message, e.Field)
}

// Category returns the error category of the failure.
func (e *ConfigurationError) Category() log.ErrorCategory {
	return log.ErrorConfiguration
}

// PayloadValidationError reports the first empty field of an EventPayload.
type PayloadValidationError struct {
	Field   string
	message string
}

func (e *PayloadValidationError) Error() string {
	return fmt.Sprintf("invalid event payload: %s", e.message)
}

// Category returns the error category of the failure.
func (e *PayloadValidationError) Category() log.ErrorCategory {
	return log.ErrorConfiguration
}

// SerializationError reports that an event could not be turned into a request body.
type SerializationError struct {
	err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing log event failed: %v", e.err)
}

func (e *SerializationError) Unwrap() error { return e.err }

// Cause is used by github.com/pkg/errors.Cause.
func (e *SerializationError) Cause() error { return e.err }

// Category returns the error category of the failure.
func (e *SerializationError) Category() log.ErrorCategory {
	return log.ErrorUndefined
}

// TransportError reports that the collector could not be reached.
type TransportError struct {
	URL string
	err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sending log event to '%s' failed: %v", e.URL, e.err)
}

func (e *TransportError) Unwrap() error { return e.err }

// Cause is used by github.com/pkg/errors.Cause.
func (e *TransportError) Cause() error { return e.err }

// Category returns the error category of the failure.
func (e *TransportError) Category() log.ErrorCategory {
	return log.ErrorInfrastructure
}

// DeliveryRejectedError reports a response status other than 200.
type DeliveryRejectedError struct {
	StatusCode int
}

func (e *DeliveryRejectedError) Error() string {
	switch e.StatusCode {
	case http.StatusNotFound:
		return "Status 404. Page not found. Check parameter of log appender: RestURL"
	case http.StatusUnauthorized:
		return "Status 401. Unauthorized. Check parameter of log appender: CredBasicAuth"
	case http.StatusPreconditionFailed:
		return "Status 412. Precondition Failed. Check parameters of log appender: ProjectName, ModuleName and log layout"
	}
	return fmt.Sprintf("Unexpected response status code %d. Check parameters of log appender", e.StatusCode)
}

// Category returns the error category of the failure.
func (e *DeliveryRejectedError) Category() log.ErrorCategory {
	if e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusPreconditionFailed {
		return log.ErrorConfiguration
	}
	return log.ErrorService
}
