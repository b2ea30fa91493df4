package appender

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vrp/restappender/pkg/log"
)

func TestConfigurationError(t *testing.T) {
	assert.EqualError(t, &ConfigurationError{Field: FieldRestURL}, "missing endpoint URL: check appender property restURL")
	assert.EqualError(t, &ConfigurationError{Field: FieldCredBasicAuth}, "missing credentials: check appender property credBasicAuth")
	assert.EqualError(t, &ConfigurationError{Field: "timeout"}, "missing timeout: check appender property timeout")
}

func TestSerializationError(t *testing.T) {
	cause := fmt.Errorf("unsupported value")
	err := &SerializationError{err: cause}

	assert.EqualError(t, err, "serializing log event failed: unsupported value")
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Equal(t, log.ErrorUndefined, err.Category())
}

func TestDeliveryRejectedError(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{404, "Status 404. Page not found. Check parameter of log appender: RestURL"},
		{401, "Status 401. Unauthorized. Check parameter of log appender: CredBasicAuth"},
		{412, "Status 412. Precondition Failed. Check parameters of log appender: ProjectName, ModuleName and log layout"},
		{503, "Unexpected response status code 503. Check parameters of log appender"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.EqualError(t, &DeliveryRejectedError{StatusCode: tt.status}, tt.want)
		})
	}
}
