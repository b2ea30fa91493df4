package appender

import (
	"strings"

	"github.com/pkg/errors"
)

// Names of the appender properties.
const (
	FieldRestURL       = "restURL"
	FieldCredBasicAuth = "credBasicAuth"
	FieldProjectName   = "projectName"
	FieldModuleName    = "moduleName"
)

// Configuration holds the appender properties. Values are not validated when set,
// missing values are reported by Deliver.
type Configuration struct {
	RestURL       string `json:"restURL,omitempty"`
	CredBasicAuth string `json:"credBasicAuth,omitempty"`
	ProjectName   string `json:"projectName,omitempty"`
	ModuleName    string `json:"moduleName,omitempty"`
}

// Set assigns the value of the named property. Names are matched case-insensitively.
func (c *Configuration) Set(field, value string) error {
	switch strings.ToLower(field) {
	case strings.ToLower(FieldRestURL):
		c.RestURL = value
	case strings.ToLower(FieldCredBasicAuth):
		c.CredBasicAuth = value
	case strings.ToLower(FieldProjectName):
		c.ProjectName = value
	case strings.ToLower(FieldModuleName):
		c.ModuleName = value
	default:
		return errors.Errorf("unknown appender property '%s'", field)
	}
	return nil
}

// Masked returns a copy with the credentials replaced, suitable for printing.
func (c Configuration) Masked() Configuration {
	if len(c.CredBasicAuth) > 0 {
		c.CredBasicAuth = "****"
	}
	return c
}
