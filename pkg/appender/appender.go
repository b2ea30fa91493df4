package appender

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	resthttp "github.com/vrp/restappender/pkg/http"
	"github.com/vrp/restappender/pkg/log"
)

const packageName = "restappender/pkg/appender"

// DeliveryAppender ships every log event it receives as one JSON document to a remote collector.
// The configuration is copied on construction and never changes afterwards, so a single
// appender can deliver from several goroutines at once.
type DeliveryAppender struct {
	config    Configuration
	formatter logrus.Formatter
	sender    resthttp.Sender
}

// NewDeliveryAppender creates an appender for the given configuration.
// A nil formatter renders events with a colorless logrus.TextFormatter,
// a nil sender uses a http client without timeout.
func NewDeliveryAppender(config Configuration, formatter logrus.Formatter, sender resthttp.Sender) *DeliveryAppender {
	if formatter == nil {
		formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	}
	if sender == nil {
		sender = &resthttp.Client{}
	}

	log.RegisterSecret(config.CredBasicAuth)
	log.RegisterSecret(basicAuthToken(config.CredBasicAuth))

	return &DeliveryAppender{
		config:    config,
		formatter: formatter,
		sender:    sender,
	}
}

// Configuration returns the configuration the appender delivers with.
func (a *DeliveryAppender) Configuration() Configuration {
	return a.config
}

// Deliver sends one log event to the collector and blocks until the response arrives.
// Missing properties are reported in the order restURL, projectName, moduleName and,
// only after the payload has been built, credBasicAuth.
func (a *DeliveryAppender) Deliver(entry *logrus.Entry) error {
	logger := log.PackageEntry(packageName).WithField("deliveryId", uuid.New().String())

	if len(a.config.RestURL) == 0 {
		return &ConfigurationError{Field: FieldRestURL}
	}
	if len(a.config.ProjectName) == 0 {
		return &ConfigurationError{Field: FieldProjectName}
	}
	if len(a.config.ModuleName) == 0 {
		return &ConfigurationError{Field: FieldModuleName}
	}

	textLog, err := a.format(entry)
	if err != nil {
		return &SerializationError{err: err}
	}

	payload, err := NewEventPayload(a.config.ProjectName, a.config.ModuleName, textLog)
	if err != nil {
		return err
	}

	if len(a.config.CredBasicAuth) == 0 {
		return &ConfigurationError{Field: FieldCredBasicAuth}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &SerializationError{err: err}
	}

	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Basic "+basicAuthToken(a.config.CredBasicAuth))

	logger.Debugf("Sending log event of project '%s' module '%s' to %s", payload.ProjectName(), payload.ModuleName(), a.config.RestURL)
	response, err := a.sender.SendRequest(http.MethodPost, a.config.RestURL, bytes.NewReader(body), header)
	if err != nil {
		return &TransportError{URL: a.config.RestURL, err: err}
	}
	defer func() {
		io.Copy(io.Discard, response.Body)
		response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return &DeliveryRejectedError{StatusCode: response.StatusCode}
	}

	logger.Debug("Log event delivered")
	return nil
}

func (a *DeliveryAppender) format(entry *logrus.Entry) (string, error) {
	formatted, err := a.formatter.Format(entry)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(formatted), "\r\n"), nil
}

func basicAuthToken(credentials string) string {
	if len(credentials) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(credentials))
}
