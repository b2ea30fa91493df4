package log

import (
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Entry
	loggerOnce sync.Once
	secrets    []string
	secretsMux sync.RWMutex
)

// maskedSecret replaces every registered secret in formatted log output.
const maskedSecret = "****"

type removeSecretFormatterDecorator struct {
	logrus.Formatter
}

func (formatter *removeSecretFormatterDecorator) Format(entry *logrus.Entry) ([]byte, error) {
	formattedMessage, err := formatter.Formatter.Format(entry)
	if err != nil {
		return nil, err
	}

	message := string(formattedMessage)
	secretsMux.RLock()
	for _, secret := range secrets {
		message = strings.ReplaceAll(message, secret, maskedSecret)
	}
	secretsMux.RUnlock()

	return []byte(message), nil
}

// messageOnlyFormatter prints the plain message, one per line.
type messageOnlyFormatter struct{}

func (f *messageOnlyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}

// Entry returns the logger entry or creates one if none is present.
func Entry() *logrus.Entry {
	loggerOnce.Do(func() {
		logger = logrus.WithField("library", "restappender")
		SetFormatter(false)
	})
	return logger
}

// packageMarker tags entries logged by this module. Callers cannot create values of
// this type, so an application field named "package" is never mistaken for one.
type packageMarker string

// PackageEntry returns the diagnostics logger of one package of this module.
func PackageEntry(name string) *logrus.Entry {
	return Entry().WithField("package", packageMarker(name))
}

// IsOwnDiagnostic reports whether entry was logged through PackageEntry.
func IsOwnDiagnostic(entry *logrus.Entry) bool {
	_, ok := entry.Data["package"].(packageMarker)
	return ok
}

// SetVerbose switches the diagnostics logger between info and debug level.
func SetVerbose(verbose bool) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetLevel(logrus.InfoLevel)
}

// SetFormatter installs the secret masking formatter on the standard logger.
// With messageOnly set only the message text is printed.
func SetFormatter(messageOnly bool) {
	var formatter logrus.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	if messageOnly {
		formatter = &messageOnlyFormatter{}
	}
	logrus.SetFormatter(&removeSecretFormatterDecorator{formatter})
}

// SetOutput redirects the diagnostics logger.
func SetOutput(w io.Writer) {
	Entry().Logger.SetOutput(w)
}

// RegisterSecret registers a value which will be masked in every diagnostics line.
// The url encoded form of the secret is registered as well.
func RegisterSecret(secret string) {
	if len(secret) == 0 {
		return
	}
	secretsMux.Lock()
	defer secretsMux.Unlock()
	secrets = append(secrets, secret)
	if encoded := url.QueryEscape(secret); encoded != secret {
		secrets = append(secrets, encoded)
	}
}

// RegisterHook adds a hook to the standard logger.
func RegisterHook(hook logrus.Hook) {
	logrus.AddHook(hook)
}
