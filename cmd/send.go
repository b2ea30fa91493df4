package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vrp/restappender/pkg/appender"
	"github.com/vrp/restappender/pkg/config"
	resthttp "github.com/vrp/restappender/pkg/http"
	"github.com/vrp/restappender/pkg/log"
)

type sendOptions struct {
	appenderOptions
	level   string
	viaHook bool
}

// eventSink accepts one log event at a time.
type eventSink interface {
	Log(level logrus.Level, args ...interface{})
}

// SendCommand delivers log events given as arguments or read line by line from stdin
func SendCommand() *cobra.Command {
	var options sendOptions

	var createSendCmd = &cobra.Command{
		Use:   "send [message...]",
		Short: "Delivers log events to the configured collector",
		Long: `Delivers every argument as one log event. Without arguments every line read from stdin is delivered,
its level derived from the line content (ERROR, WARN, otherwise INFO). Exits with 1 if any event could not be delivered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			myConfig, err := loadConfig(cmd.Flags(), options.appenderOptions)
			if err != nil {
				return err
			}
			return send(myConfig, options, args, cmd.InOrStdin())
		},
	}

	addAppenderFlags(createSendCmd.Flags(), &options.appenderOptions)
	createSendCmd.Flags().StringVar(&options.level, "level", "info", "Level of the log events given as arguments")
	createSendCmd.Flags().BoolVar(&options.viaHook, "viaHook", false, "Deliver through a logrus logger with the appender hook instead of calling the appender directly")
	return createSendCmd
}

func send(myConfig config.Config, options sendOptions, messages []string, stdin io.Reader) error {
	level, err := logrus.ParseLevel(options.level)
	if err != nil {
		return errors.Wrap(err, "invalid value for flag --level")
	}
	if options.viaHook && level == logrus.PanicLevel {
		return errors.New("level panic cannot be used together with --viaHook")
	}
	timeout, err := myConfig.TimeoutDuration()
	if err != nil {
		return err
	}

	client := &resthttp.Client{}
	client.SetOptions(resthttp.ClientOptions{Timeout: timeout})
	deliveryAppender := appender.NewDeliveryAppender(myConfig.Appender, nil, client)

	report := &deliveryReport{}
	var sink eventSink
	if options.viaHook {
		sink = newHookSink(deliveryAppender, report)
	} else {
		sink = &deliverySink{appender: deliveryAppender, logger: logrus.New(), report: report}
	}

	if len(messages) > 0 {
		for _, message := range messages {
			sink.Log(level, message)
		}
	} else {
		writer := log.NewWriter(forwardLine(sink))
		if _, err := io.Copy(writer, stdin); err != nil {
			return errors.Wrap(err, "reading log events from stdin failed")
		}
		writer.Flush()
	}

	log.Entry().Debugf("%d log events delivered, %d failed", report.delivered, report.failed)
	return report.err()
}

// deliveryReport counts delivery outcomes and logs every failure with its error category.
type deliveryReport struct {
	delivered int
	failed    int
}

func (r *deliveryReport) record(err error) {
	if err == nil {
		r.delivered++
		return
	}
	r.failed++

	category := log.ErrorUndefined
	var categorized interface{ Category() log.ErrorCategory }
	if errors.As(err, &categorized) {
		category = categorized.Category()
	}
	log.SetErrorCategory(category)
	log.Entry().WithError(err).WithField("category", category.String()).Error("log event could not be delivered")
}

func (r *deliveryReport) err() error {
	if r.failed > 0 {
		return errors.Errorf("%d of %d log events could not be delivered", r.failed, r.failed+r.delivered)
	}
	return nil
}

// deliverySink calls the appender directly.
type deliverySink struct {
	appender *appender.DeliveryAppender
	logger   *logrus.Logger
	report   *deliveryReport
}

func (s *deliverySink) Log(level logrus.Level, args ...interface{}) {
	entry := logrus.NewEntry(s.logger)
	entry.Time = time.Now()
	entry.Level = level
	entry.Message = fmt.Sprint(args...)
	s.report.record(s.appender.Deliver(entry))
}

// reportingHook records the outcome of the wrapped hook. Failures are reported
// by the deliveryReport, so logrus does not print them a second time.
type reportingHook struct {
	*appender.Hook
	report *deliveryReport
}

func (h *reportingHook) Fire(entry *logrus.Entry) error {
	h.report.record(h.Hook.Fire(entry))
	return nil
}

func newHookSink(deliveryAppender *appender.DeliveryAppender, report *deliveryReport) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.TraceLevel)
	logger.AddHook(&reportingHook{Hook: appender.NewHook(deliveryAppender), report: report})
	return logger
}

// forwardLine passes a non blank stdin line to the sink. The level follows the
// line content: ERROR, then WARN, otherwise info.
func forwardLine(sink eventSink) func(line string) {
	return func(line string) {
		if len(strings.TrimSpace(line)) == 0 {
			return
		}
		sink.Log(levelOfLine(line), line)
	}
}

func levelOfLine(line string) logrus.Level {
	switch {
	case strings.Contains(line, "ERROR"):
		return logrus.ErrorLevel
	case strings.Contains(line, "WARN"):
		return logrus.WarnLevel
	}
	return logrus.InfoLevel
}
