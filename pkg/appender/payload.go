package appender

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate     *validator.Validate
	translator   ut.Translator
	validateOnce sync.Once
)

// EventPayload is the record shipped to the collector for one log event.
type EventPayload struct {
	textLog     string
	projectName string
	moduleName  string
}

// payloadFields carries the validation rules of an EventPayload.
// The validator reports fields in declaration order.
type payloadFields struct {
	TextLog     string `json:"textLog" validate:"required"`
	ProjectName string `json:"projectName" validate:"required"`
	ModuleName  string `json:"moduleName" validate:"required"`
}

// NewEventPayload returns a validated payload. The first empty field, checked in the order
// textLog, projectName, moduleName, is reported as PayloadValidationError.
func NewEventPayload(projectName, moduleName, textLog string) (EventPayload, error) {
	validateOnce.Do(initValidator)

	fields := payloadFields{TextLog: textLog, ProjectName: projectName, ModuleName: moduleName}
	if err := validate.Struct(fields); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok || len(errs) == 0 {
			return EventPayload{}, &PayloadValidationError{Field: "payload", message: err.Error()}
		}
		return EventPayload{}, &PayloadValidationError{Field: errs[0].Field(), message: errs[0].Translate(translator)}
	}

	return EventPayload{textLog: textLog, projectName: projectName, moduleName: moduleName}, nil
}

// ProjectName returns the project the event belongs to.
func (p EventPayload) ProjectName() string { return p.projectName }

// ModuleName returns the module the event belongs to.
func (p EventPayload) ModuleName() string { return p.moduleName }

// TextLog returns the formatted log text.
func (p EventPayload) TextLog() string { return p.textLog }

// MarshalJSON renders exactly projectName, moduleName and textLog.
func (p EventPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProjectName string `json:"projectName"`
		ModuleName  string `json:"moduleName"`
		TextLog     string `json:"textLog"`
	}{p.projectName, p.moduleName, p.textLog})
}

func initValidator() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	eng := en.New()
	uni := ut.New(eng, eng)
	translator, _ = uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validate, translator)
}
