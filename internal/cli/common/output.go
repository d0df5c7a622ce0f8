package common

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/crmarques/datashelf/internal/cli/commandmeta"
	"github.com/crmarques/datashelf/resource"
	"github.com/crmarques/datashelf/yamlutil"
	"github.com/spf13/cobra"
)

const (
	OutputAuto = "auto"
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

func ValidateOutputFormat(format string) error {
	switch format {
	case OutputAuto, OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return ValidationError("invalid output format: use auto, text, json, or yaml", nil)
	}
}

// ResolveOutputFormat picks the concrete format for a command, resolving
// auto by the command's output policy.
func ResolveOutputFormat(commandPath string, format string) (string, error) {
	format = strings.TrimSpace(format)
	if format == "" {
		format = OutputAuto
	}
	if err := ValidateOutputFormat(format); err != nil {
		return "", err
	}

	switch commandmeta.OutputPolicyForPath(commandPath) {
	case commandmeta.OutputPolicyTextDefault:
		if format == OutputAuto {
			return OutputText, nil
		}
		return format, nil
	case commandmeta.OutputPolicyYAMLDefaultTextOrYAML:
		switch format {
		case OutputAuto:
			return OutputYAML, nil
		case OutputJSON:
			return "", ValidationError("command supports only yaml or text output; use --output yaml, text, or auto", nil)
		}
		return format, nil
	default:
		switch format {
		case OutputAuto:
			return OutputJSON, nil
		case OutputText:
			return "", ValidationError("command supports only json or yaml output; use --output json, yaml, or auto", nil)
		}
		return format, nil
	}
}

func WriteOutput[T any](command *cobra.Command, format string, value T, renderText func(io.Writer, T) error) error {
	if isNilOutputValue(value) {
		return nil
	}

	switch format {
	case OutputAuto, OutputText:
		if renderText != nil {
			return renderText(command.OutOrStdout(), value)
		}
		_, err := fmt.Fprintln(command.OutOrStdout(), value)
		return err
	case OutputJSON:
		encoded, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(command.OutOrStdout(), string(encoded))
		return err
	case OutputYAML:
		encoded, err := yamlutil.Marshal(value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(command.OutOrStdout(), string(encoded))
		return err
	default:
		return ValidationError("invalid output format: use auto, text, json, or yaml", nil)
	}
}

// WriteEnvelope prints the envelope in the resolved format and reports a
// populated envelope error as the command error.
func WriteEnvelope[T any](command *cobra.Command, globalFlags *GlobalFlags, envelope resource.IOResource[T]) error {
	format, err := ResolveOutputFormat(command.CommandPath(), outputFlag(globalFlags))
	if err != nil {
		return err
	}
	if err := WriteOutput(command, format, envelope, nil); err != nil {
		return err
	}
	return EnvelopeError(envelope.Error)
}

func WriteText(command *cobra.Command, format string, text string) error {
	return WriteOutput(command, format, text, func(w io.Writer, value string) error {
		_, err := fmt.Fprintln(w, value)
		return err
	})
}

func outputFlag(globalFlags *GlobalFlags) string {
	if globalFlags == nil {
		return OutputAuto
	}
	return globalFlags.Output
}

func isNilOutputValue[T any](value T) bool {
	anyValue := any(value)
	if anyValue == nil {
		return true
	}

	reflected := reflect.ValueOf(anyValue)
	switch reflected.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return reflected.IsNil()
	default:
		return false
	}
}
