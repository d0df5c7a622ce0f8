package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crmarques/datashelf/resource/identity"
	"github.com/spf13/cobra"
)

// ReadMetadata builds the metadata document for a create command from
// exactly one of --name, --interactive or the payload input.
func ReadMetadata(command *cobra.Command, flags CreateFlags) (json.RawMessage, error) {
	sources := 0
	if command.Flags().Changed("name") {
		sources++
	}
	if flags.Interactive {
		sources++
	}
	if flags.Input.Payload != "" {
		sources++
	}
	if sources > 1 {
		return nil, ValidationError("use only one of --name, --payload or --interactive", nil)
	}

	switch {
	case command.Flags().Changed("name"):
		return nameMetadata(flags.Name)
	case flags.Interactive:
		name, err := PromptInput(command, "Name", true)
		if err != nil {
			return nil, err
		}
		return nameMetadata(name)
	}

	data, err := ReadInput(command, flags.Input)
	if err != nil {
		return nil, err
	}
	document, err := DecodeInputData[any](data, flags.Input.Format)
	if err != nil {
		return nil, err
	}
	if _, ok := document.(map[string]any); !ok {
		return nil, ValidationError("metadata input must be an object", nil)
	}

	encoded, err := json.Marshal(document)
	if err != nil {
		return nil, ValidationError("metadata input cannot be encoded as json", err)
	}
	return encoded, nil
}

func nameMetadata(name string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ValidationError("flag --name must not be empty", nil)
	}
	return json.Marshal(map[string]string{"name": trimmed})
}

// RequireResourceID rejects identifiers that could not have been generated.
func RequireResourceID(kind string, value string) (string, error) {
	if !identity.IsValid(value) {
		return "", ValidationError(fmt.Sprintf("invalid %s id %q", kind, value), nil)
	}
	return value, nil
}
