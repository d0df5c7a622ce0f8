package commandmeta

import "strings"

type OutputPolicy uint8

const (
	// OutputPolicyStructured commands print result envelopes: json or yaml,
	// auto resolves to json.
	OutputPolicyStructured OutputPolicy = iota
	// OutputPolicyTextDefault commands render text on auto and also accept
	// json or yaml.
	OutputPolicyTextDefault
	OutputPolicyYAMLDefaultTextOrYAML
)

func RequiresContextBootstrapPath(commandPath string) bool {
	normalized := strings.TrimSpace(commandPath)
	switch {
	case normalized == "datashelf config show":
		return true
	case strings.HasPrefix(normalized, "datashelf user "):
		return true
	case strings.HasPrefix(normalized, "datashelf dataset "):
		return true
	case strings.HasPrefix(normalized, "datashelf collection "):
		return true
	case strings.HasPrefix(normalized, "datashelf repo "):
		return true
	}

	return false
}

func EmitsExecutionStatusPath(path string) bool {
	switch strings.TrimSpace(path) {
	case "datashelf user create",
		"datashelf dataset create",
		"datashelf collection create",
		"datashelf repo init",
		"datashelf repo check":
		return true
	default:
		return false
	}
}

func OutputPolicyForPath(path string) OutputPolicy {
	switch strings.TrimSpace(path) {
	case "datashelf config show":
		return OutputPolicyYAMLDefaultTextOrYAML
	case "datashelf version",
		"datashelf repo init",
		"datashelf repo check",
		"datashelf repo history":
		return OutputPolicyTextDefault
	default:
		return OutputPolicyStructured
	}
}
