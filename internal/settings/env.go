package settings

import (
	"os"
	"strings"
)

// EnvPrefix marks environment variables that override file settings.
const EnvPrefix = "ARCHETYPE_"

const envDelimiter = "__"

// FromEnv collects variables starting with prefix into a source. The prefix is
// stripped and "__" is mapped to the key delimiter, so ARCHETYPE_Logging__Level
// becomes "Logging:Level".
func FromEnv(prefix string) *MemorySource {
	return fromEnviron(prefix, os.Environ())
}

func fromEnviron(prefix string, environ []string) *MemorySource {
	values := make(map[string]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.TrimPrefix(name, prefix)
		if key == "" {
			continue
		}
		values[strings.ReplaceAll(key, envDelimiter, KeyDelimiter)] = value
	}
	return NewMemorySource(values)
}
