package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR}, ${VAR:-default} and $VAR. Slot variables in
// templates use lower-case names, so only upper-case names are treated as
// environment references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*(?::-[^}]*)?)\}|\$([A-Z_][A-Z0-9_]*)`)

// ExpandEnv replaces environment references in s:
//   - ${VAR} with the value of VAR
//   - ${VAR:-default} with the value of VAR, or default if VAR is unset or empty
//   - $VAR with the value of VAR
//
// Unset variables without a default expand to the empty string.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, "${") {
			inner := match[2 : len(match)-1]
			if name, def, ok := strings.Cut(inner, ":-"); ok {
				if val := os.Getenv(name); val != "" {
					return val
				}
				return def
			}
			return os.Getenv(inner)
		}
		return os.Getenv(match[1:])
	})
}

// ExpandEnvConfig expands environment references in the separator and the
// text lines of cfg.
func ExpandEnvConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Separator = ExpandEnv(cfg.Separator)
	for i, line := range cfg.Text {
		cfg.Text[i] = ExpandEnv(line)
	}
}
