package environment

import (
	"strconv"
	"strings"
	"unicode"
)

// Kind is the coarse classification of an environment variable.
type Kind string

const (
	KindUnknown   Kind = "unknown"
	KindSecret    Kind = "secret"
	KindDatabase  Kind = "database"
	KindConfig    Kind = "config"
	KindGenerated Kind = "generated" // nanoid, uuid, random string
	KindURL       Kind = "url"
	KindBoolean   Kind = "boolean"
	KindNumeric   Kind = "numeric"
)

var secretPatterns = []string{
	"secret", "key", "token", "password", "pass", "pwd",
	"auth", "credential", "cred", "private", "cert",
	"client_id", "oauth", "bearer", "jwt", "session", "cookie",
	"salt", "signature", "signing", "encryption", "cipher",
	"webhook", "vault",
}

var databasePatterns = []string{
	"database_url", "db_url", "dsn", "connection_string",
	"postgres_url", "mysql_url", "mongodb_url", "mongo_url", "redis_url",
}

var systemEnvVars = []string{
	"path", "home", "user", "shell", "pwd", "lang", "term", "tmpdir",
	"ps1", "ps2", "ifs", "mail", "editor", "pager", "browser", "display",
	"oldpwd", "shlvl", "hostname", "logname", "uid", "gid", "tz",
}

// IsSystem reports whether name is a shell or OS variable that says nothing
// about the project.
func IsSystem(name string) bool {
	lower := strings.ToLower(name)
	for _, sys := range systemEnvVars {
		if lower == sys {
			return true
		}
	}
	return false
}

// Classify guesses the kind of a variable from its name and, when known, its
// value. The second result reports whether the value should be treated as
// sensitive.
func Classify(name, value string) (Kind, bool) {
	if IsSystem(name) {
		return KindUnknown, false
	}
	lower := strings.ToLower(name)

	if looksGenerated(value) {
		return KindGenerated, true
	}

	for _, pattern := range databasePatterns {
		if strings.Contains(lower, pattern) {
			return KindDatabase, true
		}
	}
	if strings.Contains(value, "://") && hasDatabaseScheme(value) {
		return KindDatabase, true
	}

	for _, pattern := range secretPatterns {
		if strings.Contains(lower, pattern) {
			return KindSecret, true
		}
	}

	if strings.HasPrefix(value, "http") || strings.Contains(lower, "url") || strings.HasSuffix(lower, "_host") {
		return KindURL, false
	}

	if value == "true" || value == "false" || strings.Contains(lower, "enable") || strings.Contains(lower, "flag") {
		return KindBoolean, false
	}

	if isNumeric(value) || lower == "port" || strings.HasSuffix(lower, "_port") {
		return KindNumeric, false
	}

	return KindConfig, false
}

func hasDatabaseScheme(value string) bool {
	scheme, _, _ := strings.Cut(strings.ToLower(value), "://")
	switch scheme {
	case "postgres", "postgresql", "mysql", "mongodb", "mongodb+srv", "redis", "rediss", "amqp", "sqlite":
		return true
	}
	return false
}

func looksGenerated(value string) bool {
	if len(value) < 8 {
		return false
	}

	// uuid
	if len(value) == 36 && strings.Count(value, "-") == 4 {
		return true
	}

	if isURLSafeBase64(value) && len(value) >= 16 && containsDigit(value) {
		return true
	}

	// jwt
	if strings.Count(value, ".") == 2 && len(value) > 50 {
		return true
	}

	return len(value) >= 20 && hasHighEntropy(value) && containsMixedCase(value)
}

func isURLSafeBase64(s string) bool {
	for _, r := range s {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

func hasHighEntropy(value string) bool {
	chars := make(map[rune]int)
	for _, r := range value {
		chars[r]++
	}
	return float64(len(chars))/float64(len(value)) > 0.5
}

func containsMixedCase(value string) bool {
	var upper, lower bool
	for _, r := range value {
		if unicode.IsUpper(r) {
			upper = true
		}
		if unicode.IsLower(r) {
			lower = true
		}
		if upper && lower {
			return true
		}
	}
	return false
}

func containsDigit(value string) bool {
	return strings.ContainsAny(value, "0123456789")
}

func isNumeric(value string) bool {
	_, err := strconv.Atoi(value)
	return err == nil
}
