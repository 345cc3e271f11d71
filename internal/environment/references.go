package environment

import (
	"path"
	"regexp"
	"strings"
)

var sourceExts = []string{
	".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs",
	".py", ".rb", ".php", ".java", ".kt",
	".go", ".rs", ".cs", ".ex", ".exs", ".dart", ".swift",
}

var referencePatterns = []*regexp.Regexp{
	// process.env.NAME and import.meta.env.NAME
	regexp.MustCompile(`(?:process|import\.meta)\.env\.([A-Z_][A-Z0-9_]*)`),
	regexp.MustCompile(`os\.(?:getenv|environ\.get)\(\s*['"]([A-Z_][A-Z0-9_]*)['"]`),
	regexp.MustCompile(`os\.environ\[['"]([A-Z_][A-Z0-9_]*)['"]\]`),
	// ENV['NAME'], Ruby
	regexp.MustCompile(`ENV(?:\.fetch\(|\[)['"]([A-Z_][A-Z0-9_]*)['"]`),
	regexp.MustCompile(`(?:\$_ENV\[|getenv\(|env\()['"]([A-Z_][A-Z0-9_]*)['"]`),
	regexp.MustCompile(`System\.getenv\("([A-Z_][A-Z0-9_]*)"\)`),
	regexp.MustCompile(`os\.(?:Getenv|LookupEnv)\("([A-Z_][A-Z0-9_]*)"\)`),
	regexp.MustCompile(`(?:std::)?env::var\("([A-Z_][A-Z0-9_]*)"\)`),
	regexp.MustCompile(`Environment\.GetEnvironmentVariable\("([A-Z_][A-Z0-9_]*)"\)`),
	regexp.MustCompile(`System\.(?:get_env|fetch_env!?)\("([A-Z_][A-Z0-9_]*)"\)`),
	regexp.MustCompile(`Platform\.environment\[['"]([A-Z_][A-Z0-9_]*)['"]\]`),
}

// IsSource reports whether rel is a source file worth searching for
// environment variable references. Tests are excluded.
func IsSource(rel string) bool {
	if isTestFile(rel) {
		return false
	}
	ext := strings.ToLower(path.Ext(rel))
	for _, sourceExt := range sourceExts {
		if ext == sourceExt {
			return true
		}
	}
	return false
}

// References returns the variable names read by content, in first-seen order.
func References(content []byte) []string {
	text := string(content)
	found := make(map[string]bool)

	var names []string
	for _, pattern := range referencePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if found[name] || IsSystem(name) {
				continue
			}
			found[name] = true
			names = append(names, name)
		}
	}
	return names
}

func isTestFile(rel string) bool {
	name := strings.ToLower(path.Base(rel))
	dir := strings.ToLower(path.Dir(rel))
	return strings.Contains(name, "_test.") ||
		strings.Contains(name, ".test.") ||
		strings.Contains(name, ".spec.") ||
		strings.HasPrefix(name, "test_") ||
		strings.Contains("/"+dir+"/", "/__tests__/") ||
		strings.Contains("/"+dir+"/", "/test/") ||
		strings.Contains("/"+dir+"/", "/tests/")
}
