package stack

import (
	"github.com/railwayapp/stackgen/internal/detection"
)

// Ecosystem groups frameworks that share tooling and package managers.
type Ecosystem string

const (
	EcosystemNode   Ecosystem = "node"
	EcosystemPython Ecosystem = "python"
	EcosystemGo     Ecosystem = "go"
	EcosystemRust   Ecosystem = "rust"
	EcosystemRuby   Ecosystem = "ruby"
	EcosystemPHP    Ecosystem = "php"
	EcosystemJVM    Ecosystem = "jvm"
	EcosystemDart   Ecosystem = "dart"
	EcosystemSwift  Ecosystem = "swift"
	EcosystemDotNet Ecosystem = "dotnet"
	EcosystemElixir Ecosystem = "elixir"
)

type frameworkInfo struct {
	name      string
	language  string
	ecosystem Ecosystem

	// manifest keys whose value is the framework version
	packages []string
}

var frameworks = map[string]frameworkInfo{
	"nextjs":    {"Next.js", "typescript", EcosystemNode, []string{"npm:next"}},
	"nuxt":      {"Nuxt", "typescript", EcosystemNode, []string{"npm:nuxt", "npm:nuxt3"}},
	"sveltekit": {"SvelteKit", "typescript", EcosystemNode, []string{"npm:@sveltejs/kit"}},
	"remix":     {"Remix", "typescript", EcosystemNode, []string{"npm:@remix-run/react", "npm:@remix-run/node"}},
	"astro":     {"Astro", "typescript", EcosystemNode, []string{"npm:astro"}},
	"gatsby":    {"Gatsby", "javascript", EcosystemNode, []string{"npm:gatsby"}},
	"react":     {"React", "typescript", EcosystemNode, []string{"npm:react"}},
	"vue":       {"Vue", "typescript", EcosystemNode, []string{"npm:vue"}},
	"svelte":    {"Svelte", "typescript", EcosystemNode, []string{"npm:svelte"}},
	"angular":   {"Angular", "typescript", EcosystemNode, []string{"npm:@angular/core"}},
	"solid":     {"SolidJS", "typescript", EcosystemNode, []string{"npm:solid-js"}},

	"compose-multiplatform": {"Compose Multiplatform", "kotlin", EcosystemJVM, []string{"maven:org.jetbrains.compose.runtime:runtime"}},
	"kotlin-multiplatform":  {"Kotlin Multiplatform", "kotlin", EcosystemJVM, nil},
	"flutter":               {"Flutter", "dart", EcosystemDart, nil},
	"expo":                  {"Expo", "typescript", EcosystemNode, []string{"npm:expo"}},
	"react-native":          {"React Native", "typescript", EcosystemNode, []string{"npm:react-native"}},
	"android":               {"Android", "kotlin", EcosystemJVM, nil},
	"swiftui":               {"SwiftUI", "swift", EcosystemSwift, nil},

	"electron": {"Electron", "typescript", EcosystemNode, []string{"npm:electron"}},
	"tauri":    {"Tauri", "rust", EcosystemRust, []string{"cargo:tauri", "npm:@tauri-apps/api"}},

	"nestjs":      {"NestJS", "typescript", EcosystemNode, []string{"npm:@nestjs/core"}},
	"express":     {"Express", "javascript", EcosystemNode, []string{"npm:express"}},
	"fastify":     {"Fastify", "javascript", EcosystemNode, []string{"npm:fastify"}},
	"django":      {"Django", "python", EcosystemPython, []string{"pypi:django"}},
	"fastapi":     {"FastAPI", "python", EcosystemPython, []string{"pypi:fastapi"}},
	"flask":       {"Flask", "python", EcosystemPython, []string{"pypi:flask"}},
	"rails":       {"Ruby on Rails", "ruby", EcosystemRuby, []string{"gem:rails"}},
	"laravel":     {"Laravel", "php", EcosystemPHP, []string{"composer:laravel/framework"}},
	"spring-boot": {"Spring Boot", "java", EcosystemJVM, []string{"maven:org.springframework.boot:spring-boot-starter-parent", "maven:org.springframework.boot:spring-boot-starter-web", "maven:org.springframework.boot:spring-boot-starter-webflux"}},
	"ktor":        {"Ktor", "kotlin", EcosystemJVM, []string{"maven:io.ktor:ktor-server-core"}},
	"gin":         {"Gin", "go", EcosystemGo, []string{"go:github.com/gin-gonic/gin"}},
	"echo":        {"Echo", "go", EcosystemGo, []string{"go:github.com/labstack/echo"}},
	"fiber":       {"Fiber", "go", EcosystemGo, []string{"go:github.com/gofiber/fiber"}},
	"actix-web":   {"Actix Web", "rust", EcosystemRust, []string{"cargo:actix-web"}},
	"axum":        {"Axum", "rust", EcosystemRust, []string{"cargo:axum"}},
	"aspnet-core": {"ASP.NET Core", "csharp", EcosystemDotNet, nil},
	"phoenix":     {"Phoenix", "elixir", EcosystemElixir, []string{"hex:phoenix"}},
}

var variantNames = map[string]string{
	detection.VariantFullMultiplatform: "Full multiplatform",
	detection.VariantMobileFocused:     "Mobile-focused",
	detection.VariantWebEnabled:        "Web-enabled",
	detection.VariantDesktopOnly:       "Desktop only",

	"vite":             "Vite",
	"create-react-app": "Create React App",
	"vue-cli":          "Vue CLI",
	"solid-start":      "SolidStart",
	"jetpack-compose":  "Jetpack Compose",
	"views":            "Android Views",
	"webflux":          "WebFlux",
	"webmvc":           "Web MVC",
	"rest-framework":   "Django REST framework",
}

var languageNames = map[string]string{
	"typescript": "TypeScript",
	"javascript": "JavaScript",
	"kotlin":     "Kotlin",
	"java":       "Java",
	"dart":       "Dart",
	"swift":      "Swift",
	"python":     "Python",
	"ruby":       "Ruby",
	"php":        "PHP",
	"go":         "Go",
	"rust":       "Rust",
	"csharp":     "C#",
	"elixir":     "Elixir",
}

// DisplayName returns the human name of a framework id. Unknown ids are
// returned unchanged.
func DisplayName(id string) string {
	if info, ok := frameworks[id]; ok {
		return info.name
	}
	return id
}

// VariantDisplayName returns the human name of a variant. A meta-framework
// variant is the framework's own id.
func VariantDisplayName(variant string) string {
	if name, ok := variantNames[variant]; ok {
		return name
	}
	return DisplayName(variant)
}

// LanguageOf returns the primary language id of a framework, or "".
func LanguageOf(framework string) string {
	return frameworks[framework].language
}

// LanguageDisplayName returns the human name of a language id.
func LanguageDisplayName(language string) string {
	if name, ok := languageNames[language]; ok {
		return name
	}
	return language
}

// EcosystemOf returns the tooling ecosystem of a framework, or "".
func EcosystemOf(framework string) Ecosystem {
	return frameworks[framework].ecosystem
}

// Frameworks returns every known framework id in detection priority order.
func Frameworks() []string {
	candidates := detection.DefaultTable().Candidates()
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids
}

// Known reports whether id names a framework.
func Known(id string) bool {
	_, ok := detection.DefaultTable().Lookup(id)
	return ok
}

// Variants lists the variants a framework can resolve to.
func Variants(framework string) []string {
	c, ok := detection.DefaultTable().Lookup(framework)
	if !ok {
		return nil
	}

	var variants []string
	if len(c.Targets) > 0 {
		variants = append(variants,
			detection.VariantMobileFocused,
			detection.VariantFullMultiplatform,
			detection.VariantWebEnabled,
			detection.VariantDesktopOnly,
		)
	}
	if c.Base != "" {
		variants = append(variants, c.ID)
	}
	for _, v := range c.Variants {
		variants = append(variants, v.ID)
	}
	return variants
}
