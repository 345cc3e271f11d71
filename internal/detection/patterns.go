package detection

import "regexp"

// ContentPattern is a regex tested against files whose relative path
// matches Glob.
type ContentPattern struct {
	ID     string
	Glob   string
	Regexp *regexp.Regexp
}

const (
	gradleGlob = "**/*.{gradle,gradle.kts}"
	jsGlob     = "**/*.{js,jsx,mjs,cjs,ts,tsx}"
	kotlinGlob = "**/*.{kt,kts}"
	jvmGlob    = "**/*.{java,kt}"
)

// Pattern ids referenced by the rules table.
const (
	PatternKMPAndroid      = "kmp-target-android"
	PatternKMPIOS          = "kmp-target-ios"
	PatternKMPDesktop      = "kmp-target-desktop"
	PatternKMPJS           = "kmp-target-js"
	PatternKMPWasm         = "kmp-target-wasm"
	PatternComposePlugin   = "compose-plugin"
	PatternComposeDeps     = "compose-dependencies"
	PatternComposable      = "composable-annotation"
	PatternAndroidxCompose = "androidx-compose"
	PatternSwiftUI         = "swiftui-import"
	PatternFlutterImport   = "flutter-import"
	PatternReactImport     = "react-import"
	PatternReactNative     = "react-native-import"
	PatternAngular         = "angular-decorator"
	PatternElectron        = "electron-import"
	PatternNestModule      = "nest-module"
	PatternExpressApp      = "express-app"
	PatternFastifyApp      = "fastify-app"
	PatternFastAPIApp      = "fastapi-app"
	PatternFlaskApp        = "flask-app"
	PatternDjangoSettings  = "django-settings"
	PatternRailsApp        = "rails-application"
	PatternLaravel         = "laravel-illuminate"
	PatternSpringBoot      = "spring-boot-application"
	PatternKtorServer      = "ktor-server"
	PatternGinImport       = "gin-import"
	PatternEchoImport      = "echo-import"
	PatternFiberImport     = "fiber-import"
	PatternActixMain       = "actix-main"
	PatternAxumRouter      = "axum-router"
	PatternTauriBuilder    = "tauri-builder"
	PatternAspNetBuilder   = "aspnet-builder"
	PatternPhoenix         = "phoenix-use"
)

// DefaultPatterns returns the content patterns the scanner tests.
func DefaultPatterns() []ContentPattern {
	return []ContentPattern{
		// Kotlin Multiplatform target declarations
		{PatternKMPAndroid, gradleGlob, regexp.MustCompile(`\bandroidTarget\s*\(|\bandroid\s*\(\s*\)`)},
		{PatternKMPIOS, gradleGlob, regexp.MustCompile(`\bios(X64|Arm64|SimulatorArm64)?\s*\(`)},
		{PatternKMPDesktop, gradleGlob, regexp.MustCompile(`\bjvm\s*\(`)},
		{PatternKMPJS, gradleGlob, regexp.MustCompile(`\bjs\s*\(`)},
		{PatternKMPWasm, gradleGlob, regexp.MustCompile(`\bwasmJs\s*\(`)},
		{PatternComposePlugin, gradleGlob, regexp.MustCompile(`org\.jetbrains\.compose|plugins\.compose\.?multiplatform|composeMultiplatform`)},
		{PatternComposeDeps, gradleGlob, regexp.MustCompile(`\bcompose\.(runtime|foundation|material3?|ui|desktop\.currentOs)\b`)},
		{PatternComposable, kotlinGlob, regexp.MustCompile(`@Composable\b`)},
		{PatternAndroidxCompose, "**/*.{gradle,gradle.kts,kt,toml}", regexp.MustCompile(`androidx\.compose`)},

		{PatternSwiftUI, "**/*.swift", regexp.MustCompile(`(?m)^import SwiftUI$`)},
		{PatternFlutterImport, "**/*.dart", regexp.MustCompile(`package:flutter/`)},

		{PatternReactImport, jsGlob, regexp.MustCompile(`from\s+['"]react['"]|require\(\s*['"]react['"]\s*\)`)},
		{PatternReactNative, jsGlob, regexp.MustCompile(`from\s+['"]react-native['"]`)},
		{PatternAngular, "**/*.ts", regexp.MustCompile(`@(Component|NgModule)\s*\(\s*\{`)},
		{PatternElectron, jsGlob, regexp.MustCompile(`from\s+['"]electron['"]|require\(\s*['"]electron['"]\s*\)`)},
		{PatternNestModule, "**/*.ts", regexp.MustCompile(`from\s+['"]@nestjs/(core|common)['"]`)},
		{PatternExpressApp, jsGlob, regexp.MustCompile(`\bexpress\(\s*\)`)},
		{PatternFastifyApp, jsGlob, regexp.MustCompile(`\bfastify\(\s*(\{|\))`)},

		{PatternFastAPIApp, "**/*.py", regexp.MustCompile(`\bFastAPI\(`)},
		{PatternFlaskApp, "**/*.py", regexp.MustCompile(`\bFlask\(\s*__name__`)},
		{PatternDjangoSettings, "**/*.py", regexp.MustCompile(`\bINSTALLED_APPS\s*=|django\.core\.(wsgi|asgi)`)},
		{PatternRailsApp, "**/*.rb", regexp.MustCompile(`Rails\.application|< Rails::Application`)},
		{PatternLaravel, "**/*.php", regexp.MustCompile(`Illuminate\\`)},

		{PatternSpringBoot, jvmGlob, regexp.MustCompile(`@SpringBootApplication\b`)},
		{PatternKtorServer, kotlinGlob, regexp.MustCompile(`\bembeddedServer\s*\(|io\.ktor\.server`)},

		{PatternGinImport, "**/*.go", regexp.MustCompile(`"github\.com/gin-gonic/gin"`)},
		{PatternEchoImport, "**/*.go", regexp.MustCompile(`"github\.com/labstack/echo(/v4)?"`)},
		{PatternFiberImport, "**/*.go", regexp.MustCompile(`"github\.com/gofiber/fiber(/v[0-9]+)?"`)},

		{PatternActixMain, "**/*.rs", regexp.MustCompile(`#\[actix_web::main\]|actix_web::`)},
		{PatternAxumRouter, "**/*.rs", regexp.MustCompile(`\baxum::`)},
		{PatternTauriBuilder, "**/*.rs", regexp.MustCompile(`tauri::Builder`)},

		{PatternAspNetBuilder, "**/*.cs", regexp.MustCompile(`WebApplication\.CreateBuilder`)},
		{PatternPhoenix, "**/*.{ex,exs}", regexp.MustCompile(`use Phoenix\.`)},
	}
}
