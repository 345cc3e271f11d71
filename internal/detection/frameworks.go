package detection

import "sync"

// Platform variants of multi-target candidates.
const (
	VariantFullMultiplatform = "full-multiplatform"
	VariantMobileFocused     = "mobile-focused"
	VariantWebEnabled        = "web-enabled"
	VariantDesktopOnly       = "desktop-only"
)

const jsxGlob = "**/*.{jsx,tsx}"

var kmpTargets = []Target{
	{Platform: "android", Family: FamilyMobile, Predicate: AnyOf(ContentMatches(PatternKMPAndroid), DirNamed("androidMain"))},
	{Platform: "ios", Family: FamilyMobile, Predicate: AnyOf(ContentMatches(PatternKMPIOS), DirNamed("iosMain"))},
	{Platform: "desktop", Family: FamilyDesktop, Predicate: AnyOf(ContentMatches(PatternKMPDesktop), DirNamed("desktopMain", "jvmMain"))},
	{Platform: "web", Family: FamilyWeb, Predicate: AnyOf(ContentMatches(PatternKMPJS), DirNamed("jsMain"))},
	{Platform: "wasm", Family: FamilyWasm, Predicate: AnyOf(ContentMatches(PatternKMPWasm), DirNamed("wasmJsMain"))},
}

var flutterTargets = []Target{
	{Platform: "android", Family: FamilyMobile, Predicate: DirExists("android")},
	{Platform: "ios", Family: FamilyMobile, Predicate: DirExists("ios")},
	{Platform: "desktop", Family: FamilyDesktop, Predicate: DirExists("macos", "linux", "windows")},
	{Platform: "web", Family: FamilyWeb, Predicate: DirExists("web")},
}

var viteVariant = Variant{ID: "vite", Predicate: AnyOf(HasManifest("npm:vite"), FileGlob("**/vite.config.{js,mjs,ts}"))}

var (
	defaultTableOnce sync.Once
	defaultTable     *Table
)

// DefaultTable returns the built-in candidate table. Declaration order is the
// tie-break priority: frontend, mobile, desktop, then backend.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = MustTable(defaultCandidates()...)
	})
	return defaultTable
}

func defaultCandidates() []Candidate {
	return []Candidate{
		// Frontend meta-frameworks
		{
			ID:       "nextjs",
			Category: CategoryFrontend,
			Base:     "react",
			Marker:   HasManifest("npm:next"),
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:next"), Weight: 60},
				{ID: "config", Predicate: FileGlob("**/next.config.{js,mjs,cjs,ts}"), Weight: 30},
				{ID: "script", Predicate: ManifestValueContains("npm-script:", "next "), Weight: 5},
				{ID: "routes", Predicate: DirExists("app", "src/app", "pages", "src/pages"), Weight: 5},
			},
		},
		{
			ID:       "nuxt",
			Category: CategoryFrontend,
			Base:     "vue",
			Marker:   HasManifest("npm:nuxt", "npm:nuxt3"),
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:nuxt", "npm:nuxt3"), Weight: 60},
				{ID: "config", Predicate: FileGlob("**/nuxt.config.{js,mjs,ts}"), Weight: 30},
				{ID: "script", Predicate: ManifestValueContains("npm-script:", "nuxt"), Weight: 10},
			},
		},
		{
			ID:       "sveltekit",
			Category: CategoryFrontend,
			Base:     "svelte",
			Marker:   HasManifest("npm:@sveltejs/kit"),
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:@sveltejs/kit"), Weight: 60},
				{ID: "config", Predicate: FileGlob("**/svelte.config.{js,mjs,ts}"), Weight: 20},
				{ID: "routes", Predicate: DirExists("src/routes"), Weight: 10},
			},
		},
		{
			ID:       "remix",
			Category: CategoryFrontend,
			Base:     "react",
			Marker:   HasManifestPrefix("npm:@remix-run/"),
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifestPrefix("npm:@remix-run/"), Weight: 60},
				{ID: "config", Predicate: FileGlob("**/remix.config.{js,mjs}"), Weight: 20},
				{ID: "routes", Predicate: DirExists("app/routes"), Weight: 10},
			},
		},
		{
			ID:       "astro",
			Category: CategoryFrontend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:astro"), Weight: 60},
				{ID: "config", Predicate: FileGlob("**/astro.config.{js,mjs,ts}"), Weight: 30},
				{ID: "pages", Predicate: DirExists("src/pages"), Weight: 5},
			},
		},
		{
			ID:       "gatsby",
			Category: CategoryFrontend,
			Base:     "react",
			Marker:   HasManifest("npm:gatsby"),
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:gatsby"), Weight: 60},
				{ID: "config", Predicate: FileGlob("**/gatsby-config.{js,ts}"), Weight: 30},
			},
		},

		// Frontend libraries
		{
			ID:       "react",
			Category: CategoryFrontend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:react"), Weight: 50},
				{ID: "dom", Predicate: HasManifest("npm:react-dom"), Weight: 20},
				{ID: "imports", Predicate: ContentMatches(PatternReactImport), Weight: 20},
				{ID: "jsx-sources", Predicate: FileGlob(jsxGlob), Weight: 10},
			},
			Variants: []Variant{
				viteVariant,
				{ID: "create-react-app", Predicate: HasManifest("npm:react-scripts")},
			},
		},
		{
			ID:       "vue",
			Category: CategoryFrontend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:vue"), Weight: 50},
				{ID: "sfc-sources", Predicate: FileGlob("**/*.vue"), Weight: 30},
				{ID: "config", Predicate: FileGlob("**/vue.config.js"), Weight: 10},
			},
			Variants: []Variant{
				viteVariant,
				{ID: "vue-cli", Predicate: HasManifest("npm:@vue/cli-service")},
			},
		},
		{
			ID:       "svelte",
			Category: CategoryFrontend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:svelte"), Weight: 50},
				{ID: "sources", Predicate: FileGlob("**/*.svelte"), Weight: 30},
			},
		},
		{
			ID:       "angular",
			Category: CategoryFrontend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:@angular/core"), Weight: 60},
				{ID: "workspace", Predicate: FileExists("angular.json"), Weight: 30},
				{ID: "decorators", Predicate: ContentMatches(PatternAngular), Weight: 10},
			},
		},
		{
			ID:       "solid",
			Category: CategoryFrontend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:solid-js"), Weight: 60},
				{ID: "jsx-sources", Predicate: FileGlob(jsxGlob), Weight: 10},
			},
			Variants: []Variant{
				{ID: "solid-start", Predicate: HasManifest("npm:@solidjs/start")},
			},
		},

		// Mobile and multiplatform
		{
			ID:       "compose-multiplatform",
			Category: CategoryMobile,
			Base:     "kotlin-multiplatform",
			Marker:   HasManifest("gradle-plugin:org.jetbrains.compose"),
			Targets:  kmpTargets,
			Rules: []Rule{
				{ID: "multiplatform-plugin", Predicate: HasManifest("gradle-plugin:org.jetbrains.kotlin.multiplatform"), Weight: 30, Required: true},
				{ID: "compose-plugin", Predicate: AnyOf(HasManifest("gradle-plugin:org.jetbrains.compose"), ContentMatches(PatternComposePlugin)), Weight: 40, Required: true},
				{ID: "compose-compiler", Predicate: HasManifest("gradle-plugin:org.jetbrains.kotlin.plugin.compose"), Weight: 10},
				{ID: "compose-dependencies", Predicate: ContentMatches(PatternComposeDeps), Weight: 10},
				{ID: "composables", Predicate: ContentMatches(PatternComposable), Weight: 10},
				{ID: "shared-source-set", Predicate: DirNamed("commonMain"), Weight: 5},
			},
		},
		{
			ID:       "kotlin-multiplatform",
			Category: CategoryMobile,
			Targets:  kmpTargets,
			Rules: []Rule{
				{ID: "multiplatform-plugin", Predicate: HasManifest("gradle-plugin:org.jetbrains.kotlin.multiplatform"), Weight: 40, Required: true},
				{ID: "shared-source-set", Predicate: DirNamed("commonMain"), Weight: 20},
				{ID: "targets", Predicate: ContentMatches(PatternKMPAndroid, PatternKMPIOS, PatternKMPDesktop, PatternKMPJS, PatternKMPWasm), Weight: 20},
			},
		},
		{
			ID:       "flutter",
			Category: CategoryMobile,
			Targets:  flutterTargets,
			Rules: []Rule{
				{ID: "sdk-dependency", Predicate: HasManifest("pub:flutter"), Weight: 60},
				{ID: "pubspec", Predicate: FileExists("pubspec.yaml"), Weight: 20},
				{ID: "imports", Predicate: ContentMatches(PatternFlutterImport), Weight: 20},
			},
		},
		{
			ID:       "expo",
			Category: CategoryMobile,
			Base:     "react-native",
			Marker:   HasManifest("npm:expo"),
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:expo"), Weight: 60},
				{ID: "app-config", Predicate: FileGlob("app.json", "app.config.{js,ts}"), Weight: 10},
				{ID: "router", Predicate: HasManifest("npm:expo-router"), Weight: 10},
			},
		},
		{
			ID:       "react-native",
			Category: CategoryMobile,
			Base:     "react",
			Marker:   HasManifest("npm:react-native"),
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:react-native"), Weight: 60},
				{ID: "imports", Predicate: ContentMatches(PatternReactNative), Weight: 20},
				{ID: "native-projects", Predicate: AllOf(DirExists("android"), DirExists("ios")), Weight: 10},
				{ID: "metro-config", Predicate: FileGlob("metro.config.{js,cjs}"), Weight: 10},
			},
		},
		{
			ID:       "android",
			Category: CategoryMobile,
			Rules: []Rule{
				{ID: "android-plugin", Predicate: HasManifest("gradle-plugin:com.android.application", "gradle-plugin:com.android.library"), Weight: 40, Required: true},
				{ID: "manifest", Predicate: FileGlob("**/AndroidManifest.xml"), Weight: 30},
				{ID: "androidx", Predicate: HasManifestPrefix("maven:androidx."), Weight: 10},
			},
			Variants: []Variant{
				{ID: "jetpack-compose", Predicate: AnyOf(ContentMatches(PatternAndroidxCompose), HasManifest("gradle-plugin:org.jetbrains.kotlin.plugin.compose"))},
				{ID: "views", Predicate: Not(ContentMatches(PatternAndroidxCompose))},
			},
		},
		{
			ID:       "swiftui",
			Category: CategoryMobile,
			Rules: []Rule{
				{ID: "swiftui-import", Predicate: ContentMatches(PatternSwiftUI), Weight: 50, Required: true},
				{ID: "xcode-project", Predicate: DirGlob("**/*.xcodeproj", "**/*.xcworkspace"), Weight: 30},
				{ID: "swift-package", Predicate: FileNamed("Package.swift"), Weight: 10},
			},
		},

		// Desktop
		{
			ID:       "electron",
			Category: CategoryDesktop,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:electron"), Weight: 60},
				{ID: "imports", Predicate: ContentMatches(PatternElectron), Weight: 20},
				{ID: "packager-config", Predicate: FileGlob("electron-builder.{yml,yaml,json}", "forge.config.{js,ts}"), Weight: 20},
			},
		},
		{
			ID:       "tauri",
			Category: CategoryDesktop,
			Rules: []Rule{
				{ID: "js-api", Predicate: HasManifest("npm:@tauri-apps/api", "npm:@tauri-apps/cli"), Weight: 40},
				{ID: "crate", Predicate: HasManifest("cargo:tauri"), Weight: 40},
				{ID: "config", Predicate: FileGlob("**/tauri.conf.json"), Weight: 30},
				{ID: "builder", Predicate: ContentMatches(PatternTauriBuilder), Weight: 10},
			},
		},

		// Backend
		{
			ID:       "nestjs",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:@nestjs/core"), Weight: 60},
				{ID: "cli-config", Predicate: FileExists("nest-cli.json"), Weight: 30},
				{ID: "modules", Predicate: ContentMatches(PatternNestModule), Weight: 10},
			},
		},
		{
			ID:       "express",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:express"), Weight: 50},
				{ID: "app", Predicate: ContentMatches(PatternExpressApp), Weight: 30},
			},
		},
		{
			ID:       "fastify",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("npm:fastify"), Weight: 50},
				{ID: "app", Predicate: ContentMatches(PatternFastifyApp), Weight: 30},
			},
		},
		{
			ID:       "django",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("pypi:django"), Weight: 50},
				{ID: "manage-py", Predicate: FileNamed("manage.py"), Weight: 30},
				{ID: "settings", Predicate: ContentMatches(PatternDjangoSettings), Weight: 20},
			},
			Variants: []Variant{
				{ID: "rest-framework", Predicate: HasManifest("pypi:djangorestframework")},
			},
		},
		{
			ID:       "fastapi",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("pypi:fastapi"), Weight: 50},
				{ID: "app", Predicate: ContentMatches(PatternFastAPIApp), Weight: 30},
				{ID: "server", Predicate: HasManifest("pypi:uvicorn"), Weight: 10},
			},
		},
		{
			ID:       "flask",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("pypi:flask"), Weight: 50},
				{ID: "app", Predicate: ContentMatches(PatternFlaskApp), Weight: 30},
			},
		},
		{
			ID:       "rails",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("gem:rails"), Weight: 50},
				{ID: "config", Predicate: FileExists("config/application.rb", "config/routes.rb"), Weight: 20},
				{ID: "application", Predicate: ContentMatches(PatternRailsApp), Weight: 20},
			},
		},
		{
			ID:       "laravel",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("composer:laravel/framework"), Weight: 60},
				{ID: "artisan", Predicate: FileExists("artisan"), Weight: 30},
				{ID: "illuminate", Predicate: ContentMatches(PatternLaravel), Weight: 10},
			},
		},
		{
			ID:       "spring-boot",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: AnyOf(HasManifestPrefix("maven:org.springframework.boot:"), HasManifest("gradle-plugin:org.springframework.boot")), Weight: 50},
				{ID: "application", Predicate: ContentMatches(PatternSpringBoot), Weight: 30},
				{ID: "config", Predicate: FileGlob("**/application.{properties,yml,yaml}"), Weight: 10},
			},
			Variants: []Variant{
				{ID: "webflux", Predicate: HasManifest("maven:org.springframework.boot:spring-boot-starter-webflux")},
				{ID: "webmvc", Predicate: HasManifest("maven:org.springframework.boot:spring-boot-starter-web")},
			},
		},
		{
			ID:       "ktor",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifestPrefix("maven:io.ktor:"), Weight: 50},
				{ID: "plugin", Predicate: HasManifest("gradle-plugin:io.ktor.plugin"), Weight: 20},
				{ID: "server", Predicate: ContentMatches(PatternKtorServer), Weight: 30},
			},
		},
		{
			ID:       "gin",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("go:github.com/gin-gonic/gin"), Weight: 50},
				{ID: "imports", Predicate: ContentMatches(PatternGinImport), Weight: 30},
			},
		},
		{
			ID:       "echo",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("go:github.com/labstack/echo"), Weight: 50},
				{ID: "imports", Predicate: ContentMatches(PatternEchoImport), Weight: 30},
			},
		},
		{
			ID:       "fiber",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("go:github.com/gofiber/fiber"), Weight: 50},
				{ID: "imports", Predicate: ContentMatches(PatternFiberImport), Weight: 30},
			},
		},
		{
			ID:       "actix-web",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("cargo:actix-web"), Weight: 50},
				{ID: "main", Predicate: ContentMatches(PatternActixMain), Weight: 30},
			},
		},
		{
			ID:       "axum",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("cargo:axum"), Weight: 50},
				{ID: "router", Predicate: ContentMatches(PatternAxumRouter), Weight: 30},
			},
		},
		{
			ID:       "aspnet-core",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "web-sdk", Predicate: AnyOf(HasManifest("dotnet-sdk:Microsoft.NET.Sdk.Web"), HasManifestPrefix("nuget:Microsoft.AspNetCore")), Weight: 50},
				{ID: "builder", Predicate: ContentMatches(PatternAspNetBuilder), Weight: 30},
				{ID: "appsettings", Predicate: FileGlob("**/appsettings.json"), Weight: 10},
			},
		},
		{
			ID:       "phoenix",
			Category: CategoryBackend,
			Rules: []Rule{
				{ID: "dependency", Predicate: HasManifest("hex:phoenix"), Weight: 60},
				{ID: "modules", Predicate: ContentMatches(PatternPhoenix), Weight: 20},
				{ID: "mix-project", Predicate: FileExists("mix.exs"), Weight: 10},
			},
		},
	}
}
