package stack

// CommandSet is the validation commands an assistant should run for a stack.
// Empty entries have no sensible default.
type CommandSet struct {
	Install string `json:"install,omitempty" yaml:"install,omitempty"`
	Dev     string `json:"dev,omitempty" yaml:"dev,omitempty"`
	Build   string `json:"build,omitempty" yaml:"build,omitempty"`
	Test    string `json:"test,omitempty" yaml:"test,omitempty"`
	Lint    string `json:"lint,omitempty" yaml:"lint,omitempty"`
}

// Package managers recognised by the analyzer.
const (
	ManagerNPM      = "npm"
	ManagerYarn     = "yarn"
	ManagerPNPM     = "pnpm"
	ManagerBun      = "bun"
	ManagerPip      = "pip"
	ManagerPoetry   = "poetry"
	ManagerUV       = "uv"
	ManagerPipenv   = "pipenv"
	ManagerGo       = "go"
	ManagerCargo    = "cargo"
	ManagerBundler  = "bundler"
	ManagerComposer = "composer"
	ManagerGradle   = "gradle"
	ManagerMaven    = "maven"
	ManagerPub      = "pub"
	ManagerSwiftPM  = "swiftpm"
	ManagerDotNet   = "dotnet"
	ManagerMix      = "mix"
)

var managerEcosystems = map[string]Ecosystem{
	ManagerNPM:      EcosystemNode,
	ManagerYarn:     EcosystemNode,
	ManagerPNPM:     EcosystemNode,
	ManagerBun:      EcosystemNode,
	ManagerPip:      EcosystemPython,
	ManagerPoetry:   EcosystemPython,
	ManagerUV:       EcosystemPython,
	ManagerPipenv:   EcosystemPython,
	ManagerGo:       EcosystemGo,
	ManagerCargo:    EcosystemRust,
	ManagerBundler:  EcosystemRuby,
	ManagerComposer: EcosystemPHP,
	ManagerGradle:   EcosystemJVM,
	ManagerMaven:    EcosystemJVM,
	ManagerPub:      EcosystemDart,
	ManagerSwiftPM:  EcosystemSwift,
	ManagerDotNet:   EcosystemDotNet,
	ManagerMix:      EcosystemElixir,
}

var defaultManagers = map[Ecosystem]string{
	EcosystemNode:   ManagerNPM,
	EcosystemPython: ManagerPip,
	EcosystemGo:     ManagerGo,
	EcosystemRust:   ManagerCargo,
	EcosystemRuby:   ManagerBundler,
	EcosystemPHP:    ManagerComposer,
	EcosystemJVM:    ManagerGradle,
	EcosystemDart:   ManagerPub,
	EcosystemSwift:  ManagerSwiftPM,
	EcosystemDotNet: ManagerDotNet,
	EcosystemElixir: ManagerMix,
}

// ManagerEcosystem returns the ecosystem a package manager serves, or "".
func ManagerEcosystem(manager string) Ecosystem {
	return managerEcosystems[manager]
}

// ManagerFor picks the package manager for framework out of the detected
// ones, falling back to the ecosystem default.
func ManagerFor(framework string, detected []string) string {
	eco := EcosystemOf(framework)
	if eco == "" {
		if len(detected) > 0 {
			return detected[0]
		}
		return ""
	}
	for _, m := range detected {
		if managerEcosystems[m] == eco {
			return m
		}
	}
	return defaultManagers[eco]
}

// Commands returns the validation commands for a framework built with
// packageManager. An empty packageManager uses the ecosystem default.
func Commands(framework, packageManager string) CommandSet {
	eco := EcosystemOf(framework)
	if packageManager == "" || managerEcosystems[packageManager] != eco {
		packageManager = defaultManagers[eco]
	}

	switch eco {
	case EcosystemNode:
		return nodeCommands(framework, packageManager)
	case EcosystemPython:
		return pythonCommands(framework, packageManager)
	case EcosystemGo:
		return CommandSet{
			Install: "go mod download",
			Dev:     "go run .",
			Build:   "go build ./...",
			Test:    "go test ./...",
			Lint:    "go vet ./...",
		}
	case EcosystemRust:
		cs := CommandSet{
			Install: "cargo fetch",
			Dev:     "cargo run",
			Build:   "cargo build --release",
			Test:    "cargo test",
			Lint:    "cargo clippy -- -D warnings",
		}
		if framework == "tauri" {
			cs.Dev = "cargo tauri dev"
			cs.Build = "cargo tauri build"
		}
		return cs
	case EcosystemRuby:
		return CommandSet{
			Install: "bundle install",
			Dev:     "bin/rails server",
			Build:   "bin/rails assets:precompile",
			Test:    "bin/rails test",
			Lint:    "bundle exec rubocop",
		}
	case EcosystemPHP:
		return CommandSet{
			Install: "composer install",
			Dev:     "php artisan serve",
			Test:    "php artisan test",
			Lint:    "./vendor/bin/pint --test",
		}
	case EcosystemJVM:
		return jvmCommands(framework, packageManager)
	case EcosystemDart:
		return CommandSet{
			Install: "flutter pub get",
			Dev:     "flutter run",
			Build:   "flutter build apk",
			Test:    "flutter test",
			Lint:    "flutter analyze",
		}
	case EcosystemSwift:
		return CommandSet{
			Build: "xcodebuild build",
			Test:  "xcodebuild test",
			Lint:  "swiftlint",
		}
	case EcosystemDotNet:
		return CommandSet{
			Install: "dotnet restore",
			Dev:     "dotnet watch run",
			Build:   "dotnet build",
			Test:    "dotnet test",
			Lint:    "dotnet format --verify-no-changes",
		}
	case EcosystemElixir:
		return CommandSet{
			Install: "mix deps.get",
			Dev:     "mix phx.server",
			Build:   "mix compile",
			Test:    "mix test",
			Lint:    "mix format --check-formatted",
		}
	}
	return CommandSet{}
}

func nodeCommands(framework, manager string) CommandSet {
	run := manager + " run"
	switch manager {
	case ManagerYarn, ManagerPNPM:
		run = manager
	}

	cs := CommandSet{
		Install: manager + " install",
		Dev:     run + " dev",
		Build:   run + " build",
		Test:    run + " test",
		Lint:    run + " lint",
	}
	switch framework {
	case "expo":
		cs.Dev = "npx expo start"
		cs.Build = "npx expo export"
	case "react-native":
		cs.Dev = run + " start"
		cs.Build = ""
	case "nestjs", "express", "fastify", "electron":
		cs.Dev = run + " start"
	}
	return cs
}

func pythonCommands(framework, manager string) CommandSet {
	var prefix, install string
	switch manager {
	case ManagerPoetry:
		prefix, install = "poetry run ", "poetry install"
	case ManagerUV:
		prefix, install = "uv run ", "uv sync"
	case ManagerPipenv:
		prefix, install = "pipenv run ", "pipenv install --dev"
	default:
		install = "pip install -r requirements.txt"
	}

	cs := CommandSet{
		Install: install,
		Test:    prefix + "pytest",
		Lint:    prefix + "ruff check .",
	}
	switch framework {
	case "django":
		cs.Dev = prefix + "python manage.py runserver"
		cs.Test = prefix + "python manage.py test"
	case "fastapi":
		cs.Dev = prefix + "uvicorn main:app --reload"
	case "flask":
		cs.Dev = prefix + "flask run --debug"
	}
	return cs
}

func jvmCommands(framework, manager string) CommandSet {
	if manager == ManagerMaven {
		cs := CommandSet{
			Install: "./mvnw dependency:resolve",
			Build:   "./mvnw package",
			Test:    "./mvnw test",
			Lint:    "./mvnw verify",
		}
		if framework == "spring-boot" {
			cs.Dev = "./mvnw spring-boot:run"
		}
		return cs
	}

	cs := CommandSet{
		Build: "./gradlew build",
		Test:  "./gradlew test",
		Lint:  "./gradlew check",
	}
	switch framework {
	case "spring-boot":
		cs.Dev = "./gradlew bootRun"
	case "ktor", "compose-multiplatform":
		cs.Dev = "./gradlew run"
	case "android":
		cs.Dev = "./gradlew installDebug"
		cs.Build = "./gradlew assembleDebug"
		cs.Lint = "./gradlew lint"
	case "kotlin-multiplatform":
		cs.Test = "./gradlew allTests"
	}
	return cs
}
