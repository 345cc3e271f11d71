package analyzer

import (
	"path"
	"slices"
	"strings"

	"github.com/railwayapp/stackgen/internal/detection"
	"github.com/railwayapp/stackgen/internal/stack"
)

type managerFile struct {
	file    string
	manager string
}

var lockfiles = []managerFile{
	{"pnpm-lock.yaml", stack.ManagerPNPM},
	{"yarn.lock", stack.ManagerYarn},
	{"bun.lockb", stack.ManagerBun},
	{"bun.lock", stack.ManagerBun},
	{"package-lock.json", stack.ManagerNPM},
	{"poetry.lock", stack.ManagerPoetry},
	{"uv.lock", stack.ManagerUV},
	{"Pipfile.lock", stack.ManagerPipenv},
	{"Pipfile", stack.ManagerPipenv},
	{"go.sum", stack.ManagerGo},
	{"Cargo.lock", stack.ManagerCargo},
	{"Gemfile.lock", stack.ManagerBundler},
	{"composer.lock", stack.ManagerComposer},
	{"gradlew", stack.ManagerGradle},
	{"mvnw", stack.ManagerMaven},
	{"pubspec.lock", stack.ManagerPub},
	{"Package.resolved", stack.ManagerSwiftPM},
	{"mix.lock", stack.ManagerMix},
}

// manifests imply their ecosystem default when no lockfile says otherwise
var manifests = []managerFile{
	{"package.json", stack.ManagerNPM},
	{"requirements.txt", stack.ManagerPip},
	{"pyproject.toml", stack.ManagerPip},
	{"go.mod", stack.ManagerGo},
	{"Cargo.toml", stack.ManagerCargo},
	{"Gemfile", stack.ManagerBundler},
	{"composer.json", stack.ManagerComposer},
	{"build.gradle.kts", stack.ManagerGradle},
	{"build.gradle", stack.ManagerGradle},
	{"pom.xml", stack.ManagerMaven},
	{"pubspec.yaml", stack.ManagerPub},
	{"Package.swift", stack.ManagerSwiftPM},
	{"mix.exs", stack.ManagerMix},
}

// PackageManagers lists the package managers a project uses, lockfile
// evidence first.
func PackageManagers(bundle *detection.EvidenceBundle) []string {
	present := make(map[string]bool)
	dotnet := false
	for _, rel := range bundle.Files() {
		present[path.Base(rel)] = true
		if strings.HasSuffix(rel, ".csproj") || strings.HasSuffix(rel, ".sln") {
			dotnet = true
		}
	}

	managers := make([]string, 0)
	covered := make(map[stack.Ecosystem]bool)
	for _, mf := range lockfiles {
		if present[mf.file] && !slices.Contains(managers, mf.manager) {
			managers = append(managers, mf.manager)
			covered[stack.ManagerEcosystem(mf.manager)] = true
		}
	}
	for _, mf := range manifests {
		eco := stack.ManagerEcosystem(mf.manager)
		if present[mf.file] && !covered[eco] {
			managers = append(managers, mf.manager)
			covered[eco] = true
		}
	}
	if dotnet {
		managers = append(managers, stack.ManagerDotNet)
	}
	return managers
}
