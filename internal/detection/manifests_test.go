package detection

import (
	"context"
	"testing"
)

func parse(t *testing.T, p ManifestParser, rel, content string) ManifestFields {
	t.Helper()
	if !p.Matches(rel) {
		t.Fatalf("%s parser does not match %s", p.Name(), rel)
	}
	fields := make(ManifestFields)
	if err := p.Parse(context.Background(), rel, []byte(content), fields); err != nil {
		t.Fatalf("%s: unexpected error: %v", p.Name(), err)
	}
	return fields
}

func expectFields(t *testing.T, fields ManifestFields, want map[string]string) {
	t.Helper()
	for key, value := range want {
		got, ok := fields[key]
		if !ok {
			t.Errorf("missing %s in %v", key, fields)
			continue
		}
		if got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}

func TestPackageJSONParser(t *testing.T) {
	fields := parse(t, &packageJSONParser{}, "package.json", `{
  "name": "web",
  "dependencies": {"react": "^18.2.0"},
  "devDependencies": {"vite": "^5.0.0"},
  "peerDependencies": {"react-dom": "*"},
  "scripts": {"dev": "vite"}
}`)

	expectFields(t, fields, map[string]string{
		"npm:react":        "^18.2.0",
		"npm:vite":         "^5.0.0",
		"npm:react-dom":    "*",
		"npm-script:dev":   "vite",
		"npm-package:name": "web",
	})
}

func TestPythonParsers(t *testing.T) {
	t.Run("requirements", func(t *testing.T) {
		fields := parse(t, &requirementsParser{}, "requirements-dev.txt", `
# web
Django>=4.2,<5 ; python_version >= "3.10"
Flask_Login==0.6.3
-r base.txt
uvicorn[standard]
`)
		expectFields(t, fields, map[string]string{
			"pypi:django":      ">=4.2,<5",
			"pypi:flask-login": "==0.6.3",
			"pypi:uvicorn":     "",
		})
		if _, ok := fields["pypi:-r"]; ok {
			t.Errorf("expected option lines to be skipped")
		}
	})

	t.Run("pyproject", func(t *testing.T) {
		fields := parse(t, &pyprojectParser{}, "pyproject.toml", `
[project]
dependencies = ["fastapi>=0.110", "SQLAlchemy"]

[project.optional-dependencies]
dev = ["pytest"]

[tool.poetry.dependencies]
python = "^3.11"
celery = { version = "^5.3", extras = ["redis"] }
`)
		expectFields(t, fields, map[string]string{
			"pypi:fastapi":    ">=0.110",
			"pypi:sqlalchemy": "",
			"pypi:pytest":     "",
			"pypi:celery":     "^5.3",
		})
		if _, ok := fields["pypi:python"]; ok {
			t.Errorf("expected the python constraint to be skipped")
		}
	})

	t.Run("pipfile", func(t *testing.T) {
		fields := parse(t, &pipfileParser{}, "Pipfile", `
[packages]
flask = "*"

[dev-packages]
black = { version = "==24.1.0" }
`)
		expectFields(t, fields, map[string]string{
			"pypi:flask": "*",
			"pypi:black": "==24.1.0",
		})
	})
}

func TestGoModParser(t *testing.T) {
	fields := parse(t, &goModParser{}, "go.mod", `module example.com/api

go 1.22

require (
	github.com/labstack/echo/v4 v4.11.4
	github.com/rs/zerolog v1.33.0
)
`)
	expectFields(t, fields, map[string]string{
		"go-module:example.com/api":      "",
		"go:github.com/labstack/echo/v4": "v4.11.4",
		"go:github.com/labstack/echo":    "v4.11.4",
		"go:github.com/rs/zerolog":       "v1.33.0",
	})
}

func TestStripVersionSuffix(t *testing.T) {
	tests := map[string]string{
		"github.com/gofiber/fiber/v2": "github.com/gofiber/fiber",
		"github.com/gin-gonic/gin":    "github.com/gin-gonic/gin",
		"example.com/vendor/vx":       "example.com/vendor/vx",
		"example.com/v":               "example.com/v",
	}
	for in, want := range tests {
		if got := stripVersionSuffix(in); got != want {
			t.Errorf("stripVersionSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJVMParsers(t *testing.T) {
	t.Run("gradle", func(t *testing.T) {
		fields := parse(t, &gradleParser{}, "app/build.gradle.kts", `
plugins {
    id("com.android.application")
    kotlin("android")
}
apply plugin: 'kotlin-kapt'

dependencies {
    implementation("androidx.compose.ui:ui:1.6.0")
    testImplementation 'junit:junit:4.13.2'
}
`)
		expectFields(t, fields, map[string]string{
			"gradle-plugin:com.android.application":      "",
			"gradle-plugin:org.jetbrains.kotlin.android": "",
			"gradle-plugin:kotlin-kapt":                  "",
			"maven:androidx.compose.ui:ui":               "1.6.0",
			"maven:junit:junit":                          "4.13.2",
		})
	})

	t.Run("version catalog", func(t *testing.T) {
		fields := make(ManifestFields)
		catalog := `
[libraries]
ktor-server-core = { module = "io.ktor:ktor-server-core", version = "2.3.8" }
logback = "ch.qos.logback:logback-classic:1.4.14"

[plugins]
ktor = { id = "io.ktor.plugin", version = "2.3.8" }
`
		if err := (&versionCatalogParser{}).Parse(context.Background(), "gradle/libs.versions.toml", []byte(catalog), fields); err != nil {
			t.Fatalf("catalog: %v", err)
		}
		build := `
plugins { alias(libs.plugins.ktor) }
dependencies { implementation(libs.ktor.server.core) }
`
		if err := (&gradleParser{}).Parse(context.Background(), "build.gradle.kts", []byte(build), fields); err != nil {
			t.Fatalf("gradle: %v", err)
		}

		expectFields(t, fields, map[string]string{
			"gradle-plugin:io.ktor.plugin":         "",
			"maven:io.ktor:ktor-server-core":       "",
			"maven:ch.qos.logback:logback-classic": "",
		})
	})

	t.Run("pom", func(t *testing.T) {
		fields := parse(t, &pomParser{}, "pom.xml", `<project>
  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>3.2.1</version>
  </parent>
  <dependencies>
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-webflux</artifactId>
    </dependency>
  </dependencies>
</project>`)
		expectFields(t, fields, map[string]string{
			"maven:org.springframework.boot:spring-boot-starter-parent":  "3.2.1",
			"maven:org.springframework.boot:spring-boot-starter-webflux": "",
		})
	})
}

func TestMiscParsers(t *testing.T) {
	t.Run("cargo", func(t *testing.T) {
		fields := parse(t, &cargoParser{}, "Cargo.toml", `
[dependencies]
axum = "0.7"
tokio = { version = "1", features = ["full"] }
`)
		expectFields(t, fields, map[string]string{"cargo:axum": "0.7", "cargo:tokio": "1"})
	})

	t.Run("gemfile", func(t *testing.T) {
		fields := parse(t, &gemfileParser{}, "Gemfile", "source 'https://rubygems.org'\ngem 'rails', '~> 7.1'\ngem \"puma\"\n")
		expectFields(t, fields, map[string]string{"gem:rails": "~> 7.1", "gem:puma": ""})
	})

	t.Run("pubspec", func(t *testing.T) {
		fields := parse(t, &pubspecParser{}, "pubspec.yaml", "name: app\ndependencies:\n  flutter:\n    sdk: flutter\n  http: ^1.2.0\n")
		expectFields(t, fields, map[string]string{"pub:flutter": "sdk:flutter", "pub:http": "^1.2.0"})
	})

	t.Run("csproj", func(t *testing.T) {
		fields := parse(t, &csprojParser{}, "src/Api/Api.csproj", `<Project Sdk="Microsoft.NET.Sdk.Web">
  <ItemGroup>
    <PackageReference Include="Swashbuckle.AspNetCore" Version="6.5.0" />
  </ItemGroup>
</Project>`)
		expectFields(t, fields, map[string]string{
			"dotnet-sdk:Microsoft.NET.Sdk.Web": "",
			"nuget:Swashbuckle.AspNetCore":     "6.5.0",
		})
	})

	t.Run("mix", func(t *testing.T) {
		fields := parse(t, &mixParser{}, "mix.exs", `defmodule App.MixProject do
  defp deps do
    [{:phoenix, "~> 1.7.10"}, {:ecto_sql, "~> 3.10"}]
  end
end`)
		expectFields(t, fields, map[string]string{"hex:phoenix": "~> 1.7.10", "hex:ecto_sql": "~> 3.10"})
	})
}

func TestContainerParsers(t *testing.T) {
	t.Run("dockerfile", func(t *testing.T) {
		fields := parse(t, &dockerfileParser{}, "Dockerfile", `FROM node:20-alpine AS build
WORKDIR /app
FROM build AS runtime
FROM docker.io/library/nginx:1.25
`)
		expectFields(t, fields, map[string]string{
			"docker:image:node":  "20-alpine",
			"docker:image:nginx": "1.25",
		})
		if _, ok := fields["docker:image:build"]; ok {
			t.Errorf("expected stage references to be skipped")
		}
	})

	t.Run("compose", func(t *testing.T) {
		fields := parse(t, &composeParser{}, "docker-compose.yml", `services:
  api:
    image: ghcr.io/acme/api:1.2.0
  db:
    image: postgres:16
`)
		expectFields(t, fields, map[string]string{
			"compose:service:api":            "ghcr.io/acme/api:1.2.0",
			"compose:service:db":             "postgres:16",
			"compose:image:postgres":         "16",
			"compose:image:ghcr.io/acme/api": "1.2.0",
		})
	})

	t.Run("dotenv", func(t *testing.T) {
		fields := parse(t, &dotenvParser{}, ".env.local", "PORT=8080\n# comment\nSECRET_KEY=\"abc\"\n")
		expectFields(t, fields, map[string]string{"env:PORT": "8080", "env:SECRET_KEY": "abc"})
	})
}

func TestImageReference(t *testing.T) {
	tests := []struct {
		ref, repo, tag string
	}{
		{"node:20-alpine", "node", "20-alpine"},
		{"postgres", "postgres", "latest"},
		{"localhost:5000/app", "localhost:5000/app", "latest"},
		{"ghcr.io/acme/api:1.0@sha256:abc", "ghcr.io/acme/api", "1.0"},
		{"docker.io/library/Redis:7", "redis", "7"},
	}
	for _, tt := range tests {
		if got := imageRepository(tt.ref); got != tt.repo {
			t.Errorf("imageRepository(%q) = %q, want %q", tt.ref, got, tt.repo)
		}
		if got := imageTag(tt.ref); got != tt.tag {
			t.Errorf("imageTag(%q) = %q, want %q", tt.ref, got, tt.tag)
		}
	}
}

func TestFirstManifestWins(t *testing.T) {
	fields := make(ManifestFields)
	fields.set("npm:react", "18.3.1")
	fields.set("npm:react", "17.0.2")
	fields.set("", "ignored")

	if fields["npm:react"] != "18.3.1" {
		t.Errorf("expected the first declaration to win, got %q", fields["npm:react"])
	}
	if _, ok := fields[""]; ok {
		t.Errorf("expected empty keys to be dropped")
	}
}
