package detection

import (
	"bytes"
	"context"
	"path"
	"sort"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	composetypes "github.com/compose-spec/compose-go/v2/types"
	"github.com/joho/godotenv"
	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// imageRepository reduces an image reference to its repository, dropping the
// tag, digest and the implicit docker.io/library prefix.
func imageRepository(ref string) string {
	ref, _, _ = strings.Cut(ref, "@")
	if i := strings.LastIndex(ref, ":"); i > strings.LastIndex(ref, "/") {
		ref = ref[:i]
	}
	ref = strings.TrimPrefix(ref, "docker.io/")
	ref = strings.TrimPrefix(ref, "library/")
	return strings.ToLower(ref)
}

func imageTag(ref string) string {
	ref, _, _ = strings.Cut(ref, "@")
	if i := strings.LastIndex(ref, ":"); i > strings.LastIndex(ref, "/") {
		return ref[i+1:]
	}
	return "latest"
}

type dockerfileParser struct{}

func (p *dockerfileParser) Name() string { return "Dockerfile" }

func (p *dockerfileParser) Matches(rel string) bool {
	base := path.Base(rel)
	return base == "Dockerfile" || strings.HasPrefix(base, "Dockerfile.") || strings.HasSuffix(base, ".dockerfile")
}

func (p *dockerfileParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	result, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return err
	}

	stages := make(map[string]bool)
	for _, node := range result.AST.Children {
		switch strings.ToLower(node.Value) {
		case "from":
			if node.Next == nil {
				continue
			}
			image := node.Next.Value
			if as := node.Next.Next; as != nil && strings.EqualFold(as.Value, "as") && as.Next != nil {
				stages[strings.ToLower(as.Next.Value)] = true
			}
			if stages[strings.ToLower(image)] || strings.Contains(image, "$") || image == "scratch" {
				continue
			}
			fields.set("docker:image:"+imageRepository(image), imageTag(image))
		case "env":
			for _, kv := range dockerEnvPairs(node) {
				fields.set("env:"+kv[0], kv[1])
			}
		}
	}
	return nil
}

// dockerEnvPairs reads both "ENV a=b c=d" and legacy "ENV key value" forms.
// The parser yields key, value, key, value ... for either.
func dockerEnvPairs(node *parser.Node) [][2]string {
	var args []string
	for n := node.Next; n != nil; n = n.Next {
		args = append(args, n.Value)
	}

	var pairs [][2]string
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, [2]string{args[i], args[i+1]})
	}
	return pairs
}

type composeParser struct{}

func (p *composeParser) Name() string { return "docker-compose" }

func (p *composeParser) Matches(rel string) bool {
	return baseNameMatcher{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"}.match(rel)
}

func (p *composeParser) Parse(ctx context.Context, rel string, content []byte, fields ManifestFields) error {
	details := composetypes.ConfigDetails{
		WorkingDir: path.Dir(rel),
		ConfigFiles: []composetypes.ConfigFile{
			{Filename: rel, Content: content},
		},
		Environment: composetypes.Mapping{},
	}

	project, err := loader.LoadWithContext(ctx, details, func(options *loader.Options) {
		options.SetProjectName("stackgen", true)
		options.SkipValidation = true
		options.SkipInterpolation = true
		options.SkipConsistencyCheck = true
		options.SkipInclude = true
		options.ResolvePaths = false
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(project.Services))
	for name := range project.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		service := project.Services[name]
		fields.set("compose:service:"+name, service.Image)
		if service.Image != "" {
			fields.set("compose:image:"+imageRepository(service.Image), imageTag(service.Image))
		}
		for key, value := range service.Environment {
			v := ""
			if value != nil {
				v = *value
			}
			fields.set("env:"+key, v)
		}
	}
	return nil
}

type dotenvParser struct{}

func (p *dotenvParser) Name() string { return "dotenv" }

func (p *dotenvParser) Matches(rel string) bool {
	return strings.HasPrefix(path.Base(rel), ".env")
}

func (p *dotenvParser) Parse(_ context.Context, _ string, content []byte, fields ManifestFields) error {
	env, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return err
	}
	for key, value := range env {
		fields.set("env:"+key, value)
	}
	return nil
}
