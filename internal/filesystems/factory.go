package filesystems

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// NewFileSystem creates a filesystem implementation based on the given URI.
// Supported forms:
//   - /path/to/dir or file:///path/to/dir
//   - github://owner/repo[/tree/ref[/subpath]]
//   - git://host/owner/repo[#ref] (git://owner/repo assumes github.com)
//
// The token is only used by the github:// backend.
func NewFileSystem(ctx context.Context, uri, token string) (FileSystem, error) {
	if !strings.Contains(uri, "://") {
		return NewLocalFS(), nil
	}

	parsedURL, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid URI %s: %w", uri, err)
	}

	switch parsedURL.Scheme {
	case "file":
		return NewLocalFS(), nil
	case "github":
		return parseGitHubURL(ctx, parsedURL, token)
	case "git":
		return parseGitURL(ctx, parsedURL)
	default:
		return nil, fmt.Errorf("unsupported scheme: %s", parsedURL.Scheme)
	}
}

func parseGitHubURL(ctx context.Context, u *url.URL, token string) (FileSystem, error) {
	owner := u.Host
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if owner == "" || len(parts) < 1 || parts[0] == "" {
		return nil, fmt.Errorf("invalid GitHub URL format, expected: github://owner/repo[/tree/ref[/path]]")
	}

	repo := parts[0]
	ref, subpath := "", ""
	if len(parts) >= 3 && parts[1] == "tree" {
		ref = parts[2]
		subpath = strings.Join(parts[3:], "/")
	}

	return NewGitHubFS(ctx, owner, repo, ref, subpath, token), nil
}

func parseGitURL(ctx context.Context, u *url.URL) (FileSystem, error) {
	var gitURL string
	switch {
	case u.Host == "":
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid git URL format, expected: git://owner/repo or git://github.com/owner/repo")
		}
		gitURL = fmt.Sprintf("https://github.com/%s/%s", parts[0], parts[1])
	case !strings.Contains(u.Host, ".") && strings.Count(strings.Trim(u.Path, "/"), "/") == 0:
		// git://owner/repo shorthand
		gitURL = fmt.Sprintf("https://github.com/%s/%s", u.Host, strings.Trim(u.Path, "/"))
	default:
		gitURL = fmt.Sprintf("https://%s%s", u.Host, u.Path)
	}

	gitFS, err := NewGitFS(ctx, gitURL, u.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create git filesystem: %w", err)
	}
	return gitFS, nil
}

// BasePath returns the path to scan inside the filesystem built for uri.
func BasePath(uri string) string {
	if !strings.Contains(uri, "://") {
		return uri
	}

	parsedURL, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	switch parsedURL.Scheme {
	case "file":
		return parsedURL.Path
	case "github", "git":
		// remote backends are rooted at the repository (or requested subpath)
		return "."
	default:
		return uri
	}
}

// IsRemote reports whether uri needs a network fetch before scanning.
func IsRemote(uri string) bool {
	return strings.HasPrefix(uri, "github://") || strings.HasPrefix(uri, "git://")
}
