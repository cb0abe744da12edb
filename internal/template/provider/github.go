package provider

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/tacogips/mkapp/internal/debug"
	mkerrors "github.com/tacogips/mkapp/internal/errors"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// GitHubProvider implements Fetcher by downloading repository tarballs.
// Downloads are unauthenticated; catalog templates are public.
type GitHubProvider struct {
	// HTTPClient is the HTTP client for API requests.
	HTTPClient *http.Client
	// APIURL is the base REST endpoint, e.g. https://api.github.com.
	APIURL string
}

// NewGitHubProvider creates a new GitHub provider.
func NewGitHubProvider(apiURL string, timeout time.Duration) *GitHubProvider {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GitHubProvider{
		HTTPClient: &http.Client{Timeout: timeout},
		APIURL:     strings.TrimRight(apiURL, "/"),
	}
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return "github"
}

// Fetch downloads the tarball for source and unpacks it into dest, dropping
// the archive's top-level directory.
func (p *GitHubProvider) Fetch(ctx context.Context, source string, dest string) error {
	src, err := ParseSource(source)
	if err != nil {
		return p.fail(source, NewInvalidSourceError(p.Name(), source, err))
	}

	debug.DebugValue("template source", src.String())

	body, err := p.download(ctx, src)
	if err != nil {
		return p.fail(source, err)
	}
	defer body.Close()

	if err := extractTarball(body, dest); err != nil {
		return p.fail(source, NewInvalidArchiveError(p.Name(), source, err))
	}
	return nil
}

func (p *GitHubProvider) fail(source string, err error) error {
	return mkerrors.NewExternalToolError(fmt.Sprintf("failed to fetch template %s", source), err)
}

// tarballURL builds {api}/repos/{owner}/{repo}/tarball[/{ref}].
func (p *GitHubProvider) tarballURL(src Source) string {
	u := fmt.Sprintf("%s/repos/%s/%s/tarball", p.APIURL, url.PathEscape(src.Owner), url.PathEscape(src.Repo))
	if src.Ref != "" {
		u += "/" + url.PathEscape(src.Ref)
	}
	return u
}

// download returns the archive body. The caller closes it.
func (p *GitHubProvider) download(ctx context.Context, src Source) (io.ReadCloser, error) {
	archiveURL := p.tarballURL(src)
	debug.Debug("[provider] GET %s", archiveURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, NewFetchError(p.Name(), src.String(), err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, NewFetchError(p.Name(), src.String(), err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, NewNotFoundError(p.Name(), src.String())
	case http.StatusUnauthorized, http.StatusForbidden:
		resp.Body.Close()
		return nil, NewAuthError(p.Name(), src.String())
	default:
		resp.Body.Close()
		return nil, NewFetchError(p.Name(), src.String(),
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}
}

// extractTarball unpacks a gzipped tar stream into dest. GitHub archives
// wrap everything in a "owner-repo-sha/" directory which is stripped.
func extractTarball(r io.Reader, dest string) error {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return err
	}

	tr := tar.NewReader(gzr)
	links := symlinkSet{}
	files := 0
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		parts := strings.SplitN(header.Name, "/", 2)
		if len(parts) < 2 || parts[1] == "" {
			// Root directory entry or pax global header.
			continue
		}

		target, err := safeJoin(root, parts[1])
		if err != nil {
			return err
		}
		rel := path.Clean(parts[1])
		if err := links.checkEntry(rel); err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, dirMode(header)); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}
			files++
		case tar.TypeSymlink:
			if err := links.checkLink(rel, header.Linkname); err != nil {
				return err
			}
			if err := writeSymlink(root, target, header.Linkname); err != nil {
				return err
			}
			links[rel] = true
			files++
		default:
			debug.Debug("[provider] skipping %s (type %c)", header.Name, header.Typeflag)
		}
	}

	debug.DebugValue("extracted entries", files)
	return nil
}

// safeJoin joins rel onto root and rejects paths that escape root.
func safeJoin(root, rel string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(rel))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", rel)
	}
	return target, nil
}

// symlinkSet holds the symlinks extracted so far, keyed by slash-separated
// path relative to the destination. The destination starts empty, so these
// are the only links a later entry can traverse.
type symlinkSet map[string]bool

// checkEntry rejects rel when it is, or lies below, an extracted symlink.
func (s symlinkSet) checkEntry(rel string) error {
	parts := strings.Split(rel, "/")
	for i := range parts {
		if s[strings.Join(parts[:i+1], "/")] {
			return fmt.Errorf("archive entry passes through symlink: %s", rel)
		}
	}
	return nil
}

// checkLink walks linkname from the directory holding rel and rejects
// targets that leave the destination or step through an extracted symlink.
func (s symlinkSet) checkLink(rel, linkname string) error {
	if path.IsAbs(linkname) || filepath.IsAbs(linkname) {
		return fmt.Errorf("absolute symlink not allowed: %s -> %s", rel, linkname)
	}

	var cur []string
	if dir := path.Dir(rel); dir != "." {
		cur = strings.Split(dir, "/")
	}
	comps := strings.Split(filepath.ToSlash(linkname), "/")
	for i, c := range comps {
		switch c {
		case "", ".":
			continue
		case "..":
			if len(cur) == 0 {
				return fmt.Errorf("symlink escapes destination: %s -> %s", rel, linkname)
			}
			cur = cur[:len(cur)-1]
		default:
			cur = append(cur, c)
		}
		if i < len(comps)-1 && s[strings.Join(cur, "/")] {
			return fmt.Errorf("symlink passes through symlink: %s -> %s", rel, linkname)
		}
	}
	return nil
}

func dirMode(h *tar.Header) os.FileMode {
	mode := os.FileMode(h.Mode).Perm()
	if mode == 0 {
		return 0755
	}
	return mode | 0700
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if mode == 0 {
		mode = 0644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	return out.Close()
}

// writeSymlink creates a symlink whose resolved target stays inside root.
func writeSymlink(root, target, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("absolute symlink not allowed: %s -> %s", target, linkname)
	}
	resolved := filepath.Join(filepath.Dir(target), filepath.FromSlash(linkname))
	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return fmt.Errorf("symlink escapes destination: %s -> %s", target, linkname)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.Symlink(linkname, target); err != nil {
		return fmt.Errorf("failed to create symlink %s: %w", target, err)
	}
	return nil
}
