// Package static maps request paths onto files under a root directory. Paths are
// canonicalized the same way realpath does, so neither dot segments nor symlinks
// can lead outside the root.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/bare-web/bare/config"
	"github.com/bare-web/bare/http"
	"github.com/bare-web/bare/http/mime"
	"github.com/bare-web/bare/http/status"
	"github.com/bare-web/bare/internal/strutil"
	"github.com/bare-web/bare/internal/urlencoded"
)

// TimeFormat is the IMF-fixdate layout of the Last-Modified header.
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

const index = "index.html"

type Logger interface {
	Printf(format string, v ...any)
}

// Descriptor describes a resolved file. It's computed anew on every request.
type Descriptor struct {
	// Path is the canonical absolute path of the file.
	Path         string
	MIME         mime.MIME
	Size         int64
	ETag         string
	LastModified string
}

type Resolver struct {
	prefix       string
	root         string
	cacheControl string
	logger       Logger
}

// New returns a resolver serving cfg.Root under cfg.Prefix. The root is canonicalized
// once, here.
func New(cfg config.Static, logger Logger) *Resolver {
	root, err := filepath.Abs(cfg.Root)
	if err == nil {
		root, err = canonicalize(root)
	}

	if err != nil {
		logger.Printf("static: canonicalize root %s: %s", cfg.Root, err)
		root = filepath.Clean(cfg.Root)
	}

	return &Resolver{
		prefix:       cfg.Prefix,
		root:         root,
		cacheControl: cfg.CacheControl,
		logger:       logger,
	}
}

// Prefix returns the request path prefix the resolver serves.
func (r *Resolver) Prefix() string {
	return r.prefix
}

// Root returns the canonical root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Match tells whether the path belongs to the resolver's namespace.
func (r *Resolver) Match(path string) bool {
	return strings.HasPrefix(path, r.prefix)
}

// Resolve responds with the requested file. When If-None-Match equals the file's ETag, a
// bodiless 304 Not Modified is returned. Failures are returned as HTML error pages.
func (r *Resolver) Resolve(request *http.Request) *http.Response {
	desc, err := r.Describe(request.Path)
	if err != nil {
		if status.CodeOf(err) == status.InternalServerError {
			r.logger.Printf("%s: static %s: %s", request.ID, request.Path, err)
		}

		return http.Error(request, err)
	}

	if match, found := request.Headers.Get("If-None-Match"); found && strutil.StripWS(match) == desc.ETag {
		return request.Respond().
			Code(status.NotModified).
			Header("ETag", desc.ETag).
			Header("Last-Modified", desc.LastModified).
			Header("Cache-Control", r.cacheControl)
	}

	file, err := os.Open(desc.Path)
	if err != nil {
		r.logger.Printf("%s: static %s: %s", request.ID, request.Path, err)
		return http.Error(request, status.ErrInternalServerError)
	}

	return request.Respond().
		ContentType(desc.MIME).
		Header("ETag", desc.ETag).
		Header("Last-Modified", desc.LastModified).
		Header("Cache-Control", r.cacheControl).
		Header("X-Content-Type-Options", "nosniff").
		Attachment(file, desc.Size)
}

// Describe resolves the request path into a file descriptor. Returned errors carry
// the status code to respond with.
func (r *Resolver) Describe(path string) (Descriptor, error) {
	relative, found := strings.CutPrefix(path, r.prefix)
	if !found {
		return Descriptor{}, status.ErrNotFound
	}

	relative, err := urlencoded.DecodeString(relative)
	if err != nil {
		return Descriptor{}, err
	}

	if strings.IndexByte(relative, 0) != -1 {
		return Descriptor{}, status.ErrNullByte
	}

	target, err := r.contain(filepath.Join(r.root, filepath.FromSlash(relative)))
	if err != nil {
		return Descriptor{}, err
	}

	info, err := os.Stat(target)
	if err != nil {
		return Descriptor{}, statError(err)
	}

	if info.IsDir() {
		target, err = r.contain(filepath.Join(target, index))
		if err != nil {
			return Descriptor{}, err
		}

		info, err = os.Stat(target)
		if err != nil {
			if notExist(err) {
				// no directory listings
				return Descriptor{}, status.ErrForbidden
			}

			return Descriptor{}, statError(err)
		}
	}

	if !info.Mode().IsRegular() {
		return Descriptor{}, status.ErrNotFound
	}

	return Descriptor{
		Path:         target,
		MIME:         mime.Guess(target),
		Size:         info.Size(),
		ETag:         ETag(target, info),
		LastModified: info.ModTime().UTC().Format(TimeFormat),
	}, nil
}

// contain canonicalizes the path and makes sure it doesn't escape the root.
func (r *Resolver) contain(path string) (string, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", status.ErrTraversal, err)
	}

	if !within(r.root, canonical) {
		return "", status.ErrTraversal
	}

	return canonical, nil
}

// ETag returns the validator in the "<inode>-<size>-<mtime>" form, where mtime is in
// seconds.
func ETag(path string, info fs.FileInfo) string {
	etag := make([]byte, 0, 48)
	etag = append(etag, '"')
	etag = strconv.AppendUint(etag, identity(path, info), 10)
	etag = append(etag, '-')
	etag = strconv.AppendInt(etag, info.Size(), 10)
	etag = append(etag, '-')
	etag = strconv.AppendInt(etag, info.ModTime().Unix(), 10)

	return string(append(etag, '"'))
}

// canonicalize resolves symlinks of the deepest existing ancestor and appends the
// remaining components lexically. The path must be absolute.
func canonicalize(path string) (string, error) {
	existing := filepath.Clean(path)
	var rest []string

	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			for i := len(rest) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, rest[i])
			}

			return resolved, nil
		}

		if !notExist(err) {
			return "", err
		}

		parent := filepath.Dir(existing)
		if parent == existing {
			return filepath.Clean(path), nil
		}

		rest = append(rest, filepath.Base(existing))
		existing = parent
	}
}

func within(root, path string) bool {
	if path == root {
		return true
	}

	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}

	return strings.HasPrefix(path, root)
}

func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func statError(err error) error {
	if notExist(err) {
		return status.ErrNotFound
	}

	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", status.ErrForbidden, err)
	}

	return fmt.Errorf("%w: %v", status.ErrInternalServerError, err)
}
