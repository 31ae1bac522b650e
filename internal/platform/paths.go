package platform

import (
	"os"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin    = "darwin"
	OSWindows   = "windows"
	OSLinux     = "linux"
	OSFreeBSD   = "freebsd"
	OSOpenBSD   = "openbsd"
	OSNetBSD    = "netbsd"
	OSDragonfly = "dragonfly"
)

// Environment variables consulted by ResolveDownloadDir
const (
	EnvUserProfile    = "USERPROFILE"
	EnvXDGDownloadDir = "XDG_DOWNLOAD_DIR"
	EnvHome           = "HOME"
)

// DownloadsDirName is appended to the home directory
const DownloadsDirName = "Downloads"

// Path separators
const (
	WindowsSeparator = `\`
	UnixSeparator    = "/"
)

// Env is the platform and environment the resolver reads from
type Env struct {
	GOOS   string
	Lookup func(name string) (string, bool)
}

// SystemEnv returns the environment of the running process
func SystemEnv() Env {
	return Env{GOOS: runtime.GOOS, Lookup: os.LookupEnv}
}

// MapEnv returns an Env backed by a fixed set of variables
func MapEnv(goos string, vars map[string]string) Env {
	return Env{
		GOOS: goos,
		Lookup: func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		},
	}
}

// lookup returns a variable as set, including an empty value
func (e Env) lookup(name string) (string, bool) {
	if e.Lookup == nil {
		return "", false
	}
	return e.Lookup(name)
}

// get returns a non-empty variable
func (e Env) get(name string) (string, bool) {
	v, ok := e.lookup(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// IsUnixFamily reports whether goos resolves downloads via XDG_DOWNLOAD_DIR and HOME
func IsUnixFamily(goos string) bool {
	switch goos {
	case OSLinux, OSFreeBSD, OSOpenBSD, OSNetBSD, OSDragonfly, OSDarwin:
		return true
	default:
		return false
	}
}

// ResolveDownloadDir returns the default downloads directory for env.
// XDG_DOWNLOAD_DIR is returned verbatim whenever it is set. An empty HOME or
// USERPROFILE counts as unset so no root-level Downloads path is produced.
// It never touches the filesystem; a missing directory is reported later by yt-dlp.
func ResolveDownloadDir(env Env) (string, bool) {
	switch {
	case env.GOOS == OSWindows:
		profile, ok := env.get(EnvUserProfile)
		if !ok {
			return "", false
		}
		return JoinPath(env.GOOS, profile, DownloadsDirName), true

	case IsUnixFamily(env.GOOS):
		if dir, ok := env.lookup(EnvXDGDownloadDir); ok {
			return dir, true
		}
		home, ok := env.get(EnvHome)
		if !ok {
			return "", false
		}
		return JoinPath(env.GOOS, home, DownloadsDirName), true

	default:
		return "", false
	}
}

// Separator returns the path separator used on goos
func Separator(goos string) string {
	if goos == OSWindows {
		return WindowsSeparator
	}
	return UnixSeparator
}

// JoinPath appends elem to dir using the separator of goos rather than the host's.
// dir is otherwise kept as given.
func JoinPath(goos, dir, elem string) string {
	if dir == "" {
		return elem
	}
	sep := Separator(goos)
	if strings.HasSuffix(dir, sep) || (goos == OSWindows && strings.HasSuffix(dir, UnixSeparator)) {
		return dir + elem
	}
	return dir + sep + elem
}
