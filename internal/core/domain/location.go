package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// SupportedSchemes is the closed set of recognized location schemes.
// New backends register their scheme here and in the connector registry.
var SupportedSchemes = []string{
	"s3",
	"s3a",
	"abfs",
	"az",
	"gs",
	"gcs",
	"box",
	"dropbox",
}

// Location is the decomposed form of a scheme-qualified location string.
// It is derived once from the raw string and immutable thereafter.
type Location struct {
	// Protocol is the scheme, one of SupportedSchemes.
	Protocol string

	// Raw preserves the original input for diagnostics. Directory and File
	// alone cannot always be concatenated back losslessly (the empty-root
	// sentinel case).
	Raw string

	// PathWithoutProtocol is everything after "scheme://".
	PathWithoutProtocol string

	// Directory is the bucket/container segment. The single-space sentinel
	// " " denotes the whole store for backends whose root is empty (dropbox).
	Directory string

	// File is the path below the directory, empty for root locations.
	File string
}

var (
	// dropbox root is an empty string
	emptyRootRE = regexp.MustCompile(`^(\s)/$`)

	// just a bucket/container with no trailing path
	rootOnlyRE = regexp.MustCompile(`^([^/\s]+?)/*$`)

	// bucket/container plus a dir and/or file path
	generalRE = regexp.MustCompile(`^([^/\s]+?)/([^\s]*)$`)
)

// Resolve decomposes a scheme-qualified location string.
// Returns ErrInvalidLocation when the string does not match scheme://...
// or the scheme is not recognized.
func Resolve(raw string) (Location, error) {
	protocol, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Location{}, fmt.Errorf("%w: %q, expected <scheme>://<dir-path>/<file-or-dir-path>", ErrInvalidLocation, raw)
	}
	if !SchemeSupported(protocol) {
		return Location{}, fmt.Errorf("%w: scheme %q not supported, only %v are supported",
			ErrInvalidLocation, protocol, SupportedSchemes)
	}

	loc := Location{
		Protocol:            protocol,
		Raw:                 raw,
		PathWithoutProtocol: rest,
	}

	if m := emptyRootRE.FindStringSubmatch(rest); m != nil && protocol == "dropbox" {
		loc.Directory = m[1]
		loc.File = ""
		return loc, nil
	}

	if m := rootOnlyRE.FindStringSubmatch(rest); m != nil {
		loc.Directory = m[1]
		loc.File = ""
		return loc, nil
	}

	if m := generalRE.FindStringSubmatch(rest); m != nil {
		loc.Directory = m[1]
		loc.File = m[2]
		return loc, nil
	}

	return Location{}, fmt.Errorf("%w: %q, expected <scheme>://<dir-path>/<file-or-dir-path>", ErrInvalidLocation, raw)
}

// SchemeSupported reports whether scheme is in the recognized set.
func SchemeSupported(scheme string) bool {
	for _, s := range SupportedSchemes {
		if s == scheme {
			return true
		}
	}
	return false
}

// DownloadPath maps a remote reference to its local download path.
// The remote's nesting below directory is mirrored under downloadRoot so
// same-named files in different remote subdirectories never collide.
func DownloadPath(downloadRoot, directory, remoteRef string) string {
	rel := strings.TrimPrefix(remoteRef, directory+"/")
	return filepath.Join(downloadRoot, filepath.FromSlash(rel))
}

// OutputPath maps a remote reference to the local path of its processed
// artifact: the same relative suffix as DownloadPath with ".json" appended,
// rooted at outputRoot.
func OutputPath(outputRoot, directory, remoteRef string) string {
	rel := strings.TrimPrefix(remoteRef, directory+"/")
	return filepath.Join(outputRoot, filepath.FromSlash(rel)+".json")
}

// RemoteTarget maps a local output path back to a destination store path:
// the path relative to outputRoot joined onto destRoot. destRoot is treated
// as a directory whether or not it ends with a separator; the result never
// contains doubled separators.
func RemoteTarget(destRoot, outputRoot, outputPath string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(outputPath), filepath.ToSlash(outputRoot))
	rel = strings.TrimPrefix(rel, "/")
	return strings.TrimSuffix(destRoot, "/") + "/" + rel
}
