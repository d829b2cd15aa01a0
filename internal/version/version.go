// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version provides the version information of otterygen.
package version

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strconv"
)

// Version is the application version per the semantic versioning 2.0.0 spec
// (https://semver.org/).
//
// It may be overridden at build time with:
// '-ldflags "-X github.com/decred/ottery/internal/version.Version=fullsemver"'
//
// It MUST be a full semantic version or the package will panic at runtime.
var Version = "0.1.0-pre"

// semverRE matches a semantic version and captures its major, minor and patch
// numbers followed by the pre-release and build metadata.
var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*` +
	`[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// SemVer is a parsed semantic version.
type SemVer struct {
	Major, Minor, Patch uint
	PreRelease          string
	BuildMetadata       string
}

// Parse parses a semantic version string.
func Parse(s string) (SemVer, error) {
	m := semverRE.FindStringSubmatch(s)
	if m == nil {
		return SemVer{}, fmt.Errorf("malformed version string %q: does not "+
			"conform to semver specification", s)
	}

	var nums [3]uint
	for i, name := range []string{"major", "minor", "patch"} {
		v, err := strconv.ParseUint(m[i+1], 10, 0)
		if err != nil {
			return SemVer{}, fmt.Errorf("malformed semver %s: %w", name, err)
		}
		nums[i] = uint(v)
	}
	return SemVer{
		Major:         nums[0],
		Minor:         nums[1],
		Patch:         nums[2],
		PreRelease:    m[4],
		BuildMetadata: m[5],
	}, nil
}

// parsed is Version after parsing.
var parsed = func() SemVer {
	v, err := Parse(Version)
	if err != nil {
		panic(err)
	}
	return v
}()

// Current returns the parsed application version.
func Current() SemVer {
	return parsed
}

// commitID returns the abbreviated vcs revision the binary was built from,
// if known.
func commitID() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var vcs, revision string
	for _, bs := range bi.Settings {
		switch bs.Key {
		case "vcs":
			vcs = bs.Value
		case "vcs.revision":
			revision = bs.Value
		}
	}
	if vcs == "git" && len(revision) > 9 {
		revision = revision[:9]
	}
	return revision
}

// String returns the application version.  Builds from a vcs checkout
// without build metadata carry the commit as build metadata.
func String() string {
	return withCommit(Version, parsed.BuildMetadata, commitID())
}

func withCommit(version, build, commit string) string {
	if build != "" || commit == "" {
		return version
	}
	return version + "+" + commit
}
