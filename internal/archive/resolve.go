// This file locates entries inside foreign containers. Archives re-zipped
// by hand tend to arrive with a wrapping folder, backslash separators, or
// case-mangled names, so lookups degrade gracefully from exact match to a
// normalized suffix match and, for attachments only, a bare basename match.
package archive

import (
	"archive/zip"
	"strings"
)

// normalizePath lowercases a container path and folds backslashes into
// forward slashes.
func normalizePath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
}

// resolveEntry finds want inside the container: exact name first, then a
// normalized match on the full path or any nested suffix. With basename set,
// a final pass matches on the file name alone.
func resolveEntry(files []*zip.File, want string, basename bool) *zip.File {
	for _, f := range files {
		if f.Name == want {
			return f
		}
	}

	norm := normalizePath(want)
	for _, f := range files {
		name := normalizePath(f.Name)
		if name == norm || strings.HasSuffix(name, "/"+norm) {
			return f
		}
	}

	if basename {
		base := norm
		if i := strings.LastIndex(base, "/"); i >= 0 {
			base = base[i+1:]
		}
		for _, f := range files {
			name := normalizePath(f.Name)
			if j := strings.LastIndex(name, "/"); j >= 0 {
				name = name[j+1:]
			}
			if name == base {
				return f
			}
		}
	}

	return nil
}

// resolveAttachment locates a photo entry, allowing a basename fallback: a
// photo keeps its catch id in the name, so a bare-name match is still
// unambiguous.
func resolveAttachment(files []*zip.File, want string) *zip.File {
	return resolveEntry(files, want, true)
}

// resolveManifest locates a manifest entry. No basename fallback here;
// matching a stray riverlog.json from some nested unrelated folder would
// import the wrong data.
func resolveManifest(files []*zip.File, want string) *zip.File {
	return resolveEntry(files, want, false)
}

// entryNames lists container entry names for error diagnostics.
func entryNames(files []*zip.File) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}
