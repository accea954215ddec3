// Package discovery expands a mix of file and directory arguments
// into a flat, deterministically ordered list of files: directories
// are walked recursively via iafan/cwalk, a concurrent directory
// walker whose output order is not reproducible run to run, so the
// result is always re-sorted with twotwotwo/sorts before being handed
// back. "~" is expanded via mitchellh/go-homedir first.
package discovery

import (
	"os"
	"path/filepath"

	"github.com/iafan/cwalk"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/twotwotwo/sorts"
)

// ExpandPaths resolves each of paths to one or more files: a plain
// file passes through unchanged (after "~" expansion); a directory is
// walked recursively and every regular file under it is included, in
// sorted order.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, errors.Wrapf(err, "expanding %q", p)
		}
		fi, err := os.Stat(expanded)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %q", expanded)
		}
		if !fi.IsDir() {
			out = append(out, expanded)
			continue
		}
		files, err := walkDir(expanded)
		if err != nil {
			return nil, errors.Wrapf(err, "walking %q", expanded)
		}
		out = append(out, files...)
	}
	return out, nil
}

func walkDir(root string) ([]string, error) {
	var files []string
	err := cwalk.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, filepath.Join(root, path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortStrings(files)
	return files, nil
}

// sortStrings wraps twotwotwo/sorts.StringSlice to get a deterministic
// order out of cwalk's concurrent (and therefore unordered) walk.
type stringSlice []string

func (s stringSlice) Len() int           { return len(s) }
func (s stringSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s stringSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s stringSlice) Key(i int) string   { return s[i] }

func sortStrings(files []string) {
	sorts.ByString(stringSlice(files))
}
