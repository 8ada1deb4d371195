package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FindNewestWithPrefix returns the path of the most recently modified entry in
// dir whose name starts with prefix, or "" if nothing matches. Entries are
// compared with os.Stat, so symlinks resolve to their targets. A later entry
// only wins on a strictly newer mtime.
func FindNewestWithPrefix(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = path
			newestMod = info.ModTime()
		}
	}
	return newest, nil
}

// ListWithPrefix returns every entry in dir whose name starts with prefix,
// newest first.
func ListWithPrefix(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	type match struct {
		path string
		mod  time.Time
	}
	matches := []match{}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match{path: path, mod: info.ModTime()})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].mod.After(matches[j].mod)
	})
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.path)
	}
	return out, nil
}
