package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk prefab directory. Files found there shadow the embedded
// copies so edits can be picked up without a rebuild.
var Dir = "prefabs"

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Names lists the embedded prefab file names.
func Names() []string {
	entries, err := fs.ReadDir(PrefabsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isSpecFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Clean normalizes a template reference: the prefabs/ prefix is dropped and a
// missing extension becomes .yaml.
func Clean(name string) string {
	return cleanPrefabPath(name)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "prefabs/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
