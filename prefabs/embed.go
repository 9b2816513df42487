package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed scripts/weather/*.tengo
var ScriptsFS embed.FS

// LoadScript returns a weather script by name. A disk copy under
// prefabs/scripts/weather wins over the embedded one.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ScriptNames lists weather scripts by base name, without extension. Scripts
// dropped into prefabs/scripts/weather on disk are listed alongside the
// embedded ones.
func ScriptNames() []string {
	seen := make(map[string]struct{})
	if entries, err := fs.ReadDir(ScriptsFS, "scripts/weather"); err == nil {
		addScriptNames(seen, entries)
	}
	if entries, err := os.ReadDir(filepath.Join("prefabs", "scripts", "weather")); err == nil {
		addScriptNames(seen, entries)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addScriptNames(seen map[string]struct{}, entries []fs.DirEntry) {
	for _, entry := range entries {
		if entry.IsDir() || !isScriptFile(entry.Name()) {
			continue
		}
		seen[strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))] = struct{}{}
	}
}

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed schemas/*.json
var SchemasFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	for _, prefix := range []string{"prefabs/", "scripts/", "weather/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
		}
	}

	if filepath.Ext(s) == "" {
		s += ".tengo"
	}

	return fmt.Sprintf("scripts/weather/%s", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
