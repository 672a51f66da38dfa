package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Load reads a tuning table. Absolute paths are read as is; other names
// prefer an on-disk copy under prefabs/ so edits apply without rebuilding.
func Load(name string) ([]byte, error) {
	if filepath.IsAbs(name) {
		return os.ReadFile(name)
	}
	return readOverlay(PrefabsFS, cleanPath(name, ""))
}

// LoadScript reads a boss pattern script the same way, from prefabs/scripts/.
func LoadScript(name string) ([]byte, error) {
	if filepath.IsAbs(name) {
		return os.ReadFile(name)
	}
	return readOverlay(ScriptsFS, cleanPath(name, "scripts"))
}

func readOverlay(fsys fs.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(fsys, clean)
}

// cleanPath strips any leading prefabs/ or dir/ and roots the name in dir.
func cleanPath(name, dir string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "prefabs/")
	if dir == "" {
		return s
	}
	s = strings.TrimPrefix(s, dir+"/")
	return path.Join(dir, s)
}
