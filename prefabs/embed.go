package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed *.yaml levels/*.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

var (
	dirMu   sync.RWMutex
	diskDir = "prefabs"
)

// SetDir points disk overrides at dir. Files found there shadow the embedded
// copies, which is what hot reload edits.
func SetDir(dir string) {
	dirMu.Lock()
	defer dirMu.Unlock()
	diskDir = dir
}

// Dir returns the disk override directory.
func Dir() string {
	dirMu.RLock()
	defer dirMu.RUnlock()
	return diskDir
}

// Load reads an actor or level file by its path under the prefab root.
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, relPath(name, "", ""))
}

// LoadScript reads a tengo script. The scripts/ prefix and the .tengo
// extension are optional.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, relPath(name, "scripts", ".tengo"))
}

func read(fsys embed.FS, rel string) ([]byte, error) {
	if rel == "" {
		return nil, fmt.Errorf("prefabs: empty path: %w", os.ErrNotExist)
	}
	if data, err := os.ReadFile(filepath.Join(Dir(), filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return fsys.ReadFile(rel)
}

// relPath normalizes name to a slash path under sub, dropping a leading
// prefabs/ and adding ext when it is missing.
func relPath(name, sub, ext string) string {
	if name == "" {
		return ""
	}
	s := strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
	if sub != "" {
		s = sub + "/" + strings.TrimPrefix(s, sub+"/")
	}
	if ext != "" && !strings.HasSuffix(s, ext) {
		s += ext
	}
	return s
}
