package persistence

import (
	"os"
	"path/filepath"
	"strings"
)

// DirAssetSource reads button icons from a directory of SVG files.
type DirAssetSource struct {
	iconsDir string
}

func NewDirAssetSource(iconsDir string) *DirAssetSource {
	return &DirAssetSource{iconsDir: iconsDir}
}

// ButtonIcons maps each icon's base name to its SVG markup, so the view can
// inline them and colour them with CSS.
func (s *DirAssetSource) ButtonIcons() (map[string]string, error) {
	icons := make(map[string]string)
	if s.iconsDir == "" {
		return icons, nil
	}
	paths, err := filepath.Glob(filepath.Join(s.iconsDir, "*.svg"))
	if err != nil {
		return icons, err
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return icons, err
		}
		name := strings.TrimSuffix(filepath.Base(path), ".svg")
		icons[name] = string(data)
	}
	return icons, nil
}
