// Package corpus enumerates .hwp files for gate runs and corpus scans.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Prometheus-P/hwp-bridge/pkg/manifest"
)

// Ext is the only file extension the corpus tooling considers.
const Ext = ".hwp"

// File is one corpus document. Path is absolute or corpus-dir relative as
// given, Relpath is slash-separated and relative to the corpus dir so it is
// stable across machines and usable as a manifest key.
type File struct {
	Path    string
	Relpath string
}

// Resolve picks the files a gate run will process. When the manifest lists
// files, its order wins and entries missing on disk are skipped; otherwise
// the corpus dir is walked. maxFiles caps the list when positive.
func Resolve(corpusDir string, cm *manifest.CategoryMap, maxFiles int) ([]File, error) {
	info, err := os.Stat(corpusDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("corpus dir not found: %s", corpusDir)
	}

	var files []File
	if cm != nil && cm.Len() > 0 {
		for _, rel := range cm.Order {
			path := filepath.Join(corpusDir, filepath.FromSlash(rel))
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
			files = append(files, File{Path: path, Relpath: rel})
		}
	}
	if len(files) == 0 {
		files, err = ScanDir(corpusDir)
		if err != nil {
			return nil, err
		}
	}

	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files under: %s", Ext, corpusDir)
	}
	return files, nil
}

// ScanDir walks root for .hwp files and returns them sorted by relpath.
func ScanDir(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if filepath.Ext(path) != Ext {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: path, Relpath: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning corpus dir: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Relpath < files[j].Relpath })
	return files, nil
}
