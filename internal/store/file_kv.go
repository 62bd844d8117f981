package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKV keeps one JSON file per key under dir. Clear only removes files whose
// key carries the namespace prefix, so several namespaces can share a directory.
type FileKV struct {
	dir       string
	namespace string
}

func NewFileKV(dir, namespace string) *FileKV {
	return &FileKV{dir: dir, namespace: namespace}
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileKV) Get(key string) (string, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("❌ Failed to read %s: %w", f.path(key), err)
	}
	return string(b), true, nil
}

func (f *FileKV) Set(key, value string) error {
	if err := f.writeFile(key+".json", value); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

// writeFile replaces dir/name through a temp file and rename.
func (f *FileKV) writeFile(name, content string) error {
	// ディレクトリがない場合は作成
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(f.dir, name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (f *FileKV) Remove(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return unavailable("remove", key, err)
	}
	return nil
}

func (f *FileKV) Clear() error {
	entries, err := os.ReadDir(f.dir)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return unavailable("clear", f.namespace, err)
	}

	prefix := f.namespace + "_"
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || filepath.Ext(name) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil && !os.IsNotExist(err) {
			return unavailable("clear", name, err)
		}
	}
	return nil
}
