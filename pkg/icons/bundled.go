package icons

import (
	"embed"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

//go:embed images/*.svg
var images embed.FS

// Names of the icons shipped inside the binary.
const (
	FileIcon   = "file.svg"
	FolderIcon = "folder.svg"
	AppIcon    = "qf.svg"
)

// Bundled hands out filesystem paths for the embedded icons.
// Launchers need a path, so the icons are written to dir on first use.
type Bundled struct {
	dir string

	once sync.Once
	err  error
}

func NewBundled(dir string) *Bundled {
	return &Bundled{dir: dir}
}

// Path returns the on-disk path of an embedded icon.
// When the icons cannot be written the bare name is returned; rofi and fuzzel
// treat it as an icon name and fall back to their own default.
func (b *Bundled) Path(name string) string {
	b.once.Do(func() {
		b.err = b.writeIfMissing()
	})
	if b.err != nil {
		return name
	}
	return filepath.Join(b.dir, name)
}

func (b *Bundled) writeIfMissing() error {
	if b.dir == "" {
		return errors.New("empty icon dir")
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return err
	}
	for _, name := range []string{FileIcon, FolderIcon, AppIcon} {
		p := filepath.Join(b.dir, name)
		if _, err := os.Stat(p); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		data, err := images.ReadFile("images/" + name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
