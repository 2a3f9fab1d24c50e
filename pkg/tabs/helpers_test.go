package tabs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// failingFs rejects renames into failDir, which is how WriteText commits.
type failingFs struct {
	afero.Fs
	failDir string
}

func (f *failingFs) Rename(oldname, newname string) error {
	if strings.HasPrefix(filepath.Clean(newname), f.failDir+string(filepath.Separator)) {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
	}
	return f.Fs.Rename(oldname, newname)
}
