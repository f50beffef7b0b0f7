package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName      = "voxa-build"
	ConfigFileName  = "voxa-build.json"
	HistoryFileName = "history.db"
	ProjectFileName = "project.pbxproj"
	AppIconSetDir   = "Assets.xcassets/AppIcon.appiconset"
	DirPerm         = 0755
	FilePerm        = 0644
)

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed. An existing
// file keeps its permission bits; new files get FilePerm.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	perm := os.FileMode(FilePerm)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for voxa-build:
//   - Windows: %APPDATA%\voxa-build
//   - Unix:    ~/.config/voxa-build
//
// Falls back to os.TempDir()/voxa-build if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// ProjectFile resolves p to a project.pbxproj path. A path ending in
// .xcodeproj (the bundle directory Xcode shows) gets the file name appended.
func ProjectFile(p string) string {
	if filepath.Ext(p) == ".xcodeproj" {
		return filepath.Join(p, ProjectFileName)
	}
	if fi, err := os.Stat(p); err == nil && fi.IsDir() {
		return filepath.Join(p, ProjectFileName)
	}
	return p
}

// IconSetDir returns the asset-catalog icon set directory under resources.
func IconSetDir(resources string) string {
	return filepath.Join(resources, filepath.FromSlash(AppIconSetDir))
}
