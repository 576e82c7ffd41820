package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates the word list and config file relative to the
// running binary, the working directory and the user config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordhunt")
		}
		return filepath.Join(homeDir, ".config", "wordhunt")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordhunt")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordhunt")
	default:
		return filepath.Join(homeDir, ".config", "wordhunt")
	}
}

// DictionaryCandidates lists where a word list named by the user may live,
// in order of preference:
// 1. the path itself (absolute, or relative to the working directory)
// 2. relative to the executable directory
// 3. the data/ dir next to the executable, then the config dir
func (pr *PathResolver) DictionaryCandidates(userPath string) []string {
	candidates := []string{userPath}
	if filepath.IsAbs(userPath) {
		return candidates
	}
	base := filepath.Base(userPath)
	return append(candidates,
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(pr.executableDir, "data", base),
		filepath.Join(pr.configDir, base),
	)
}

// GetDictionaryPath returns the first candidate that is a regular file.
// When none exist it returns the user path unchanged so the loader reports
// the failure against the name the user gave.
func (pr *PathResolver) GetDictionaryPath(userPath string) string {
	for _, path := range pr.DictionaryCandidates(userPath) {
		if stat, err := os.Stat(path); err == nil && stat.Mode().IsRegular() {
			log.Debugf("Found dictionary: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not valid: %s", path)
	}
	return userPath
}

// GetConfigPath returns the full path for a config file
// It ensures the config directory exists and handles read-only filesystem issues
func (pr *PathResolver) GetConfigPath(filename string) string {
	if ensureWritableDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename)
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, ".wordhunt"),
		filepath.Join(os.TempDir(), "wordhunt"),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if ensureWritableDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

func ensureWritableDir(dir string) bool {
	if err := EnsureDir(dir); err != nil {
		log.Debugf("Cannot create config directory %s: %v", dir, err)
		return false
	}
	return testWriteAccess(dir)
}
