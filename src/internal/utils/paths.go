package utils

import "path/filepath"

// GetAbsolutePath returns path if it was absolute, otherwise joins it with baseDir
func GetAbsolutePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(baseDir, path))
}

// ResolvePaths applies GetAbsolutePath to every path. An empty baseDir leaves
// relative paths relative to the working directory.
func ResolvePaths(paths []string, baseDir string) []string {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		if baseDir == "" {
			resolved = append(resolved, filepath.Clean(p))
			continue
		}
		resolved = append(resolved, GetAbsolutePath(p, baseDir))
	}
	return resolved
}
