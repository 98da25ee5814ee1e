// Package utils provides small helpers shared by the commands and the
// checksum packages: path resolution and closing files without losing errors.
//
//	absPath := utils.GetAbsolutePath("data/archive.tar", "/srv")
//	// Returns: /srv/data/archive.tar
package utils
