/*
* GoShellProps, a Go wrapper for the Windows Shell Property System, exposing file metadata as typed key/value maps.
*
* Copyright (c) Siemens AG, 2016-2021.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propwalk

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"go-shellprops/utils"
)

// collectProperties returns no shell properties, since there is no property system on Linux
func (w *Walker) collectProperties(path string, logger utils.Logger) map[string]string {
	return map[string]string{}
}

// getUnixFlags extracts unix file permissions of the fileMode
func getUnixFlags(fm os.FileMode) string {
	return fm.String()
}

// Determines the read and write permission of a symlink. Since in most Linux distros the mode of symlinks is 0777 and
// is not changeable, we determine the (effective) symlink permissions by the effective permissions of its parent folder.
func determineSymlinkPermissions(symlinkInfo *Snapshot, logger utils.Logger) {

	// Get the path to the parent folder
	parentDir := filepath.Dir(symlinkInfo.Path)

	// Determine read permission by accessing it with a read-only flag
	errRead := unix.Access(parentDir, unix.R_OK)
	if errRead != nil {
		if os.IsPermission(errRead) { // Distinguish between no access and other errors
			symlinkInfo.Readable = false
		} else {
			logger.Debugf("Could not determine read permissions of %s: %s", symlinkInfo.Path, errRead)
		}
	} else {
		symlinkInfo.Readable = true
	}

	// Same as above but with a write-only flag
	errWrite := unix.Access(parentDir, unix.W_OK)
	if errWrite != nil {
		if os.IsPermission(errWrite) {
			symlinkInfo.Writable = false
		} else {
			logger.Debugf("Could not determine write permissions of %s: %s", symlinkInfo.Path, errWrite)
		}
	} else {
		symlinkInfo.Writable = true
	}
}
