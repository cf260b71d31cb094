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
	"syscall"

	"go-shellprops/propstore"
	"go-shellprops/propsys"
	"go-shellprops/utils"
)

// Upper bound of properties read per file. Some shell handlers expose hundreds
// of volatile properties, which would bloat walk results without adding value.
const maxPropertiesPerFile = 64

// collectProperties opens a read-only property store for the file and reads the display
// string of every enumerable property. Failures degrade to fewer entries, not errors.
func (w *Walker) collectProperties(path string, logger utils.Logger) map[string]string {

	// Prepare result map
	properties := make(map[string]string)

	// Open the file's property store read-only
	store, errNew := propstore.New(logger, path, 0, nil)
	if errNew != nil {
		logger.Debugf("Could not prepare property store of '%s': %s", path, errNew)
		return properties
	}
	defer func() {
		errClose := store.Close()
		if errClose != nil {
			logger.Debugf("Could not close property store of '%s': %s", path, errClose)
		}
	}()

	// Request slow item properties if configured
	store.SetIncludeSlow(w.includeSlow)

	// Enumerate the store's keys and read each property's display string
	errWalk := store.EachKey(func(key propsys.PROPERTYKEY) bool {

		// Resolve the canonical name, skip properties without a registered name
		name, errName := propstore.Name(key)
		if errName != nil {
			logger.Debugf("Could not resolve name of property '%s': %s", key.String(), errName)
			return len(properties) < maxPropertiesPerFile
		}

		// Read the formatted property value
		display, errDisplay := store.DisplayString(key)
		if errDisplay != nil {
			logger.Debugf("Could not format property '%s': %s", name, errDisplay)
			return len(properties) < maxPropertiesPerFile
		}
		if display != "" {
			properties[name] = display
		}
		return len(properties) < maxPropertiesPerFile
	})
	if errWalk != nil {
		logger.Debugf("Could not enumerate properties of '%s': %s", path, errWalk)
	}

	// Return collected properties
	return properties
}

func determineSymlinkPermissions(symlinkInfo *Snapshot, logger utils.Logger) {

	// Determine Read permission
	readable, errRead := accessSymlink(symlinkInfo.Path, syscall.GENERIC_READ)
	if errRead != nil {
		logger.Debugf("Could not detect file permissions of %s: %s", symlinkInfo.Path, errRead)
	}
	symlinkInfo.Readable = readable

	// Determine Write permission
	writable, errWrite := accessSymlink(symlinkInfo.Path, syscall.GENERIC_WRITE)
	if errWrite != nil {
		logger.Debugf("Could not detect file permissions of %s: %s", symlinkInfo.Path, errWrite)
	}
	symlinkInfo.Writable = writable
}

// accessSymlink detects and returns if a symlink could be opened with a given access flag, (eg. syscall.GENERIC_READ).
// We need to use the syscall CreateFile instead of Golang's OpenFile() since we need to specify to not follow symlinks.
func accessSymlink(path string, accessFlag uint32) (access bool, err error) {

	// Convert path to a UTF16 string
	pathUTF16, errUTF16 := syscall.UTF16PtrFromString(path)
	if errUTF16 != nil {
		return false, errUTF16
	}

	// Specify that file can be used by other processes while we open it
	sharemode := uint32(syscall.FILE_SHARE_READ | syscall.FILE_SHARE_WRITE)

	// Use FILE_FLAG_BACKUP_SEMANTICS to be able to open symlinks to folders.
	// Use FILE_FLAG_OPEN_REPARSE_POINT, otherwise CreateFile will follow symlink.
	attrs := uint32(syscall.FILE_FLAG_BACKUP_SEMANTICS | syscall.FILE_FLAG_OPEN_REPARSE_POINT)

	// Try to open file with the specified access flag
	fileHandle, errOpen := syscall.CreateFile(
		pathUTF16, accessFlag, sharemode, nil, syscall.OPEN_EXISTING, attrs, 0)
	if errOpen != nil {
		if errOpen == syscall.ERROR_ACCESS_DENIED {
			return false, nil
		} else {
			return false, errOpen
		}
	}

	// If opening was successful, close the handle and return true
	errClose := syscall.CloseHandle(fileHandle)
	if errClose != nil {
		return true, errClose
	}

	// Return flag that file could be accessed
	return true, nil
}

// getUnixFlags extracts unix file permissions of the fileMode, which are not existing on Windows
func getUnixFlags(fm os.FileMode) string {
	return ""
}
