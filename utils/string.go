/*
* GoShellProps, a Go wrapper for the Windows Shell Property System, exposing file metadata as typed key/value maps.
*
* Copyright (c) Siemens AG, 2016-2021.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package utils

import (
	"strings"
)

// TrimToLower converts slice elements to lower case and trim whitespaces
func TrimToLower(slice []string) []string {
	var trimmedLowerSlice []string
	for _, item := range slice {
		item = strings.TrimSpace(item)
		item = strings.Trim(item, ".") // Remove . of file extensions
		item = strings.ToLower(item)
		trimmedLowerSlice = append(trimmedLowerSlice, item)
	}
	return trimmedLowerSlice
}
