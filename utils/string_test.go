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
	"reflect"
	"testing"
)

func TestTrimToLower(t *testing.T) {

	// Prepare and run test cases
	tests := []struct {
		name  string
		slice []string
		want  []string
	}{
		{"all-upper", []string{"A", "B", "C"}, []string{"a", "b", "c"}},
		{"mixed-upper", []string{"A", "b", "C"}, []string{"a", "b", "c"}},
		{"mixed-upper-untrimmed1", []string{"A", "b ", "C"}, []string{"a", "b", "c"}},
		{"mixed-upper-untrimmed2", []string{" A ", "b ", " C"}, []string{"a", "b", "c"}},
		{"dotted-extensions", []string{".TXT", "Log."}, []string{"txt", "log"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimToLower(tt.slice); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TrimToLower() = '%v', want = '%v'", got, tt.want)
			}
		})
	}
}
