/*
* GoShellProps, a Go wrapper for the Windows Shell Property System, exposing file metadata as typed key/value maps.
*
* Copyright (c) Siemens AG, 2016-2021.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propkeys

import (
	"testing"

	"go-shellprops/propsys"
)

func TestWellKnownKeys(t *testing.T) {

	// Prepare and run test cases
	tests := []struct {
		name string
		key  propsys.PROPERTYKEY
		want string
	}{
		{"System.Title", Title, "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 2"},
		{"System.Author", Author, "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 4"},
		{"System.ItemNameDisplay", ItemNameDisplay, "{B725F130-47EF-101A-A5F1-02608C9EEBAC} 10"},
		{"System.Size", Size, "{B725F130-47EF-101A-A5F1-02608C9EEBAC} 12"},
		{"System.DateModified", DateModified, "{B725F130-47EF-101A-A5F1-02608C9EEBAC} 14"},
		{"System.MIMEType", MIMEType, "{0B63E350-9CCC-11D0-BCDB-00805FCCCCCC} 5"},
		{"System.Image.Dimensions", ImageDimensions, "{6444048F-4C8B-11D1-8B70-080036B11A03} 13"},
		{"System.Media.Duration", MediaDuration, "{64440490-4C8B-11D1-8B70-080036B11A03} 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = '%s', want = '%s'", got, tt.want)
			}
			if name, ok := Name(tt.key); !ok || name != tt.name {
				t.Errorf("Name() = ('%s', '%v'), want = ('%s', true)", name, ok, tt.name)
			}
		})
	}
}

func TestCanonicalNames_unique(t *testing.T) {
	seen := make(map[string]propsys.PROPERTYKEY)
	for key, name := range CanonicalNames {
		if previous, ok := seen[name]; ok {
			t.Errorf("Canonical name '%s' mapped by both '%v' and '%v'", name, previous, key)
		}
		seen[name] = key
	}
}

func TestName_unknownKey(t *testing.T) {
	if name, ok := Name(propsys.PROPERTYKEY{}); ok {
		t.Errorf("Name() = ('%s', true) for an unknown key, want = (\"\", false)", name)
	}
}
