/*
* GoShellProps, a Go wrapper for the Windows Shell Property System, exposing file metadata as typed key/value maps.
*
* Copyright (c) Siemens AG, 2016-2021.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propsys

import (
	"reflect"
	"testing"

	"github.com/go-ole/go-ole"
)

func TestPropertyKey_String(t *testing.T) {

	// Prepare and run test cases
	tests := []struct {
		name string
		key  PROPERTYKEY
		want string
	}{
		{
			"title",
			PROPERTYKEY{GUID: *ole.NewGUID("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}"), PID: 2},
			"{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 2",
		},
		{
			"item-name-display",
			PROPERTYKEY{GUID: *ole.NewGUID("{B725F130-47EF-101A-A5F1-02608C9EEBAC}"), PID: 10},
			"{B725F130-47EF-101A-A5F1-02608C9EEBAC} 10",
		},
		{
			"zero",
			PROPERTYKEY{},
			"{00000000-0000-0000-0000-000000000000} 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("PROPERTYKEY.String() = '%v', want = '%v'", got, tt.want)
			}
		})
	}
}

func TestParsePropertyKey(t *testing.T) {

	// Prepare and run test cases
	tests := []struct {
		name    string
		input   string
		want    PROPERTYKEY
		wantErr bool
	}{
		{
			"valid",
			"{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 2",
			PROPERTYKEY{GUID: *ole.NewGUID("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}"), PID: 2},
			false,
		},
		{
			"valid-padded",
			"  {B725F130-47EF-101A-A5F1-02608C9EEBAC} 10  ",
			PROPERTYKEY{GUID: *ole.NewGUID("{B725F130-47EF-101A-A5F1-02608C9EEBAC}"), PID: 10},
			false,
		},
		{"missing-pid", "{F29F85E0-4FF9-1068-AB91-08002B27B3D9}", PROPERTYKEY{}, true},
		{"invalid-guid", "{NOT-A-GUID} 2", PROPERTYKEY{}, true},
		{"invalid-pid", "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} two", PROPERTYKEY{}, true},
		{"negative-pid", "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} -2", PROPERTYKEY{}, true},
		{"empty", "", PROPERTYKEY{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePropertyKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePropertyKey() error = '%v', wantErr = '%v'", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePropertyKey() = '%v', want = '%v'", got, tt.want)
			}
		})
	}
}

func TestParsePropertyKey_roundTrip(t *testing.T) {
	key := PROPERTYKEY{GUID: *ole.NewGUID("{6444048F-4C8B-11D1-8B70-080036B11A03}"), PID: 13}
	parsed, err := ParsePropertyKey(key.String())
	if err != nil {
		t.Errorf("ParsePropertyKey() error = '%v'", err)
		return
	}
	if parsed != key {
		t.Errorf("Round trip changed key, got = '%v', want = '%v'", parsed, key)
	}
}
