/*
* GoShellProps, a Go wrapper for the Windows Shell Property System, exposing file metadata as typed key/value maps.
*
* Copyright (c) Siemens AG, 2016-2021.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propstore

import (
	"testing"

	"go-shellprops/propsys"
)

func TestNormalize(t *testing.T) {

	// Prepare and run test cases
	tests := []struct {
		name   string
		flags  StoreFlags
		intent flagIntent
		enable bool
		want   StoreFlags
	}{
		{
			"include-slow-on-default",
			0,
			intentIncludeSlow,
			true,
			propsys.GPS_OPENSLOWITEM,
		},
		{
			"include-slow-clears-fast-only",
			propsys.GPS_FASTPROPERTIESONLY | propsys.GPS_TEMPORARY,
			intentIncludeSlow,
			true,
			propsys.GPS_OPENSLOWITEM,
		},
		{
			"include-slow-off",
			propsys.GPS_OPENSLOWITEM | propsys.GPS_READWRITE,
			intentIncludeSlow,
			false,
			propsys.GPS_READWRITE,
		},
		{
			"no-inherited-on",
			0,
			intentNoInheritedProperties,
			true,
			propsys.GPS_HANDLERPROPERTIESONLY,
		},
		{
			"no-inherited-clears-temporary-and-volatile-only",
			propsys.GPS_TEMPORARY | propsys.GPS_VOLATILEPROPERTIESONLY,
			intentNoInheritedProperties,
			true,
			propsys.GPS_HANDLERPROPERTIESONLY,
		},
		{
			"no-inherited-off",
			propsys.GPS_HANDLERPROPERTIESONLY | propsys.GPS_OPENSLOWITEM,
			intentNoInheritedProperties,
			false,
			propsys.GPS_OPENSLOWITEM,
		},
		{
			"read-only-on-clears-readwrite",
			propsys.GPS_READWRITE,
			intentReadOnly,
			true,
			propsys.GPS_HANDLERPROPERTIESONLY,
		},
		{
			"read-only-on-after-temporary",
			propsys.GPS_TEMPORARY | propsys.GPS_READWRITE,
			intentReadOnly,
			true,
			propsys.GPS_HANDLERPROPERTIESONLY,
		},
		{
			"read-only-off-clears-exclusive-bits",
			propsys.GPS_DELAYCREATION | propsys.GPS_TEMPORARY | propsys.GPS_BESTEFFORT | propsys.GPS_FASTPROPERTIESONLY,
			intentReadOnly,
			false,
			propsys.GPS_READWRITE,
		},
		{
			"temporary-on-resets-set",
			propsys.GPS_OPENSLOWITEM | propsys.GPS_HANDLERPROPERTIESONLY | propsys.GPS_BESTEFFORT,
			intentTemporary,
			true,
			propsys.GPS_TEMPORARY | propsys.GPS_READWRITE,
		},
		{
			"temporary-off",
			propsys.GPS_TEMPORARY | propsys.GPS_READWRITE,
			intentTemporary,
			false,
			propsys.GPS_READWRITE,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(tt.flags, tt.intent, tt.enable); got != tt.want {
				t.Errorf("normalize() = '%#x', want = '%#x'", uint32(got), uint32(tt.want))
			}
		})
	}
}

// The flag set must stay internally consistent across any setter sequence: no
// slow+fast-only, no temporary+handler-only and temporary implies writable.
func TestNormalize_consistency(t *testing.T) {
	intents := []flagIntent{intentIncludeSlow, intentNoInheritedProperties, intentReadOnly, intentTemporary}
	flags := StoreFlags(0)
	for _, first := range intents {
		for _, second := range intents {
			for _, enableFirst := range []bool{true, false} {
				for _, enableSecond := range []bool{true, false} {
					flags = normalize(normalize(flags, first, enableFirst), second, enableSecond)
					if flags.IncludeSlow() && flags&propsys.GPS_FASTPROPERTIESONLY != 0 {
						t.Errorf("Inconsistent set '%#x': slow item with fast-only bit", uint32(flags))
					}
					if flags.Temporary() && flags.NoInheritedProperties() {
						t.Errorf("Inconsistent set '%#x': temporary with handler-only bit", uint32(flags))
					}
					if flags.Temporary() && flags.ReadOnly() {
						t.Errorf("Inconsistent set '%#x': temporary but not writable", uint32(flags))
					}
				}
			}
		}
	}
}

func TestStoreFlags_accessors(t *testing.T) {
	flags := StoreFlags(propsys.GPS_OPENSLOWITEM | propsys.GPS_HANDLERPROPERTIESONLY)
	if !flags.IncludeSlow() {
		t.Errorf("IncludeSlow() = false, want = true")
	}
	if !flags.NoInheritedProperties() {
		t.Errorf("NoInheritedProperties() = false, want = true")
	}
	if !flags.ReadOnly() { // GPS_READWRITE not set
		t.Errorf("ReadOnly() = false, want = true")
	}
	if flags.Temporary() {
		t.Errorf("Temporary() = true, want = false")
	}
}
