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
	"go-shellprops/propsys"
)

// StoreFlags is the GETPROPERTYSTOREFLAGS bitset handed to the native bind call.
// The zero value (GPS_DEFAULT) binds a read-only store with inherited properties.
// Use normalize respectively the Store setters to mutate the set, they keep
// mutually exclusive bits consistent.
type StoreFlags uint32

func (f StoreFlags) IncludeSlow() bool {
	return f&propsys.GPS_OPENSLOWITEM != 0
}

func (f StoreFlags) NoInheritedProperties() bool {
	return f&propsys.GPS_HANDLERPROPERTIESONLY != 0
}

func (f StoreFlags) ReadOnly() bool {
	return f&propsys.GPS_READWRITE == 0
}

func (f StoreFlags) Temporary() bool {
	return f&propsys.GPS_TEMPORARY != 0
}

// Configuration intents a caller can express on a flag set.
type flagIntent int

const (
	intentIncludeSlow flagIntent = iota
	intentNoInheritedProperties
	intentReadOnly
	intentTemporary
)

// normalize applies one configuration intent to a flag set and resolves the
// cross-flag consistency rules of GETPROPERTYSTOREFLAGS:
//   - A slow item cannot be temporary or restricted to fast properties.
//   - Handler-only properties exclude temporary and volatile-only binding.
//   - Read-only clears the read-write bit and restricts to handler properties.
//   - Writable stores cannot be delay-created, temporary, best-effort or fast-only.
//   - Temporary resets the set to exactly "temporary, writable".
func normalize(flags StoreFlags, intent flagIntent, enable bool) StoreFlags {
	switch intent {
	case intentIncludeSlow:
		if enable {
			flags |= propsys.GPS_OPENSLOWITEM
			flags &^= propsys.GPS_TEMPORARY | propsys.GPS_FASTPROPERTIESONLY
		} else {
			flags &^= propsys.GPS_OPENSLOWITEM
		}
	case intentNoInheritedProperties:
		if enable {
			flags |= propsys.GPS_HANDLERPROPERTIESONLY
			flags &^= propsys.GPS_TEMPORARY | propsys.GPS_VOLATILEPROPERTIESONLY
		} else {
			flags &^= propsys.GPS_HANDLERPROPERTIESONLY
		}
	case intentReadOnly:
		if enable {
			flags &^= propsys.GPS_READWRITE
			flags = normalize(flags, intentNoInheritedProperties, true)
		} else {
			flags |= propsys.GPS_READWRITE
			flags &^= propsys.GPS_DELAYCREATION | propsys.GPS_TEMPORARY |
				propsys.GPS_BESTEFFORT | propsys.GPS_FASTPROPERTIESONLY
		}
	case intentTemporary:
		if enable {
			flags = propsys.GPS_TEMPORARY | propsys.GPS_READWRITE
		} else {
			flags &^= propsys.GPS_TEMPORARY
		}
	}
	return flags
}
