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
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/go-ole/go-ole"
)

// GETPROPERTYSTOREFLAGS values controlling how a property store is bound to an item.
// https://docs.microsoft.com/en-us/windows/win32/api/propsys/ne-propsys-getpropertystoreflags
const (
	GPS_DEFAULT                 = 0x0
	GPS_HANDLERPROPERTIESONLY   = 0x1
	GPS_READWRITE               = 0x2
	GPS_TEMPORARY               = 0x4
	GPS_FASTPROPERTIESONLY      = 0x8
	GPS_OPENSLOWITEM            = 0x10
	GPS_DELAYCREATION           = 0x20
	GPS_BESTEFFORT              = 0x40
	GPS_NO_OPLOCK               = 0x80
	GPS_PREFERQUERYPROPERTIES   = 0x100
	GPS_EXTRINSICPROPERTIES     = 0x200
	GPS_EXTRINSICPROPERTIESONLY = 0x400
	GPS_VOLATILEPROPERTIES      = 0x800
	GPS_VOLATILEPROPERTIESONLY  = 0x1000
	GPS_MASK_VALID              = 0x1FFF
)

// PROPDESC_FORMAT_FLAGS for PSFormatForDisplay
const (
	PDFF_DEFAULT    = 0x0
	PDFF_PREFIXNAME = 0x1
	PDFF_FILENAME   = 0x2
	PDFF_ALWAYSKB   = 0x4
	PDFF_SHORTTIME  = 0x10
	PDFF_LONGTIME   = 0x20
	PDFF_HIDETIME   = 0x40
	PDFF_SHORTDATE  = 0x80
	PDFF_LONGDATE   = 0x100
	PDFF_HIDEDATE   = 0x200
)

// PROPDESC_DISPLAYTYPE values as reported by IPropertyDescription::GetDisplayType
const (
	PDDT_STRING     = 0x0
	PDDT_NUMBER     = 0x1
	PDDT_BOOLEAN    = 0x2
	PDDT_DATETIME   = 0x3
	PDDT_ENUMERATED = 0x4
)

// PROPDESC_TYPE_FLAGS values as reported by IPropertyDescription::GetTypeFlags
const (
	PDTF_DEFAULT                = 0x0
	PDTF_MULTIPLEVALUES         = 0x1
	PDTF_ISINNATE               = 0x2
	PDTF_ISGROUP                = 0x4
	PDTF_CANGROUPBY             = 0x8
	PDTF_CANSTACKBY             = 0x10
	PDTF_ISTREEPROPERTY         = 0x20
	PDTF_INCLUDEINFULLTEXTQUERY = 0x40
	PDTF_ISVIEWABLE             = 0x80
	PDTF_ISQUERYABLE            = 0x100
	PDTF_CANBEPURGED            = 0x200
	PDTF_SEARCHRAWVALUE         = 0x400
	PDTF_ISSYSTEMPROPERTY       = 0x80000000
	PDTF_MASK_ALL               = 0x800007FF
)

// HRESULT returned by the property system when a canonical name or key is not registered
const TYPE_E_ELEMENTNOTFOUND = 0x8002802B

var (
	IID_IPropertyStore       = ole.NewGUID("{886D8EEB-8CF2-4446-8D02-CDBA1DBDCF99}")
	IID_IPropertyDescription = ole.NewGUID("{6F79D558-3E96-4549-A1D1-7D75D2288814}")
)

// PROPERTYKEY identifies one shell property by format id (GUID) plus property id.
// It is a plain value type, comparable with ==.
type PROPERTYKEY struct {
	ole.GUID
	PID uint32
}

// String returns the canonical textual form "{FMTID} PID", e.g.
// "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 2" for System.Title.
func (pk PROPERTYKEY) String() string {
	return fmt.Sprintf("%s %d", pk.GUID.String(), pk.PID)
}

// ParsePropertyKey parses the textual form produced by PROPERTYKEY.String.
func ParsePropertyKey(s string) (PROPERTYKEY, error) {

	// Split into GUID and PID part
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return PROPERTYKEY{}, fmt.Errorf("invalid property key format '%s'", s)
	}

	// Parse the format id
	guid := ole.NewGUID(parts[0])
	if guid == nil {
		return PROPERTYKEY{}, fmt.Errorf("invalid property key format id '%s'", parts[0])
	}

	// Parse the property id
	pid, errPid := strconv.ParseUint(parts[1], 10, 32)
	if errPid != nil {
		return PROPERTYKEY{}, fmt.Errorf("invalid property id '%s': %s", parts[1], errPid)
	}

	// Return assembled key
	return PROPERTYKEY{
		GUID: *guid,
		PID:  uint32(pid),
	}, nil
}

type IBindCtx struct {
	ole.IUnknown
}

// IPropertyStore is the native per-item property store. Its methods are implemented
// via direct vtable calls, see ipropertystore_windows.go.
type IPropertyStore struct {
	ole.IUnknown
}

type IPropertyStoreVtbl struct {
	ole.IUnknownVtbl
	GetCount uintptr
	GetAt    uintptr
	GetValue uintptr
	SetValue uintptr
	Commit   uintptr
}

func (ps *IPropertyStore) VTable() *IPropertyStoreVtbl {
	return (*IPropertyStoreVtbl)(unsafe.Pointer(ps.RawVTable))
}

// IPropertyDescription exposes the system-wide metadata registered for a property key.
type IPropertyDescription struct {
	ole.IUnknown
}

type IPropertyDescriptionVtbl struct {
	ole.IUnknownVtbl
	GetPropertyKey             uintptr
	GetCanonicalName           uintptr
	GetPropertyType            uintptr
	GetDisplayName             uintptr
	GetEditInvitation          uintptr
	GetTypeFlags               uintptr
	GetViewFlags               uintptr
	GetDefaultColumnWidth      uintptr
	GetDisplayType             uintptr
	GetColumnState             uintptr
	GetGroupingRange           uintptr
	GetRelativeDescriptionType uintptr
	GetRelativeDescription     uintptr
	GetSortDescription         uintptr
	GetSortDescriptionLabel    uintptr
	GetAggregationType         uintptr
	GetConditionType           uintptr
	GetEnumTypeList            uintptr
	CoerceToCanonicalValue     uintptr
	FormatForDisplay           uintptr
	IsValueCanonical           uintptr
}

func (pd *IPropertyDescription) VTable() *IPropertyDescriptionVtbl {
	return (*IPropertyDescriptionVtbl)(unsafe.Pointer(pd.RawVTable))
}
