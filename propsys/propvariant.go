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
	"time"
	"unsafe"

	"github.com/go-ole/go-ole"
)

// Offset of the pointer member within the 16 byte union of counted array and
// blob variants (cElems/cbSize first, then 4 bytes padding, then the pointer).
const unionPtrOffset = 8

// Offset between the FILETIME epoch (1601-01-01) and the Unix epoch, in 100ns ticks.
const filetimeEpochDelta = 116444736000000000

// PROPVARIANT extends the OLE VARIANT by the additional value tags the property
// system uses (LPWSTR, FILETIME, BLOB, counted arrays, ...). Both share the same
// 8 byte header plus 16 byte union layout.
type PROPVARIANT struct {
	ole.VARIANT
}

// ValueExt converts the variant content to a Go value. Conversions already offered
// by go-ole (integers, floats, BSTR, BOOL) are reused, property system specific
// tags are handled on top. An unsupported tag yields a descriptive error.
func (pv *PROPVARIANT) ValueExt() (interface{}, error) {

	// Check if value conversion is already covered by the embedded VARIANT
	if value := pv.Value(); value != nil {
		return value, nil
	}

	// Counted arrays are marked by the vector bit on top of the element tag
	if pv.VT&ole.VT_VECTOR != 0 {
		return pv.vectorValue()
	}

	// Further type handling
	switch pv.VT {
	case ole.VT_EMPTY, ole.VT_NULL:
		return nil, nil
	case ole.VT_LPWSTR:
		return ole.UTF16PtrToString(*(**uint16)(unsafe.Pointer(&pv.Val))), nil
	case ole.VT_LPSTR:
		return ansiPtrToString(*(**byte)(unsafe.Pointer(&pv.Val))), nil
	case ole.VT_FILETIME:
		return filetimeToTime(uint64(pv.Val)), nil
	case ole.VT_CLSID:
		guid := *(**ole.GUID)(unsafe.Pointer(&pv.Val))
		if guid == nil {
			return nil, nil
		}
		return guid.String(), nil
	case ole.VT_ERROR:
		return int32(pv.Val), nil // SCODE of the failed property
	case ole.VT_BLOB:
		size, data := pv.unionPair()
		buf := make([]byte, size)
		if size > 0 && data != nil {
			copy(buf, unsafe.Slice((*byte)(data), size))
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("type %s conversion not supported", pv.VT)
	}
}

// vectorValue converts a VT_VECTOR variant into a Go slice of the element type.
func (pv *PROPVARIANT) vectorValue() (interface{}, error) {
	count, data := pv.unionPair()
	switch pv.VT &^ ole.VT_VECTOR {
	case ole.VT_LPWSTR:
		values := make([]string, 0, count)
		if count > 0 && data != nil {
			for _, ptr := range unsafe.Slice((**uint16)(data), count) {
				values = append(values, ole.UTF16PtrToString(ptr))
			}
		}
		return values, nil
	case ole.VT_BSTR:
		values := make([]string, 0, count)
		if count > 0 && data != nil {
			for _, ptr := range unsafe.Slice((**uint16)(data), count) {
				values = append(values, ole.BstrToString(ptr))
			}
		}
		return values, nil
	case ole.VT_BOOL:
		values := make([]bool, 0, count)
		for _, v := range vectorOf[int16](data, count) { // VARIANT_BOOL is a 16 bit integer
			values = append(values, v != 0)
		}
		return values, nil
	case ole.VT_I2:
		return vectorOf[int16](data, count), nil
	case ole.VT_UI2:
		return vectorOf[uint16](data, count), nil
	case ole.VT_I4:
		return vectorOf[int32](data, count), nil
	case ole.VT_UI4:
		return vectorOf[uint32](data, count), nil
	case ole.VT_I8:
		return vectorOf[int64](data, count), nil
	case ole.VT_UI8:
		return vectorOf[uint64](data, count), nil
	case ole.VT_R4:
		return vectorOf[float32](data, count), nil
	case ole.VT_R8:
		return vectorOf[float64](data, count), nil
	case ole.VT_UI1:
		return vectorOf[byte](data, count), nil
	default:
		return nil, fmt.Errorf("vector type %s conversion not supported", pv.VT&^ole.VT_VECTOR)
	}
}

// unionPair reads the variant union as {count, pointer}, the layout shared by
// counted arrays and blobs.
func (pv *PROPVARIANT) unionPair() (uint32, unsafe.Pointer) {
	base := unsafe.Pointer(&pv.Val)
	count := *(*uint32)(base)
	ptr := *(*unsafe.Pointer)(unsafe.Add(base, unionPtrOffset))
	return count, ptr
}

// setUnionPair writes the {count, pointer} union layout, the write side counterpart
// of unionPair.
func (pv *PROPVARIANT) setUnionPair(count uint32, ptr unsafe.Pointer) {
	base := unsafe.Pointer(&pv.Val)
	*(*uint32)(base) = count
	*(*unsafe.Pointer)(unsafe.Add(base, unionPtrOffset)) = ptr
}

func vectorOf[T any](data unsafe.Pointer, count uint32) []T {
	values := make([]T, count)
	if count > 0 && data != nil {
		copy(values, unsafe.Slice((*T)(data), count))
	}
	return values
}

// filetimeToTime converts a FILETIME tick count (100ns intervals since 1601-01-01)
// into a UTC timestamp. Zero ticks map to the zero time.
func filetimeToTime(ticks uint64) time.Time {
	if ticks == 0 {
		return time.Time{}
	}
	return time.Unix(0, (int64(ticks)-filetimeEpochDelta)*100).UTC()
}

// timeToFiletime is the inverse of filetimeToTime.
func timeToFiletime(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.UTC().UnixNano()/100 + filetimeEpochDelta)
}

// ansiPtrToString reads a NUL terminated ANSI string.
func ansiPtrToString(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var out []byte
	for i := 0; ; i++ {
		c := *(*byte)(unsafe.Add(unsafe.Pointer(ptr), i))
		if c == 0 {
			break
		}
		out = append(out, c)
	}
	return string(out)
}
