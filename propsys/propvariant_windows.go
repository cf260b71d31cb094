package propsys

import (
	"fmt"
	"math"
	"syscall"
	"time"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var procCoTaskMemAlloc = modOle32.NewProc("CoTaskMemAlloc")

// NewPropVariant converts a Go value into a PROPVARIANT suitable for
// IPropertyStore.SetValue. String and slice contents are copied into task memory,
// the caller must Clear the variant once it is no longer needed.
func NewPropVariant(value interface{}) (*PROPVARIANT, error) {
	pv := &PROPVARIANT{}
	switch v := value.(type) {
	case nil:
		pv.VT = ole.VT_EMPTY
	case string:
		ptr, errAlloc := allocUTF16(v)
		if errAlloc != nil {
			return nil, errAlloc
		}
		pv.VT = ole.VT_LPWSTR
		*(*uintptr)(unsafe.Pointer(&pv.Val)) = ptr
	case bool:
		pv.VT = ole.VT_BOOL
		if v {
			pv.Val = -1 // VARIANT_TRUE
		}
	case int8:
		pv.VT = ole.VT_I1
		pv.Val = int64(v)
	case uint8:
		pv.VT = ole.VT_UI1
		pv.Val = int64(v)
	case int16:
		pv.VT = ole.VT_I2
		pv.Val = int64(v)
	case uint16:
		pv.VT = ole.VT_UI2
		pv.Val = int64(v)
	case int32:
		pv.VT = ole.VT_I4
		pv.Val = int64(v)
	case uint32:
		pv.VT = ole.VT_UI4
		pv.Val = int64(v)
	case int64:
		pv.VT = ole.VT_I8
		pv.Val = v
	case uint64:
		pv.VT = ole.VT_UI8
		pv.Val = int64(v)
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			pv.VT = ole.VT_I4
		} else {
			pv.VT = ole.VT_I8
		}
		pv.Val = int64(v)
	case uint:
		if v <= math.MaxUint32 {
			pv.VT = ole.VT_UI4
		} else {
			pv.VT = ole.VT_UI8
		}
		pv.Val = int64(v)
	case float32:
		pv.VT = ole.VT_R4
		*(*float32)(unsafe.Pointer(&pv.Val)) = v
	case float64:
		pv.VT = ole.VT_R8
		*(*float64)(unsafe.Pointer(&pv.Val)) = v
	case time.Time:
		pv.VT = ole.VT_FILETIME
		pv.Val = int64(timeToFiletime(v))
	case []string:
		ptrs := coTaskMemAlloc(uintptr(len(v)) * unsafe.Sizeof(uintptr(0)))
		if ptrs == 0 {
			return nil, fmt.Errorf("could not allocate task memory for string vector")
		}
		slots := unsafe.Slice((*uintptr)(unsafe.Pointer(ptrs)), len(v))
		for i, s := range v {
			ptr, errAlloc := allocUTF16(s)
			if errAlloc != nil {
				return nil, errAlloc
			}
			slots[i] = ptr
		}
		pv.VT = ole.VT_VECTOR | ole.VT_LPWSTR
		pv.setUnionPair(uint32(len(v)), unsafe.Pointer(ptrs))
	case []byte:
		data := coTaskMemAlloc(uintptr(len(v)))
		if data == 0 && len(v) > 0 {
			return nil, fmt.Errorf("could not allocate task memory for blob")
		}
		copy(unsafe.Slice((*byte)(unsafe.Pointer(data)), len(v)), v)
		pv.VT = ole.VT_BLOB
		pv.setUnionPair(uint32(len(v)), unsafe.Pointer(data))
	default:
		return nil, fmt.Errorf("cannot convert %T into a PROPVARIANT", value)
	}
	return pv, nil
}

// Clear releases the contents owned by the variant.
func (pv *PROPVARIANT) Clear() error {
	return PropVariantClear(pv)
}

// allocUTF16 copies a Go string into task memory as NUL terminated UTF16.
func allocUTF16(s string) (uintptr, error) {
	encoded, errEncode := windows.UTF16FromString(s)
	if errEncode != nil {
		return 0, fmt.Errorf("could not convert string to utf16: %s", errEncode)
	}
	ptr := coTaskMemAlloc(uintptr(len(encoded)) * 2)
	if ptr == 0 {
		return 0, fmt.Errorf("could not allocate task memory for string")
	}
	copy(unsafe.Slice((*uint16)(unsafe.Pointer(ptr)), len(encoded)), encoded)
	return ptr, nil
}

func coTaskMemAlloc(size uintptr) uintptr {
	ret, _, _ := syscall.Syscall(procCoTaskMemAlloc.Addr(), 1, size, 0, 0)
	return ret
}
