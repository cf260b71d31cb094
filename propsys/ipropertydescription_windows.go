package propsys

import (
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

func (pd *IPropertyDescription) GetPropertyKey() (key PROPERTYKEY, err error) {
	hr, _, _ := syscall.Syscall(
		pd.VTable().GetPropertyKey,
		2,
		uintptr(unsafe.Pointer(pd)),
		uintptr(unsafe.Pointer(&key)),
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

func (pd *IPropertyDescription) GetCanonicalName() (string, error) {
	return pd.getString(pd.VTable().GetCanonicalName)
}

func (pd *IPropertyDescription) GetDisplayName() (string, error) {
	return pd.getString(pd.VTable().GetDisplayName)
}

// GetPropertyType returns the VARTYPE values of this property are stored with.
func (pd *IPropertyDescription) GetPropertyType() (vt uint16, err error) {
	hr, _, _ := syscall.Syscall(
		pd.VTable().GetPropertyType,
		2,
		uintptr(unsafe.Pointer(pd)),
		uintptr(unsafe.Pointer(&vt)),
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

// GetDisplayType returns one of the PDDT_* values.
func (pd *IPropertyDescription) GetDisplayType() (displayType uint32, err error) {
	hr, _, _ := syscall.Syscall(
		pd.VTable().GetDisplayType,
		2,
		uintptr(unsafe.Pointer(pd)),
		uintptr(unsafe.Pointer(&displayType)),
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

// GetTypeFlags returns the PDTF_* flags selected by the given mask.
func (pd *IPropertyDescription) GetTypeFlags(mask uint32) (flags uint32, err error) {
	hr, _, _ := syscall.Syscall(
		pd.VTable().GetTypeFlags,
		3,
		uintptr(unsafe.Pointer(pd)),
		uintptr(mask),
		uintptr(unsafe.Pointer(&flags)))
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

// getString calls a vtable method returning a CoTaskMem allocated LPWSTR and
// converts plus releases it.
func (pd *IPropertyDescription) getString(method uintptr) (string, error) {
	var buf *uint16
	hr, _, _ := syscall.Syscall(
		method,
		2,
		uintptr(unsafe.Pointer(pd)),
		uintptr(unsafe.Pointer(&buf)),
		0)
	if hr != 0 {
		return "", ole.NewError(hr)
	}
	value := windows.UTF16PtrToString(buf)
	windows.CoTaskMemFree(unsafe.Pointer(buf))
	return value, nil
}
