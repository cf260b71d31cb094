package propsys

import (
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
)

func (ps *IPropertyStore) GetCount() (count uint32, err error) {
	hr, _, _ := syscall.Syscall(
		ps.VTable().GetCount,
		2,
		uintptr(unsafe.Pointer(ps)),
		uintptr(unsafe.Pointer(&count)),
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

func (ps *IPropertyStore) GetAt(index uint32) (key PROPERTYKEY, err error) {
	hr, _, _ := syscall.Syscall(
		ps.VTable().GetAt,
		3,
		uintptr(unsafe.Pointer(ps)),
		uintptr(index),
		uintptr(unsafe.Pointer(&key)))
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

func (ps *IPropertyStore) GetValue(key *PROPERTYKEY, pv *PROPVARIANT) (err error) {
	hr, _, _ := syscall.Syscall(
		ps.VTable().GetValue,
		3,
		uintptr(unsafe.Pointer(ps)),
		uintptr(unsafe.Pointer(key)),
		uintptr(unsafe.Pointer(pv)))
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

func (ps *IPropertyStore) SetValue(key *PROPERTYKEY, pv *PROPVARIANT) (err error) {
	hr, _, _ := syscall.Syscall(
		ps.VTable().SetValue,
		3,
		uintptr(unsafe.Pointer(ps)),
		uintptr(unsafe.Pointer(key)),
		uintptr(unsafe.Pointer(pv)))
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

func (ps *IPropertyStore) Commit() (err error) {
	hr, _, _ := syscall.Syscall(
		ps.VTable().Commit,
		1,
		uintptr(unsafe.Pointer(ps)),
		0,
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}
