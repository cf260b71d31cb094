package propsys

import (
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	modShell32 = windows.NewLazySystemDLL("shell32.dll")
	modPropsys = windows.NewLazySystemDLL("propsys.dll")
	modOle32   = windows.NewLazySystemDLL("ole32.dll")

	procSHGetPropertyStoreFromParsingName = modShell32.NewProc("SHGetPropertyStoreFromParsingName")
	procPSGetPropertyKeyFromName          = modPropsys.NewProc("PSGetPropertyKeyFromName")
	procPSGetNameFromPropertyKey          = modPropsys.NewProc("PSGetNameFromPropertyKey")
	procPSGetPropertyDescription          = modPropsys.NewProc("PSGetPropertyDescription")
	procPSGetPropertyDescriptionByName    = modPropsys.NewProc("PSGetPropertyDescriptionByName")
	procPSFormatForDisplay                = modPropsys.NewProc("PSFormatForDisplay")
	procPSCreateMemoryPropertyStore       = modPropsys.NewProc("PSCreateMemoryPropertyStore")
	procCreateBindCtx                     = modOle32.NewProc("CreateBindCtx")
	procPropVariantClear                  = modOle32.NewProc("PropVariantClear")
)

// SHGetPropertyStoreFromParsingName binds the property store of the item identified
// by a parsing name (usually an absolute file system path).
func SHGetPropertyStoreFromParsingName(
	pszPath *uint16,
	pbc *IBindCtx,
	flags uint32,
	riid *ole.GUID,
	store **IPropertyStore,
) (err error) {
	hr, _, _ := syscall.Syscall6(
		procSHGetPropertyStoreFromParsingName.Addr(),
		5,
		uintptr(unsafe.Pointer(pszPath)),
		uintptr(unsafe.Pointer(pbc)),
		uintptr(flags),
		uintptr(unsafe.Pointer(riid)),
		uintptr(unsafe.Pointer(store)),
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

// PSGetPropertyKeyFromName translates a canonical property name ("System.Title")
// into its property key.
func PSGetPropertyKeyFromName(pszName *uint16, pkey *PROPERTYKEY) (err error) {
	hr, _, _ := syscall.Syscall(
		procPSGetPropertyKeyFromName.Addr(),
		2,
		uintptr(unsafe.Pointer(pszName)),
		uintptr(unsafe.Pointer(pkey)),
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

// PSGetNameFromPropertyKey resolves the canonical name registered for a key. The
// returned buffer is allocated by the property system and released here after
// conversion.
func PSGetNameFromPropertyKey(pkey *PROPERTYKEY) (name string, err error) {
	var buf *uint16
	hr, _, _ := syscall.Syscall(
		procPSGetNameFromPropertyKey.Addr(),
		2,
		uintptr(unsafe.Pointer(pkey)),
		uintptr(unsafe.Pointer(&buf)),
		0)
	if hr != 0 {
		return "", ole.NewError(hr)
	}
	name = windows.UTF16PtrToString(buf)
	windows.CoTaskMemFree(unsafe.Pointer(buf))
	return name, nil
}

// PSGetPropertyDescription looks up the property description registered for a key.
// The caller owns the returned interface and must Release it.
func PSGetPropertyDescription(pkey *PROPERTYKEY, riid *ole.GUID, pd **IPropertyDescription) (err error) {
	hr, _, _ := syscall.Syscall(
		procPSGetPropertyDescription.Addr(),
		3,
		uintptr(unsafe.Pointer(pkey)),
		uintptr(unsafe.Pointer(riid)),
		uintptr(unsafe.Pointer(pd)))
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

// PSGetPropertyDescriptionByName looks up the property description registered for
// a canonical name. The caller owns the returned interface and must Release it.
func PSGetPropertyDescriptionByName(pszName *uint16, riid *ole.GUID, pd **IPropertyDescription) (err error) {
	hr, _, _ := syscall.Syscall(
		procPSGetPropertyDescriptionByName.Addr(),
		3,
		uintptr(unsafe.Pointer(pszName)),
		uintptr(unsafe.Pointer(riid)),
		uintptr(unsafe.Pointer(pd)))
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

// PSFormatForDisplay produces the locale aware display string for a raw property
// value. Formatting is entirely done by the property system.
func PSFormatForDisplay(pkey *PROPERTYKEY, pv *PROPVARIANT, flags uint32) (text string, err error) {
	buf := make([]uint16, 1024)
	hr, _, _ := syscall.Syscall6(
		procPSFormatForDisplay.Addr(),
		5,
		uintptr(unsafe.Pointer(pkey)),
		uintptr(unsafe.Pointer(pv)),
		uintptr(flags),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		0)
	if hr != 0 {
		return "", ole.NewError(hr)
	}
	return windows.UTF16ToString(buf), nil
}

// PSCreateMemoryPropertyStore creates an empty in-memory property store, not
// backed by any item.
func PSCreateMemoryPropertyStore(riid *ole.GUID, store **IPropertyStore) (err error) {
	hr, _, _ := syscall.Syscall(
		procPSCreateMemoryPropertyStore.Addr(),
		2,
		uintptr(unsafe.Pointer(riid)),
		uintptr(unsafe.Pointer(store)),
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}

// NewBindCtx creates a default bind context, which can be passed to
// SHGetPropertyStoreFromParsingName to influence name resolution.
func NewBindCtx() (*IBindCtx, error) {
	var bindCtx *IBindCtx
	hr, _, _ := syscall.Syscall(
		procCreateBindCtx.Addr(),
		2,
		0,
		uintptr(unsafe.Pointer(&bindCtx)),
		0)
	if hr != 0 {
		return nil, ole.NewError(hr)
	}
	return bindCtx, nil
}

// PropVariantClear frees the contents owned by a PROPVARIANT and resets it to empty.
func PropVariantClear(pv *PROPVARIANT) (err error) {
	hr, _, _ := syscall.Syscall(
		procPropVariantClear.Addr(),
		1,
		uintptr(unsafe.Pointer(pv)),
		0,
		0)
	if hr != 0 {
		err = ole.NewError(hr)
	}
	return
}
