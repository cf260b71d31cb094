package propstore

import (
	"fmt"
	"syscall"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"go-shellprops/propsys"
	"go-shellprops/utils"
)

// Initialize prepares the calling thread's COM apartment for property store
// access. Call it once per thread before using stores, paired with Uninitialize.
func Initialize(logger utils.Logger) error {

	// Initialize the COM library, which is needed for binding property stores
	errComIni := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)

	// No error means success. In COM, error code 1 means success but with a problem, in this case that the COM library
	// was already initialized. https://docs.microsoft.com/en-us/windows/win32/learnwin32/error-handling-in-com
	if errComIni != nil {
		oleErr, ok := errComIni.(*ole.OleError) // Convert to OleError for better handling
		if !ok {
			return errComIni
		}
		if oleErr.Code() == 1 {
			logger.Debugf("The COM library is already initialized on this thread.")
			return nil
		}
		return oleErr
	}

	// Return nil as everything went fine
	return nil
}

// Uninitialize restores the COM apartment state established by Initialize.
func Uninitialize() {
	ole.CoUninitialize()
}

// NewMemory creates a store backed by a temporary in-memory property store. It is
// writable and not associated with any item, so Commit only affects the in-memory
// state.
func NewMemory(logger utils.Logger) (*Store, error) {
	var handle *propsys.IPropertyStore
	errCreate := propsys.PSCreateMemoryPropertyStore(propsys.IID_IPropertyStore, &handle)
	if errCreate != nil {
		return nil, fmt.Errorf("could not create in-memory property store: %s", errCreate)
	}
	if handle == nil {
		return nil, fmt.Errorf("in-memory property store creation returned a nil pointer")
	}
	return &Store{
		logger: logger,
		path:   "<memory>",
		flags:  normalize(0, intentTemporary, true),
		handle: handle,
	}, nil
}

// expandPath expands environment variable references (%TEMP%, ...) in a path.
func expandPath(path string) (string, error) {
	src, errUTF16 := windows.UTF16PtrFromString(path)
	if errUTF16 != nil {
		return "", fmt.Errorf("could not convert path to utf16: %s", errUTF16)
	}
	buf := make([]uint16, 1024)
	n, errExpand := windows.ExpandEnvironmentStrings(src, &buf[0], uint32(len(buf)))
	if errExpand != nil {
		return "", errExpand
	}
	if int(n) > len(buf) { // Retry with the buffer size the first call asked for
		buf = make([]uint16, n)
		_, errExpand = windows.ExpandEnvironmentStrings(src, &buf[0], uint32(len(buf)))
		if errExpand != nil {
			return "", errExpand
		}
	}
	return windows.UTF16ToString(buf), nil
}

// bind acquires the native property store handle for the item path. It runs at
// most once per store instance, subsequent calls return immediately. A failed
// bind leaves the store unbound, the next access retries.
func (s *Store) bind() error {
	if s.handle != nil {
		return nil
	}

	// Convert path string to a UTF16 pointer for the syscall
	pathUTF16, errStrUTF16 := syscall.UTF16PtrFromString(s.path)
	if errStrUTF16 != nil {
		return &BindError{Path: s.path, Err: fmt.Errorf("could not convert path to utf16-pointer: %s", errStrUTF16)}
	}

	// Get the property store object of the item
	var handle *propsys.IPropertyStore
	errBind := propsys.SHGetPropertyStoreFromParsingName(
		pathUTF16, s.bindCtx, uint32(s.flags), propsys.IID_IPropertyStore, &handle)
	if errBind != nil {
		return &BindError{Path: s.path, Err: errBind}
	}
	if handle == nil {
		return &BindError{Path: s.path, Err: fmt.Errorf("returned property store pointer was a nil pointer")}
	}

	s.handle = handle
	return nil
}

// release drops the native handle's COM reference. Callers guarantee a bound
// handle and that release runs at most once.
func (s *Store) release() {
	s.handle.Release()
}

func (s *Store) nativeCount() (int, error) {
	count, errCount := s.handle.GetCount()
	return int(count), errCount
}

func (s *Store) nativeKeyAt(index int) (propsys.PROPERTYKEY, error) {
	return s.handle.GetAt(uint32(index))
}

// nativeValue reads and converts one property value. The second return value
// reports whether the store holds a non-empty value for the key; the native
// store answers reads of absent keys with an empty variant.
func (s *Store) nativeValue(key propsys.PROPERTYKEY) (interface{}, bool, error) {
	var pv propsys.PROPVARIANT
	if errGet := s.handle.GetValue(&key, &pv); errGet != nil {
		return nil, false, errGet
	}
	defer func() {
		_ = pv.Clear()
	}()
	if pv.VT == ole.VT_EMPTY || pv.VT == ole.VT_NULL {
		return nil, false, nil
	}
	value, errConv := pv.ValueExt()
	if errConv != nil {
		return nil, false, fmt.Errorf("could not convert property value: %s", errConv)
	}
	return value, true, nil
}

func (s *Store) nativeDisplayString(key propsys.PROPERTYKEY) (string, error) {
	var pv propsys.PROPVARIANT
	if errGet := s.handle.GetValue(&key, &pv); errGet != nil {
		return "", fmt.Errorf("could not get value of %s: %s", key.String(), errGet)
	}
	defer func() {
		_ = pv.Clear()
	}()
	text, errFormat := propsys.PSFormatForDisplay(&key, &pv, propsys.PDFF_DEFAULT)
	if errFormat != nil {
		return "", fmt.Errorf("could not format value of %s for display: %s", key.String(), errFormat)
	}
	return text, nil
}

func (s *Store) nativeSetValue(key propsys.PROPERTYKEY, value interface{}) error {
	pv, errConv := propsys.NewPropVariant(value)
	if errConv != nil {
		return fmt.Errorf("could not convert value for %s: %s", key.String(), errConv)
	}
	defer func() {
		_ = pv.Clear() // SetValue copies the variant contents
	}()
	if errSet := s.handle.SetValue(&key, pv); errSet != nil {
		return fmt.Errorf("could not set value of %s: %s", key.String(), errSet)
	}
	return nil
}

func (s *Store) nativeCommit() error {
	if errCommit := s.handle.Commit(); errCommit != nil {
		return fmt.Errorf("could not commit property changes: %s", errCommit)
	}
	return nil
}

// propertyKeyFromName translates a canonical name via the property system's
// schema registry.
func propertyKeyFromName(name string) (propsys.PROPERTYKEY, error) {
	nameUTF16, errStrUTF16 := syscall.UTF16PtrFromString(name)
	if errStrUTF16 != nil {
		return propsys.PROPERTYKEY{}, fmt.Errorf("could not convert name to utf16-pointer: %s", errStrUTF16)
	}
	var key propsys.PROPERTYKEY
	errName := propsys.PSGetPropertyKeyFromName(nameUTF16, &key)
	if errName != nil {
		if isNotRegistered(errName) {
			return propsys.PROPERTYKEY{}, &NameNotFoundError{Name: name}
		}
		return propsys.PROPERTYKEY{}, fmt.Errorf("could not translate property name '%s': %s", name, errName)
	}
	return key, nil
}

func nameFromKey(key propsys.PROPERTYKEY) (string, error) {
	name, errName := propsys.PSGetNameFromPropertyKey(&key)
	if errName != nil {
		if isNotRegistered(errName) {
			return "", &KeyNotFoundError{Key: key}
		}
		return "", fmt.Errorf("could not resolve name of %s: %s", key.String(), errName)
	}
	return name, nil
}

// resolveDescription reads the schema metadata registered for a key.
func resolveDescription(key propsys.PROPERTYKEY) (*Description, error) {

	// Look up the description interface, caller-owned
	var pd *propsys.IPropertyDescription
	errGet := propsys.PSGetPropertyDescription(&key, propsys.IID_IPropertyDescription, &pd)
	if errGet != nil {
		if isNotRegistered(errGet) {
			return nil, &KeyNotFoundError{Key: key}
		}
		return nil, fmt.Errorf("could not get description of %s: %s", key.String(), errGet)
	}
	if pd == nil {
		return nil, fmt.Errorf("returned property description pointer was a nil pointer")
	}
	defer pd.Release()

	// Gather the description attributes
	return descriptionFrom(pd, key.String())
}

// resolveDescriptionByName reads the schema metadata registered for a canonical
// name and returns it together with the key it belongs to.
func resolveDescriptionByName(name string) (propsys.PROPERTYKEY, *Description, error) {
	nameUTF16, errStrUTF16 := syscall.UTF16PtrFromString(name)
	if errStrUTF16 != nil {
		return propsys.PROPERTYKEY{}, nil, fmt.Errorf("could not convert name to utf16-pointer: %s", errStrUTF16)
	}

	// Look up the description interface, caller-owned
	var pd *propsys.IPropertyDescription
	errGet := propsys.PSGetPropertyDescriptionByName(nameUTF16, propsys.IID_IPropertyDescription, &pd)
	if errGet != nil {
		if isNotRegistered(errGet) {
			return propsys.PROPERTYKEY{}, nil, &NameNotFoundError{Name: name}
		}
		return propsys.PROPERTYKEY{}, nil, fmt.Errorf("could not get description of '%s': %s", name, errGet)
	}
	if pd == nil {
		return propsys.PROPERTYKEY{}, nil, fmt.Errorf("returned property description pointer was a nil pointer")
	}
	defer pd.Release()

	// Resolve the key the description belongs to
	key, errKey := pd.GetPropertyKey()
	if errKey != nil {
		return propsys.PROPERTYKEY{}, nil, fmt.Errorf("could not get key of '%s': %s", name, errKey)
	}

	// Gather the description attributes
	description, errDescription := descriptionFrom(pd, name)
	if errDescription != nil {
		return propsys.PROPERTYKEY{}, nil, errDescription
	}
	return key, description, nil
}

// descriptionFrom gathers the attributes of a resolved description interface. The
// label only serves error messages.
func descriptionFrom(pd *propsys.IPropertyDescription, label string) (*Description, error) {
	canonicalName, errName := pd.GetCanonicalName()
	if errName != nil {
		return nil, fmt.Errorf("could not get canonical name of %s: %s", label, errName)
	}
	displayName, errDisplay := pd.GetDisplayName()
	if errDisplay != nil {
		displayName = "" // Not all properties carry a display name
	}
	propertyType, errType := pd.GetPropertyType()
	if errType != nil {
		return nil, fmt.Errorf("could not get property type of %s: %s", label, errType)
	}
	displayType, errDisplayType := pd.GetDisplayType()
	if errDisplayType != nil {
		return nil, fmt.Errorf("could not get display type of %s: %s", label, errDisplayType)
	}
	typeFlags, errFlags := pd.GetTypeFlags(propsys.PDTF_MASK_ALL)
	if errFlags != nil {
		return nil, fmt.Errorf("could not get type flags of %s: %s", label, errFlags)
	}

	return &Description{
		CanonicalName: canonicalName,
		DisplayName:   displayName,
		PropertyType:  propertyType,
		DisplayType:   displayType,
		TypeFlags:     typeFlags,
	}, nil
}

// isNotRegistered checks whether a native error reports an unregistered property
// name or key.
func isNotRegistered(err error) bool {
	oleErr, ok := err.(*ole.OleError)
	if !ok {
		return false
	}
	return oleErr.Code() == propsys.TYPE_E_ELEMENTNOTFOUND || oleErr.Code() == ole.E_INVALIDARG
}
