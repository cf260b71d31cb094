package propstore

import (
	"os"

	"go-shellprops/propsys"
	"go-shellprops/utils"
)

// There is no shell property system outside of Windows. The public API stays
// identical, aggregate operations degrade to empty results and definite
// operations report ErrUnavailable, mirroring an item that cannot be bound.

// Initialize prepares the OS for property store access, a no-op on Linux.
func Initialize(logger utils.Logger) error {
	return nil
}

// Uninitialize restores preparations done by Initialize, a no-op on Linux.
func Uninitialize() {
}

// NewMemory is not available on Linux.
func NewMemory(logger utils.Logger) (*Store, error) {
	return nil, &UnsupportedError{Op: "in-memory property store"}
}

// expandPath expands environment variable references in a path.
func expandPath(path string) (string, error) {
	return os.ExpandEnv(path), nil
}

func (s *Store) bind() error {
	return &UnsupportedError{Op: "property store binding"}
}

func (s *Store) release() {
}

func (s *Store) nativeCount() (int, error) {
	return 0, &UnsupportedError{Op: "property enumeration"}
}

func (s *Store) nativeKeyAt(index int) (propsys.PROPERTYKEY, error) {
	return propsys.PROPERTYKEY{}, &UnsupportedError{Op: "property enumeration"}
}

func (s *Store) nativeValue(key propsys.PROPERTYKEY) (interface{}, bool, error) {
	return nil, false, &UnsupportedError{Op: "property lookup"}
}

func (s *Store) nativeDisplayString(key propsys.PROPERTYKEY) (string, error) {
	return "", &UnsupportedError{Op: "property display formatting"}
}

func (s *Store) nativeSetValue(key propsys.PROPERTYKEY, value interface{}) error {
	return &UnsupportedError{Op: "property writing"}
}

func (s *Store) nativeCommit() error {
	return &UnsupportedError{Op: "property writing"}
}

func propertyKeyFromName(name string) (propsys.PROPERTYKEY, error) {
	return propsys.PROPERTYKEY{}, &UnsupportedError{Op: "property name translation"}
}

func nameFromKey(key propsys.PROPERTYKEY) (string, error) {
	return "", &UnsupportedError{Op: "property name translation"}
}

func resolveDescription(key propsys.PROPERTYKEY) (*Description, error) {
	return nil, &UnsupportedError{Op: "property description lookup"}
}

func resolveDescriptionByName(name string) (propsys.PROPERTYKEY, *Description, error) {
	return propsys.PROPERTYKEY{}, nil, &UnsupportedError{Op: "property description lookup"}
}
