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
	"fmt"
	"path/filepath"

	"go-shellprops/propsys"
	"go-shellprops/utils"
)

// Store exposes the native property store of a single file system item as a
// read-only map from property keys to values. The native handle is bound lazily
// on first access and released exactly once by Close.
//
// A Store is not safe for concurrent use. The lazy binding of the handle is a
// plain read-check-write, callers sharing an instance across goroutines must
// synchronize externally or confine the instance to one goroutine.
type Store struct {
	logger       utils.Logger
	path         string
	flags        StoreFlags
	bindCtx      *propsys.IBindCtx
	handle       *propsys.IPropertyStore
	closed       bool
	descriptions map[propsys.PROPERTYKEY]*Description
}

// New prepares a property store for the item at the given path. The path is
// expanded (environment variables) and normalized to an absolute path, but no
// native binding happens until the first read operation. The optional bind
// context influences how the native system resolves the path.
func New(logger utils.Logger, path string, flags StoreFlags, bindCtx *propsys.IBindCtx) (*Store, error) {

	// Check required arguments before any native call
	if path == "" {
		return nil, &ArgumentError{Name: "path"}
	}

	// Expand environment variable references
	expanded, errExpand := expandPath(path)
	if errExpand != nil {
		return nil, fmt.Errorf("could not expand path '%s': %s", path, errExpand)
	}

	// Normalize to an absolute path
	abs, errAbs := filepath.Abs(expanded)
	if errAbs != nil {
		return nil, fmt.Errorf("could not normalize path '%s': %s", path, errAbs)
	}

	// Return prepared store, still unbound
	return &Store{
		logger:  logger,
		path:    abs,
		flags:   flags,
		bindCtx: bindCtx,
	}, nil
}

// Path returns the normalized item path this store binds to.
func (s *Store) Path() string {
	return s.path
}

// Flags returns the current binding flag set.
func (s *Store) Flags() StoreFlags {
	return s.flags
}

// Count returns the number of properties the bound store exposes. If no store
// can be bound (missing item, closed store, unsupported platform) it degrades
// to 0 instead of failing, so "item not found" and "item has no properties"
// enumerate alike.
func (s *Store) Count() int {
	if s.closed {
		return 0
	}
	if err := s.bind(); err != nil {
		s.logger.Debugf("Property count degraded to 0 for '%s': %s", s.path, err)
		return 0
	}
	count, errCount := s.nativeCount()
	if errCount != nil {
		s.logger.Debugf("Could not get property count of '%s': %s", s.path, errCount)
		return 0
	}
	return count
}

// Keys returns the property keys in native positional order. Each call walks the
// native store again, so results reflect its current state. Degrades to an empty
// slice when no store can be bound.
func (s *Store) Keys() []propsys.PROPERTYKEY {
	keys := make([]propsys.PROPERTYKEY, 0)
	_ = s.EachKey(func(key propsys.PROPERTYKEY) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// EachKey walks the store's keys in native positional order (indices 0..Count-1)
// until the callback returns false. When no store can be bound the walk degrades
// to empty without invoking the callback. Errors on individual indices abort the
// walk and are returned.
func (s *Store) EachKey(fn func(key propsys.PROPERTYKEY) bool) error {
	if s.closed {
		return nil
	}
	if err := s.bind(); err != nil {
		s.logger.Debugf("Key enumeration degraded to empty for '%s': %s", s.path, err)
		return nil
	}
	count, errCount := s.nativeCount()
	if errCount != nil {
		return fmt.Errorf("could not get property count: %s", errCount)
	}
	for i := 0; i < count; i++ {
		key, errKey := s.nativeKeyAt(i)
		if errKey != nil {
			return fmt.Errorf("could not get property key at index %d: %s", i, errKey)
		}
		if !fn(key) {
			break
		}
	}
	return nil
}

// EachProperty walks key/value pairs in native positional order. Keys holding an
// empty variant are passed with a nil value. Degrades like EachKey.
func (s *Store) EachProperty(fn func(key propsys.PROPERTYKEY, value interface{}) bool) error {
	var errValue error
	errWalk := s.EachKey(func(key propsys.PROPERTYKEY) bool {
		value, _, errGet := s.nativeValue(key)
		if errGet != nil {
			errValue = fmt.Errorf("could not get value of %s: %s", key.String(), errGet)
			return false
		}
		return fn(key, value)
	})
	if errWalk != nil {
		return errWalk
	}
	return errValue
}

// ContainsKey reports whether the store exposes the given key, also when the key
// holds an empty value. This distinguishes "key present but empty" (ContainsKey
// true, TryGet false) from "key absent" (both false).
func (s *Store) ContainsKey(key propsys.PROPERTYKEY) bool {
	found := false
	_ = s.EachKey(func(candidate propsys.PROPERTYKEY) bool {
		if candidate == key {
			found = true
			return false
		}
		return true
	})
	return found
}

// TryGet looks up one property value. It returns false for an absent key, an
// empty value or an unbindable store and never fails.
func (s *Store) TryGet(key propsys.PROPERTYKEY) (interface{}, bool) {
	if s.closed {
		return nil, false
	}
	if err := s.bind(); err != nil {
		s.logger.Debugf("Property lookup degraded for '%s': %s", s.path, err)
		return nil, false
	}
	value, present, errGet := s.nativeValue(key)
	if errGet != nil {
		s.logger.Debugf("Could not get value of %s from '%s': %s", key.String(), s.path, errGet)
		return nil, false
	}
	if !present {
		return nil, false
	}
	return value, true
}

// Get looks up one property value and demands a definite answer: an absent or
// empty value yields a KeyNotFoundError, a failed binding a BindError and a
// closed store a StoreClosedError.
func (s *Store) Get(key propsys.PROPERTYKEY) (interface{}, error) {
	if s.closed {
		return nil, &StoreClosedError{}
	}
	if err := s.bind(); err != nil {
		return nil, err
	}
	value, present, errGet := s.nativeValue(key)
	if errGet != nil {
		return nil, fmt.Errorf("could not get value of %s: %s", key.String(), errGet)
	}
	if !present {
		return nil, &KeyNotFoundError{Key: key}
	}
	return value, nil
}

// GetProperty retrieves the value of the given key and casts it to the requested
// type. A stored value whose runtime type is not assignable to T yields a
// TypeMismatchError.
func GetProperty[T any](s *Store, key propsys.PROPERTYKEY) (T, error) {
	var zero T
	value, errGet := s.Get(key)
	if errGet != nil {
		return zero, errGet
	}
	cast, ok := coerce[T](value)
	if !ok {
		return zero, &TypeMismatchError{
			Key:  key,
			Want: fmt.Sprintf("%T", zero),
			Got:  fmt.Sprintf("%T", value),
		}
	}
	return cast, nil
}

// coerce attempts the plain type assertion of a property value to the requested
// type. No numeric widening is applied, the native type decides.
func coerce[T any](value interface{}) (T, bool) {
	cast, ok := value.(T)
	return cast, ok
}

// DisplayString forwards the raw value of the given key to the property system's
// formatting service and returns the locale aware display string.
func (s *Store) DisplayString(key propsys.PROPERTYKEY) (string, error) {
	if s.closed {
		return "", &StoreClosedError{}
	}
	if err := s.bind(); err != nil {
		return "", err
	}
	return s.nativeDisplayString(key)
}

// Set stages a new value for the given key. The store must be bound writable
// (see SetReadOnly, SetTemporary). Changes become persistent with Commit.
func (s *Store) Set(key propsys.PROPERTYKEY, value interface{}) error {
	if s.closed {
		return &StoreClosedError{}
	}
	if s.flags.ReadOnly() {
		return fmt.Errorf("property store for '%s' is bound read-only", s.path)
	}
	if err := s.bind(); err != nil {
		return err
	}
	return s.nativeSetValue(key, value)
}

// Commit flushes staged property changes to the underlying item. Without a bound
// handle there is nothing to flush.
func (s *Store) Commit() error {
	if s.closed {
		return &StoreClosedError{}
	}
	if s.handle == nil {
		return nil
	}
	return s.nativeCommit()
}

// Close releases the native handle exactly once. Further calls are no-ops, a
// closed store degrades to empty results on aggregate operations and returns
// StoreClosedError on definite ones.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.handle != nil {
		s.release()
		s.handle = nil
	}
	return nil
}

// SetIncludeSlow toggles binding of slow properties. Enabling clears the
// temporary and fast-only bits.
func (s *Store) SetIncludeSlow(enable bool) {
	s.flags = normalize(s.flags, intentIncludeSlow, enable)
}

func (s *Store) IncludeSlow() bool {
	return s.flags.IncludeSlow()
}

// SetNoInheritedProperties restricts the store to properties of the item's own
// handler. Enabling clears the temporary and volatile-only bits.
func (s *Store) SetNoInheritedProperties(enable bool) {
	s.flags = normalize(s.flags, intentNoInheritedProperties, enable)
}

func (s *Store) NoInheritedProperties() bool {
	return s.flags.NoInheritedProperties()
}

// SetReadOnly toggles writability of the binding. Disabling read-only clears the
// delay-creation, temporary, best-effort and fast-only bits.
func (s *Store) SetReadOnly(enable bool) {
	s.flags = normalize(s.flags, intentReadOnly, enable)
}

func (s *Store) ReadOnly() bool {
	return s.flags.ReadOnly()
}

// SetTemporary binds a temporary in-memory store. Enabling resets the flag set
// to "temporary only" and forces it writable.
func (s *Store) SetTemporary(enable bool) {
	s.flags = normalize(s.flags, intentTemporary, enable)
}

func (s *Store) Temporary() bool {
	return s.flags.Temporary()
}

// GetPropertyKeyFromName translates a canonical property name like "System.Title"
// into its property key. An unregistered name yields a NameNotFoundError, other
// native failures pass through wrapped.
func GetPropertyKeyFromName(name string) (propsys.PROPERTYKEY, error) {
	if name == "" {
		return propsys.PROPERTYKEY{}, &ArgumentError{Name: "name"}
	}
	return propertyKeyFromName(name)
}

// Name resolves the canonical name registered for a property key.
func Name(key propsys.PROPERTYKEY) (string, error) {
	return nameFromKey(key)
}
