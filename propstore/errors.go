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
	"errors"
	"fmt"

	"go-shellprops/propsys"
)

// Sentinel errors for the error classes of this package. The concrete error types
// below attach details and can all be checked with errors.Is against these.
var (
	ErrNotFound        = errors.New("property not found")
	ErrTypeMismatch    = errors.New("property type mismatch")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnavailable     = errors.New("property store unavailable")
)

// KeyNotFoundError is returned by definite lookups when the store holds no value
// for the requested key.
type KeyNotFoundError struct {
	Key propsys.PROPERTYKEY
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("no property value for key %s", e.Key.String())
}

func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NameNotFoundError is returned when a canonical property name is not registered
// with the property system.
type NameNotFoundError struct {
	Name string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("property name '%s' is not registered", e.Name)
}

func (e *NameNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TypeMismatchError is returned by typed getters when the stored value cannot be
// cast to the requested type.
type TypeMismatchError struct {
	Key  propsys.PROPERTYKEY
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property %s holds %s, not %s", e.Key.String(), e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ArgumentError is returned for required arguments that were left empty. It is
// raised eagerly, before any native call.
type ArgumentError struct {
	Name string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be empty", e.Name)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// BindError is returned when the native property store could not be bound for an
// item path. It carries the underlying native error.
type BindError struct {
	Path string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("could not bind property store for '%s': %s", e.Path, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

func (e *BindError) Is(target error) bool {
	return target == ErrUnavailable
}

// StoreClosedError is returned by definite operations on a closed store.
type StoreClosedError struct{}

func (e *StoreClosedError) Error() string {
	return "property store is closed"
}

func (e *StoreClosedError) Is(target error) bool {
	return target == ErrUnavailable
}

// UnsupportedError is returned on platforms without a shell property system.
type UnsupportedError struct {
	Op string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s requires the Windows property system", e.Op)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnavailable
}
