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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-ole/go-ole"

	"go-shellprops/propsys"
	"go-shellprops/utils"
)

var testKey = propsys.PROPERTYKEY{GUID: *ole.NewGUID("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}"), PID: 2}

// missingItemStore returns a store prepared for a path that does not exist.
func missingItemStore(t *testing.T) *Store {
	t.Helper()
	store, errNew := New(utils.NewTestLogger(), filepath.Join(os.TempDir(), "does-not-exist-1a2b3c", "missing.txt"), 0, nil)
	if errNew != nil {
		t.Fatalf("New() error = '%v'", errNew)
	}
	return store
}

func TestNew_argumentChecks(t *testing.T) {
	_, errNew := New(utils.NewTestLogger(), "", 0, nil)
	if !errors.Is(errNew, ErrInvalidArgument) {
		t.Errorf("New() with empty path, error = '%v', want ErrInvalidArgument", errNew)
	}
}

func TestNew_normalizesPath(t *testing.T) {
	store, errNew := New(utils.NewTestLogger(), filepath.Join("some", "relative", "file.txt"), 0, nil)
	if errNew != nil {
		t.Errorf("New() error = '%v'", errNew)
		return
	}
	defer func() {
		_ = store.Close()
	}()
	if !filepath.IsAbs(store.Path()) {
		t.Errorf("Path() = '%s', want an absolute path", store.Path())
	}
}

// Binding to a nonexistent item must degrade to empty results on aggregate
// operations, while definite lookups report the store as unavailable.
func TestStore_degradeOnMissingItem(t *testing.T) {
	store := missingItemStore(t)
	defer func() {
		_ = store.Close()
	}()

	if got := store.Count(); got != 0 {
		t.Errorf("Count() = '%d', want = 0", got)
	}
	if got := store.Keys(); len(got) != 0 {
		t.Errorf("Keys() = '%v', want empty", got)
	}
	if store.ContainsKey(testKey) {
		t.Errorf("ContainsKey() = true, want = false")
	}
	if value, ok := store.TryGet(testKey); ok || value != nil {
		t.Errorf("TryGet() = ('%v', '%v'), want = (nil, false)", value, ok)
	}
	if errWalk := store.EachKey(func(key propsys.PROPERTYKEY) bool {
		t.Errorf("EachKey() invoked callback for key '%v' on an unbindable store", key)
		return false
	}); errWalk != nil {
		t.Errorf("EachKey() error = '%v', want = nil", errWalk)
	}

	// Definite lookups must not degrade
	if _, errGet := store.Get(testKey); !errors.Is(errGet, ErrUnavailable) {
		t.Errorf("Get() error = '%v', want ErrUnavailable", errGet)
	}
	if _, errGet := GetProperty[string](store, testKey); !errors.Is(errGet, ErrUnavailable) {
		t.Errorf("GetProperty() error = '%v', want ErrUnavailable", errGet)
	}
	if _, errDisplay := store.DisplayString(testKey); !errors.Is(errDisplay, ErrUnavailable) {
		t.Errorf("DisplayString() error = '%v', want ErrUnavailable", errDisplay)
	}
}

func TestStore_descriptionsProxy(t *testing.T) {
	store := missingItemStore(t)
	defer func() {
		_ = store.Close()
	}()

	descriptions := store.Descriptions()
	if got := descriptions.Count(); got != 0 {
		t.Errorf("Descriptions().Count() = '%d', want = 0", got)
	}
	if descriptions.ContainsKey(testKey) {
		t.Errorf("Descriptions().ContainsKey() = true, want = false")
	}
	if _, errName := descriptions.GetByName(""); !errors.Is(errName, ErrInvalidArgument) {
		t.Errorf("Descriptions().GetByName(\"\") error = '%v', want ErrInvalidArgument", errName)
	}
}

func TestStore_closeIdempotent(t *testing.T) {
	store := missingItemStore(t)

	if errClose := store.Close(); errClose != nil {
		t.Errorf("Close() error = '%v'", errClose)
	}
	if errClose := store.Close(); errClose != nil {
		t.Errorf("Second Close() error = '%v'", errClose)
	}

	// Aggregates degrade, definite operations report the closed store
	if got := store.Count(); got != 0 {
		t.Errorf("Count() after Close() = '%d', want = 0", got)
	}
	if got := store.Keys(); len(got) != 0 {
		t.Errorf("Keys() after Close() = '%v', want empty", got)
	}
	if _, errGet := store.Get(testKey); !errors.Is(errGet, ErrUnavailable) {
		t.Errorf("Get() after Close() error = '%v', want ErrUnavailable", errGet)
	}
	if errSet := store.Set(testKey, "value"); !errors.Is(errSet, ErrUnavailable) {
		t.Errorf("Set() after Close() error = '%v', want ErrUnavailable", errSet)
	}
	if errCommit := store.Commit(); !errors.Is(errCommit, ErrUnavailable) {
		t.Errorf("Commit() after Close() error = '%v', want ErrUnavailable", errCommit)
	}
}

func TestStore_flagSetters(t *testing.T) {
	store := missingItemStore(t)
	defer func() {
		_ = store.Close()
	}()

	// Fresh store binds read-only by default
	if !store.ReadOnly() {
		t.Errorf("ReadOnly() = false on a default store, want = true")
	}

	// Temporary forces writable
	store.SetTemporary(true)
	if !store.Temporary() {
		t.Errorf("Temporary() = false after SetTemporary(true)")
	}
	if store.ReadOnly() {
		t.Errorf("ReadOnly() = true after SetTemporary(true), want = false")
	}

	// Read-only afterwards stays internally consistent
	store.SetReadOnly(true)
	if !store.ReadOnly() {
		t.Errorf("ReadOnly() = false after SetReadOnly(true)")
	}
	if store.Temporary() {
		t.Errorf("Temporary() = true after SetReadOnly(true), want = false")
	}
	if !store.NoInheritedProperties() {
		t.Errorf("NoInheritedProperties() = false after SetReadOnly(true), want = true")
	}

	// Slow properties
	store.SetIncludeSlow(true)
	if !store.IncludeSlow() {
		t.Errorf("IncludeSlow() = false after SetIncludeSlow(true)")
	}
	store.SetIncludeSlow(false)
	if store.IncludeSlow() {
		t.Errorf("IncludeSlow() = true after SetIncludeSlow(false)")
	}
}

func TestStore_setRequiresWritable(t *testing.T) {
	store := missingItemStore(t)
	defer func() {
		_ = store.Close()
	}()
	if errSet := store.Set(testKey, "value"); errSet == nil {
		t.Errorf("Set() on a read-only store succeeded, want an error")
	}
}

func TestCoerce(t *testing.T) {
	if got, ok := coerce[string]("title"); !ok || got != "title" {
		t.Errorf("coerce[string]() = ('%v', '%v'), want = ('title', true)", got, ok)
	}
	if got, ok := coerce[int32](int32(7)); !ok || got != 7 {
		t.Errorf("coerce[int32]() = ('%v', '%v'), want = (7, true)", got, ok)
	}
	if _, ok := coerce[int32](int64(7)); ok { // No numeric widening
		t.Errorf("coerce[int32](int64) = true, want = false")
	}
	if _, ok := coerce[string](nil); ok {
		t.Errorf("coerce[string](nil) = true, want = false")
	}
	if got, ok := coerce[time.Time](time.Time{}); !ok || !got.IsZero() {
		t.Errorf("coerce[time.Time]() = ('%v', '%v'), want zero time", got, ok)
	}
}

func TestGetPropertyKeyFromName_argumentChecks(t *testing.T) {
	if _, errGet := GetPropertyKeyFromName(""); !errors.Is(errGet, ErrInvalidArgument) {
		t.Errorf("GetPropertyKeyFromName(\"\") error = '%v', want ErrInvalidArgument", errGet)
	}
}
