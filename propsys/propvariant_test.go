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
	"reflect"
	"runtime"
	"testing"
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-ole/go-ole"
)

// utf16Z encodes a string as NUL terminated UTF16 for synthetic LPWSTR variants.
func utf16Z(s string) []uint16 {
	return append(utf16.Encode([]rune(s)), 0)
}

func TestPropVariant_ValueExt_scalars(t *testing.T) {

	// Prepare and run test cases
	tests := []struct {
		name    string
		prepare func(pv *PROPVARIANT) interface{} // Fills the variant, returns data to keep alive
		want    interface{}
		wantErr bool
	}{
		{
			"empty",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_EMPTY
				return nil
			},
			nil,
			false,
		},
		{
			"null",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_NULL
				return nil
			},
			nil,
			false,
		},
		{
			"i4",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_I4
				pv.Val = 42
				return nil
			},
			int32(42),
			false,
		},
		{
			"ui8",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_UI8
				pv.Val = 1337
				return nil
			},
			uint64(1337),
			false,
		},
		{
			"bool-true",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_BOOL
				pv.Val = -1
				return nil
			},
			true,
			false,
		},
		{
			"r8",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_R8
				*(*float64)(unsafe.Pointer(&pv.Val)) = 3.25
				return nil
			},
			3.25,
			false,
		},
		{
			"lpwstr",
			func(pv *PROPVARIANT) interface{} {
				buf := utf16Z("Property Store")
				pv.VT = ole.VT_LPWSTR
				*(**uint16)(unsafe.Pointer(&pv.Val)) = &buf[0]
				return buf
			},
			"Property Store",
			false,
		},
		{
			"filetime",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_FILETIME
				pv.Val = 132223104000000000 // 2020-01-01T00:00:00Z
				return nil
			},
			time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"filetime-zero",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_FILETIME
				return nil
			},
			time.Time{},
			false,
		},
		{
			"error-scode",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_ERROR
				pv.Val = int64(int32(-2147024891)) // E_ACCESSDENIED
				return nil
			},
			int32(-2147024891),
			false,
		},
		{
			"unsupported",
			func(pv *PROPVARIANT) interface{} {
				pv.VT = ole.VT_VARIANT
				return nil
			},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pv PROPVARIANT
			keepAlive := tt.prepare(&pv)
			got, err := pv.ValueExt()
			runtime.KeepAlive(keepAlive)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValueExt() error = '%v', wantErr = '%v'", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValueExt() = %s, want = %s", spew.Sdump(got), spew.Sdump(tt.want))
			}
		})
	}
}

func TestPropVariant_ValueExt_blob(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	var pv PROPVARIANT
	pv.VT = ole.VT_BLOB
	pv.setUnionPair(uint32(len(data)), unsafe.Pointer(&data[0]))

	got, err := pv.ValueExt()
	runtime.KeepAlive(data)
	if err != nil {
		t.Errorf("ValueExt() error = '%v'", err)
		return
	}
	if !reflect.DeepEqual(got, data) {
		t.Errorf("ValueExt() = '%v', want = '%v'", got, data)
	}
}

func TestPropVariant_ValueExt_vectors(t *testing.T) {

	t.Run("ui4-vector", func(t *testing.T) {
		elems := []uint32{1, 2, 3}
		var pv PROPVARIANT
		pv.VT = ole.VT_VECTOR | ole.VT_UI4
		pv.setUnionPair(uint32(len(elems)), unsafe.Pointer(&elems[0]))

		got, err := pv.ValueExt()
		runtime.KeepAlive(elems)
		if err != nil {
			t.Errorf("ValueExt() error = '%v'", err)
			return
		}
		if !reflect.DeepEqual(got, elems) {
			t.Errorf("ValueExt() = '%v', want = '%v'", got, elems)
		}
	})

	t.Run("bool-vector", func(t *testing.T) {
		elems := []int16{-1, 0, -1} // VARIANT_BOOL values
		var pv PROPVARIANT
		pv.VT = ole.VT_VECTOR | ole.VT_BOOL
		pv.setUnionPair(uint32(len(elems)), unsafe.Pointer(&elems[0]))

		got, err := pv.ValueExt()
		runtime.KeepAlive(elems)
		if err != nil {
			t.Errorf("ValueExt() error = '%v'", err)
			return
		}
		if want := []bool{true, false, true}; !reflect.DeepEqual(got, want) {
			t.Errorf("ValueExt() = '%v', want = '%v'", got, want)
		}
	})

	t.Run("lpwstr-vector", func(t *testing.T) {
		first := utf16Z("alpha")
		second := utf16Z("beta")
		ptrs := []*uint16{&first[0], &second[0]}
		var pv PROPVARIANT
		pv.VT = ole.VT_VECTOR | ole.VT_LPWSTR
		pv.setUnionPair(uint32(len(ptrs)), unsafe.Pointer(&ptrs[0]))

		got, err := pv.ValueExt()
		runtime.KeepAlive(first)
		runtime.KeepAlive(second)
		runtime.KeepAlive(ptrs)
		if err != nil {
			t.Errorf("ValueExt() error = '%v'", err)
			return
		}
		if want := []string{"alpha", "beta"}; !reflect.DeepEqual(got, want) {
			t.Errorf("ValueExt() = '%v', want = '%v'", got, want)
		}
	})

	t.Run("empty-vector", func(t *testing.T) {
		var pv PROPVARIANT
		pv.VT = ole.VT_VECTOR | ole.VT_I4

		got, err := pv.ValueExt()
		if err != nil {
			t.Errorf("ValueExt() error = '%v'", err)
			return
		}
		if want := []int32{}; !reflect.DeepEqual(got, want) {
			t.Errorf("ValueExt() = '%v', want = '%v'", got, want)
		}
	})

	t.Run("unsupported-vector", func(t *testing.T) {
		var pv PROPVARIANT
		pv.VT = ole.VT_VECTOR | ole.VT_VARIANT
		_, err := pv.ValueExt()
		if err == nil {
			t.Errorf("ValueExt() expected an error for unsupported vector type")
		}
	})
}

func TestFiletimeConversion_roundTrip(t *testing.T) {
	stamp := time.Date(2021, 6, 15, 12, 30, 45, 500, time.UTC).Truncate(100 * time.Nanosecond)
	if got := filetimeToTime(timeToFiletime(stamp)); !got.Equal(stamp) {
		t.Errorf("filetimeToTime(timeToFiletime()) = '%v', want = '%v'", got, stamp)
	}
	if got := timeToFiletime(time.Time{}); got != 0 {
		t.Errorf("timeToFiletime(zero) = '%v', want = 0", got)
	}
}
