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
	"go-shellprops/propsys"
)

// Description carries the metadata the property system registers for a key. It is
// owned by the system-wide schema, not by any single item.
type Description struct {
	CanonicalName string
	DisplayName   string
	PropertyType  uint16 // Native VARTYPE values of this property are stored with
	DisplayType   uint32 // One of the propsys.PDDT_* values
	TypeFlags     uint32 // propsys.PDTF_* bits
}

// Descriptions is a read-only view mapping the parent store's keys to their
// registered property descriptions. Key membership, count and enumeration proxy
// to the parent store, resolved descriptions are cached on it.
type Descriptions struct {
	store *Store
}

// Descriptions returns the description view of this store. The view is cheap, it
// resolves descriptions lazily on first lookup.
func (s *Store) Descriptions() *Descriptions {
	return &Descriptions{store: s}
}

func (d *Descriptions) Count() int {
	return d.store.Count()
}

func (d *Descriptions) ContainsKey(key propsys.PROPERTYKEY) bool {
	return d.store.ContainsKey(key)
}

func (d *Descriptions) EachKey(fn func(key propsys.PROPERTYKEY) bool) error {
	return d.store.EachKey(fn)
}

// Get resolves the description registered for a key, consulting the per-store
// cache first. A key without registered description yields a KeyNotFoundError.
func (d *Descriptions) Get(key propsys.PROPERTYKEY) (*Description, error) {
	if cached, ok := d.store.descriptions[key]; ok {
		return cached, nil
	}
	description, errResolve := resolveDescription(key)
	if errResolve != nil {
		return nil, errResolve
	}
	if d.store.descriptions == nil {
		d.store.descriptions = make(map[propsys.PROPERTYKEY]*Description)
	}
	d.store.descriptions[key] = description
	return description, nil
}

// GetByName resolves the description registered for a canonical property name
// and caches it under the key it belongs to, shared with Get. An unregistered
// name yields a NameNotFoundError.
func (d *Descriptions) GetByName(name string) (*Description, error) {
	if name == "" {
		return nil, &ArgumentError{Name: "name"}
	}
	key, description, errResolve := resolveDescriptionByName(name)
	if errResolve != nil {
		return nil, errResolve
	}
	if cached, ok := d.store.descriptions[key]; ok {
		return cached, nil
	}
	if d.store.descriptions == nil {
		d.store.descriptions = make(map[propsys.PROPERTYKEY]*Description)
	}
	d.store.descriptions[key] = description
	return description, nil
}

// TryGet is the non-failing variant of Get.
func (d *Descriptions) TryGet(key propsys.PROPERTYKEY) (*Description, bool) {
	description, errGet := d.Get(key)
	if errGet != nil {
		return nil, false
	}
	return description, true
}
