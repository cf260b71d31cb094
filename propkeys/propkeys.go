/*
* GoShellProps, a Go wrapper for the Windows Shell Property System, exposing file metadata as typed key/value maps.
*
* Copyright (c) Siemens AG, 2016-2021.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package propkeys provides the property keys of commonly used shell properties
// as plain data, usable without a live property system. The authoritative list
// is the Windows property schema: https://docs.microsoft.com/en-us/windows/win32/properties/props
package propkeys

import (
	"github.com/go-ole/go-ole"

	"go-shellprops/propsys"
)

// Format ids grouping the well-known keys below.
var (
	fmtidSummaryInformation = *ole.NewGUID("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}")
	fmtidStorage            = *ole.NewGUID("{B725F130-47EF-101A-A5F1-02608C9EEBAC}")
	fmtidMisc               = *ole.NewGUID("{9B174B34-40FF-11D2-A27E-00C04FC30871}")
	fmtidInternetSite       = *ole.NewGUID("{0B63E350-9CCC-11D0-BCDB-00805FCCCCCC}")
	fmtidShellDetails       = *ole.NewGUID("{28636AA6-953D-11D2-B5D6-00C04FD918D0}")
	fmtidRating             = *ole.NewGUID("{64440492-4C8B-11D1-8B70-080036B11A03}")
	fmtidImageSummary       = *ole.NewGUID("{6444048F-4C8B-11D1-8B70-080036B11A03}")
	fmtidMedia              = *ole.NewGUID("{64440490-4C8B-11D1-8B70-080036B11A03}")
)

var (
	Title               = propsys.PROPERTYKEY{GUID: fmtidSummaryInformation, PID: 2}  // System.Title
	Subject             = propsys.PROPERTYKEY{GUID: fmtidSummaryInformation, PID: 3}  // System.Subject
	Author              = propsys.PROPERTYKEY{GUID: fmtidSummaryInformation, PID: 4}  // System.Author
	Keywords            = propsys.PROPERTYKEY{GUID: fmtidSummaryInformation, PID: 5}  // System.Keywords
	Comment             = propsys.PROPERTYKEY{GUID: fmtidSummaryInformation, PID: 6}  // System.Comment
	ApplicationName     = propsys.PROPERTYKEY{GUID: fmtidSummaryInformation, PID: 18} // System.ApplicationName
	ItemTypeText        = propsys.PROPERTYKEY{GUID: fmtidStorage, PID: 4}             // System.ItemTypeText
	ItemNameDisplay     = propsys.PROPERTYKEY{GUID: fmtidStorage, PID: 10}            // System.ItemNameDisplay
	Size                = propsys.PROPERTYKEY{GUID: fmtidStorage, PID: 12}            // System.Size
	FileAttributes      = propsys.PROPERTYKEY{GUID: fmtidStorage, PID: 13}            // System.FileAttributes
	DateModified        = propsys.PROPERTYKEY{GUID: fmtidStorage, PID: 14}            // System.DateModified
	DateCreated         = propsys.PROPERTYKEY{GUID: fmtidStorage, PID: 15}            // System.DateCreated
	DateAccessed        = propsys.PROPERTYKEY{GUID: fmtidStorage, PID: 16}            // System.DateAccessed
	FileOwner           = propsys.PROPERTYKEY{GUID: fmtidMisc, PID: 4}                // System.FileOwner
	MIMEType            = propsys.PROPERTYKEY{GUID: fmtidInternetSite, PID: 5}        // System.MIMEType
	PerceivedType       = propsys.PROPERTYKEY{GUID: fmtidShellDetails, PID: 9}        // System.PerceivedType
	Rating              = propsys.PROPERTYKEY{GUID: fmtidRating, PID: 9}              // System.Rating
	ImageDimensions     = propsys.PROPERTYKEY{GUID: fmtidImageSummary, PID: 13}       // System.Image.Dimensions
	ImageHorizontalSize = propsys.PROPERTYKEY{GUID: fmtidImageSummary, PID: 3}        // System.Image.HorizontalSize
	ImageVerticalSize   = propsys.PROPERTYKEY{GUID: fmtidImageSummary, PID: 4}        // System.Image.VerticalSize
	MediaDuration       = propsys.PROPERTYKEY{GUID: fmtidMedia, PID: 3}               // System.Media.Duration
)

// CanonicalNames maps every well-known key of this package to its canonical name,
// for lookups without a live property system (e.g. on other platforms).
var CanonicalNames = map[propsys.PROPERTYKEY]string{
	Title:               "System.Title",
	Subject:             "System.Subject",
	Author:              "System.Author",
	Keywords:            "System.Keywords",
	Comment:             "System.Comment",
	ApplicationName:     "System.ApplicationName",
	ItemTypeText:        "System.ItemTypeText",
	ItemNameDisplay:     "System.ItemNameDisplay",
	Size:                "System.Size",
	FileAttributes:      "System.FileAttributes",
	DateModified:        "System.DateModified",
	DateCreated:         "System.DateCreated",
	DateAccessed:        "System.DateAccessed",
	FileOwner:           "System.FileOwner",
	MIMEType:            "System.MIMEType",
	PerceivedType:       "System.PerceivedType",
	Rating:              "System.Rating",
	ImageDimensions:     "System.Image.Dimensions",
	ImageHorizontalSize: "System.Image.HorizontalSize",
	ImageVerticalSize:   "System.Image.VerticalSize",
	MediaDuration:       "System.Media.Duration",
}

// Name returns the canonical name of a well-known key, if this package knows it.
func Name(key propsys.PROPERTYKEY) (string, bool) {
	name, ok := CanonicalNames[key]
	return name, ok
}
