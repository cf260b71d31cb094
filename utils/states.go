/*
* GoShellProps, a Go wrapper for the Windows Shell Property System, exposing file metadata as typed key/value maps.
*
* Copyright (c) Siemens AG, 2016-2021.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package utils

const (
	// Active states
	StatusRunning = "Running" // Walk is in progress

	// Success states
	StatusCompleted = "Completed"               // Walk ran through without significant issues
	StatusDeadline  = "Completed With Deadline" // Deadline (walk timeout) reached
	StatusSkipped   = "Skipped"                 // Entry point was excluded and not walked

	// Error states
	StatusFailed = "Failed" // Walk crashed or vanished (e.g. process restart, keyboard interrupt)
)
