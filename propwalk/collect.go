/*
* GoShellProps, a Go wrapper for the Windows Shell Property System, exposing file metadata as typed key/value maps.
*
* Copyright (c) Siemens AG, 2016-2021.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propwalk

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"go-shellprops/propstore"
	"go-shellprops/utils"
)

// Collect takes property snapshots of an explicit list of files, without traversing any
// folder structure. Paths pointing to folders or missing files are skipped with a debug
// message. The context cancels outstanding work, files already snapshotted are returned.
func Collect(ctx context.Context, logger utils.Logger, paths []string, includeSlow bool) ([]*Snapshot, error) {

	// Check that a context is set
	if ctx == nil {
		return nil, fmt.Errorf("invalid context")
	}

	// Prepare OS for property access
	errPrepare := propstore.Initialize(logger)
	if errPrepare != nil {
		logger.Errorf("Error while preparing property access: %s", errPrepare)
	} else {
		// Prepare OS cleanup
		defer propstore.Uninitialize()
	}

	// Prepare a walker carrying the property settings for snapshot completion
	walker := &Walker{
		logger:      logger,
		includeSlow: includeSlow,
	}

	// Prepare synchronized result collection
	var lock sync.Mutex
	var snapshots []*Snapshot

	// Process the files in parallel, bounded by the available cores
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())
	for _, path := range paths {
		path := path
		group.Go(func() error {

			// Stop launching work once the context is done
			if errCtx := groupCtx.Err(); errCtx != nil {
				return errCtx
			}

			// Get more info about file, skip entries that cannot be read
			info, errStat := os.Lstat(path)
			if errStat != nil {
				logger.Debugf("Could not get file info of '%s': %s", path, errStat)
				return nil
			}

			// Skip folders, this interface is about explicit files
			if info.IsDir() {
				logger.Debugf("Skipping folder '%s'.", path)
				return nil
			}

			// Create snapshot with basic information
			snapshot := walker.newSnapshot(path, info, 0)

			// Determine access, mime type and shell properties. Symlinks only get their
			// permissions resolved, properties are not read through the link.
			if snapshot.IsSymlink {
				determineSymlinkPermissions(snapshot, logger)
			} else {
				walker.completeSnapshot(snapshot, logger)
			}

			// Append snapshot to results
			lock.Lock()
			snapshots = append(snapshots, snapshot)
			lock.Unlock()
			return nil
		})
	}

	// Wait for all files to be processed
	errGroup := group.Wait()

	// Sort results for a stable order, goroutine completion order is not deterministic
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Path < snapshots[j].Path
	})

	// Return snapshots together with a potential cancellation error
	return snapshots, errGroup
}
