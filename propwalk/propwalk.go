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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"go-shellprops/propstore"
	"go-shellprops/utils"
)

// Snapshot describes one file discovered during a walk, including the shell
// properties that could be read for it.
type Snapshot struct {
	Path         string
	Name         string
	Extension    string // Without "."
	Mime         string
	Readable     bool
	Writable     bool
	Flags        string // Unix permission bits, empty on Windows
	SizeKb       int64
	LastModified time.Time
	Depth        int
	IsSymlink    bool
	Properties   map[string]string // Canonical property name mapped to its display string
}

type Result struct {
	FoldersReadable int
	FilesReadable   int
	FilesWritable   int
	Data            []*Snapshot
	Status          string // Final walk status (success or graceful error). Should be stored along with the results.
	Exception       bool   // Indicates if something went wrong badly and results shall be discarded. This should never be
	// true, because all errors should be handled gracefully. Logging an error message should always precede setting
	// this flag! This flag may additionally come along with a message put into the Status attribute.
}

// Intermediate result containing the processed file to be returned and new tasks (unprocessed folders and files)
type processResult struct {
	isReadableDir bool // Is needed for calculating how many folders were walked (we don't count unaccessible ones)
	data          *Snapshot
	newTasks      []*task
}

// For every file or folder a task is created with attributes describing the object to be processed
type task struct {
	path     string
	isFolder bool // Identifies for what process this task is meant
	isRoot   bool // The entry point itself, never excluded by folder name
	depth    int  // Depth of the resource below the entry point
}

// Walker traverses a directory tree and takes a property Snapshot of every file
// that passes its exclusion filters.
type Walker struct {
	logger                    utils.Logger
	walkDepth                 int
	excludedFolders           map[string]struct{} // Lowercase folder names to skip
	excludedExtensions        map[string]struct{} // Lowercase file extensions without '.' to skip
	excludedLastModifiedBelow time.Time
	excludedFileSizeBelow     int64
	onlyAccessibleFiles       bool      // Whether to only return files that are at least read or writable
	includeSlow               bool      // Whether to also bind slow item properties
	threads                   int       // Amount of goroutines processing files in parallel
	deadline                  time.Time // Time at which the walker has to abort
}

func NewWalker(
	logger utils.Logger,
	maxDepth int,
	excludedFolders []string,
	excludedExtensions []string,
	excludedLastModifiedBelow time.Time,
	excludedFileSizeBelow int64,
	onlyAccessibleFiles bool,
	includeSlow bool,
	threads int,
	deadline time.Time,
) *Walker {

	// Make sure at least one walker thread is set
	if threads <= 0 {
		threads = 1
	}
	return &Walker{
		logger:                    logger,
		walkDepth:                 maxDepth,
		excludedFolders:           toLookupMap(excludedFolders),
		excludedExtensions:        toLookupMap(excludedExtensions),
		excludedLastModifiedBelow: excludedLastModifiedBelow,
		excludedFileSizeBelow:     excludedFileSizeBelow,
		onlyAccessibleFiles:       onlyAccessibleFiles,
		includeSlow:               includeSlow,
		threads:                   threads,
		deadline:                  deadline,
	}
}

// toLookupMap normalizes exclusion values and converts them for fast lookups.
func toLookupMap(values []string) map[string]struct{} {
	lookup := make(map[string]struct{}, len(values))
	for _, value := range utils.TrimToLower(values) {
		lookup[value] = struct{}{}
	}
	return lookup
}

// Walk traverses the filesystem beginning at the given root. For every element it
// discovers, a new processing task is generated, back-feeding the walker.
func (w *Walker) Walk(root string) *Result {

	// Initialize result data
	result := &Result{
		Status: utils.StatusCompleted,
	}

	// Check that the root is set
	if root == "" {
		w.logger.Debugf("Invalid walk entry point.")
		return result
	}

	// Check whether access is possible
	rootInfo, errStat := os.Lstat(root)
	if errStat != nil {
		if pErr, ok := errStat.(*os.PathError); ok {
			w.logger.Debugf("Could not get root info of '%s': %s", pErr.Path, pErr.Err)
		}
		return result
	}

	// Prepare OS for property access
	errPrepare := propstore.Initialize(w.logger)
	if errPrepare != nil {
		w.logger.Errorf("Error while preparing property access: %s", errPrepare)
	} else {
		// Prepare OS cleanup
		defer propstore.Uninitialize()
	}

	// Log start of walking
	w.logger.Debugf("Walking entry point '%s'.", root)

	// Create first task to be processed
	rootTask := &task{
		path:     root,
		isFolder: rootInfo.IsDir(),
		isRoot:   true,
		depth:    0,
	}

	// Start walking-loop at the root and fill the result struct
	w.run(rootTask, result)

	// Check whether the walk was ended due to the timeout
	if utils.DeadlineReached(w.deadline) {
		w.logger.Debugf("Property walk finished with timeout.")
		result.Status = utils.StatusDeadline
		result.Exception = false
		return result
	}

	// Return result
	w.logger.Debugf("Property walk finished.")
	return result
}

// run orchestrates the walk by looping, starting new processes and receiving process results
func (w *Walker) run(rootTask *task, result *Result) {

	// Initialize walker process slots, counter and return channel
	var processCount = 0                             // Counting processed elements
	var processActive = 0                            // Counter required to decide if all goroutines have terminated
	var chThrottle = make(chan struct{}, w.threads)  // A channel instead of an integer will allow to wait via select
	var chProcessResults = make(chan *processResult) // Channel containing results returned by a walker process
	var queue []*task

	// Create and append first task, which is the root object
	queue = append(queue, rootTask)

	// Define closure to launch a new goroutine if possible. Not blocking. Returns true if something could be launched.
	launchFunc := func() bool {
		if len(queue) > 0 {
			select {
			case chThrottle <- struct{}{}: // Launch goroutine for next queue item
				processActive++
				if queue[0].isFolder {
					go w.processFolder(queue[0], processCount, chProcessResults)
				} else {
					go w.processFile(queue[0], processCount, chProcessResults)
				}
				queue = queue[1:]
				processCount += 1
				return true
			default:
				return false
			}
		}
		return false
	}

	// Define closure to receive (blocking)
	receiveFunc := func() {
		procRes := <-chProcessResults
		// Release slot and decrease goroutine counter
		<-chThrottle
		processActive--

		if procRes.isReadableDir {
			result.FoldersReadable++
		}
		if procRes.newTasks != nil {
			queue = append(queue, procRes.newTasks...)
		}
		if procRes.data != nil {
			// Add snapshot to walk results
			result.Data = append(result.Data, procRes.data)
			if procRes.data.Readable {
				result.FilesReadable++
			}
			if procRes.data.Writable {
				result.FilesWritable++
			}
		}
	}

	// Manage walking. Launch new tasks, listen for results and queue new elements until done or timeout
	for {

		// Do not continue feeding the walker if the deadline is reached
		if utils.DeadlineReached(w.deadline) {
			break
		}

		// Terminate queue if empty and no more walking goroutines active
		if len(queue) == 0 && processActive == 0 {
			break
		}

		// Launch goroutine for next element if possible
		if len(queue) > 0 && launchFunc() {
			continue // Try launching further element as long as possible
		}

		// Wait for data to be processed (blocking)
		receiveFunc()
	}

	// Wait for remaining goroutines to finish (relevant in case of timeout)
	for processActive > 0 {
		w.logger.Debugf("Waiting for remaining %d goroutines.", processActive)
		receiveFunc()
	}
}

// processFolder processes a folder, retrieving its contents. The folder is skipped, if the max depth is reached.
func (w *Walker) processFolder(folderTask *task, processId int, chProcessResults chan<- *processResult) {

	// Wrap logger again with local tag to connect log messages of this goroutine
	processLogger := utils.NewTaggedLogger(w.logger, fmt.Sprintf("t%03d", processId))

	// Recover from unexpected panics within this goroutine, the walk continues without this subtree
	defer func() {
		if r := recover(); r != nil {
			processLogger.Errorf(
				"Panic while processing folder '%s': %s%s", folderTask.path, r, utils.StacktraceIndented("\t"))
			chProcessResults <- &processResult{}
		}
	}()

	// Walk depth corresponds to the fs level, 1 means content of starting folder, -1 all content.
	// It is ">=" instead of ">", because with ">" the content would have a greater depth than the walk depth.
	if folderTask.depth >= w.walkDepth && w.walkDepth > -1 {
		chProcessResults <- &processResult{}
		return
	}

	// Get more info about folder, if not possible then abort
	info, errStat := os.Lstat(folderTask.path)
	if errStat != nil {
		pErr, ok := errStat.(*os.PathError)
		if ok && !(errors.Is(pErr, os.ErrPermission) || pErr.Err.Error() == os.ErrPermission.Error()) {
			w.logger.Debugf("Could not get folder info of '%s': %s", pErr.Path, pErr.Err)
		}
		chProcessResults <- &processResult{}
		return
	}

	// If it is not the entry point, check if it is excluded
	_, contained := w.excludedFolders[strings.ToLower(info.Name())]
	if contained && !folderTask.isRoot {
		chProcessResults <- &processResult{}
		return
	}

	// Skip symlinks to folders to avoid cycles
	if info.Mode()&os.ModeSymlink != 0 {
		chProcessResults <- &processResult{}
		return
	}

	// Get all folders and files
	content, errDir := os.ReadDir(folderTask.path)
	if errDir != nil { // Log if an unexpected error occurred
		pErr, ok := errDir.(*os.PathError)
		if ok && !(errors.Is(pErr, os.ErrPermission) || pErr.Err.Error() == os.ErrPermission.Error()) {
			processLogger.Debugf("Could not get folder content of '%s': %s", pErr.Path, pErr.Err)
		}
		chProcessResults <- &processResult{}
		return
	}

	// Create new tasks to be returned
	var newTasks []*task
	for _, entry := range content {
		newTasks = append(newTasks, &task{
			path:     filepath.Join(folderTask.path, entry.Name()),
			isFolder: entry.IsDir(),
			isRoot:   false,
			depth:    folderTask.depth + 1,
		})
	}

	// Return results
	chProcessResults <- &processResult{
		isReadableDir: true,
		data:          nil,
		newTasks:      newTasks,
	}
}

// processFile checks if a file is not excluded by some criteria and determines its attributes and properties
func (w *Walker) processFile(fileTask *task, processId int, chProcessResults chan<- *processResult) {

	// Wrap logger again with local tag to connect log messages of this goroutine
	processLogger := utils.NewTaggedLogger(w.logger, fmt.Sprintf("t%03d", processId))

	// Recover from unexpected panics within this goroutine, the walk continues without this file
	defer func() {
		if r := recover(); r != nil {
			processLogger.Errorf(
				"Panic while processing file '%s': %s%s", fileTask.path, r, utils.StacktraceIndented("\t"))
			chProcessResults <- &processResult{}
		}
	}()

	// Get more info about file, if not possible then abort
	info, errStat := os.Lstat(fileTask.path)
	if errStat != nil {
		pErr, ok := errStat.(*os.PathError)
		if ok && !(errors.Is(pErr, os.ErrPermission) || pErr.Err.Error() == os.ErrPermission.Error()) {
			w.logger.Debugf("Could not get file info of '%s': %s", pErr.Path, pErr.Err)
		}
		chProcessResults <- &processResult{}
		return
	}

	// Create snapshot with basic information
	snapshot := w.newSnapshot(fileTask.path, info, fileTask.depth)

	// Check if file is excluded by size
	if snapshot.SizeKb < w.excludedFileSizeBelow {
		chProcessResults <- &processResult{} // Empty data set will not cause any change in the result data
		return
	}

	// Check if file is excluded by modification date
	if snapshot.LastModified.Before(w.excludedLastModifiedBelow) {
		chProcessResults <- &processResult{}
		return
	}

	// Check if file is excluded by file extension
	if _, contained := w.excludedExtensions[strings.ToLower(snapshot.Extension)]; contained {
		chProcessResults <- &processResult{}
		return
	}

	// Use a special routine for symlink files, since the usual routine would mostly follow the link
	if snapshot.IsSymlink {
		determineSymlinkPermissions(snapshot, processLogger)

		// If w.onlyAccessibleFiles = true, then only files which are readable or writable are desired
		if w.onlyAccessibleFiles && !snapshot.Readable && !snapshot.Writable {
			chProcessResults <- &processResult{}
			return
		}

		// Return symlink info, no properties are read through the link
		chProcessResults <- &processResult{
			data:     snapshot,
			newTasks: nil,
		}
		return
	}

	// Determine access, mime type and shell properties
	w.completeSnapshot(snapshot, processLogger)

	// If w.onlyAccessibleFiles = true, then only files which are readable or writable are desired
	if w.onlyAccessibleFiles && !snapshot.Readable && !snapshot.Writable {
		chProcessResults <- &processResult{}
		return
	}

	// Send snapshot and return
	chProcessResults <- &processResult{
		data:     snapshot,
		newTasks: nil,
	}
}

// newSnapshot fills the snapshot attributes that can be read from the file info.
func (w *Walker) newSnapshot(path string, info os.FileInfo, depth int) *Snapshot {
	return &Snapshot{
		Path:         path,
		Name:         info.Name(),
		Extension:    strings.ReplaceAll(filepath.Ext(info.Name()), ".", ""),
		Flags:        getUnixFlags(info.Mode()),
		SizeKb:       info.Size() / 1000,
		LastModified: info.ModTime(),
		Depth:        depth,
		IsSymlink:    info.Mode()&os.ModeSymlink != 0,
		Properties:   map[string]string{},
	}
}

// completeSnapshot fills the access, mime and property attributes of a regular file snapshot.
func (w *Walker) completeSnapshot(snapshot *Snapshot, logger utils.Logger) {

	// Check read rights
	readable, errRead := accessFile(snapshot.Path, os.O_RDONLY)
	if errRead != nil {
		logger.Debugf("Could not fully detect file permissions: %s", errRead)
	}
	snapshot.Readable = readable

	// Check write rights
	writable, errWrite := accessFile(snapshot.Path, os.O_WRONLY)
	if errWrite != nil {
		logger.Debugf("Could not fully detect file permissions: %s", errWrite)
	}
	snapshot.Writable = writable

	// Get mime type
	mime, errMime := mimetype.DetectFile(snapshot.Path)
	if errMime != nil {
		pErr, ok := errMime.(*os.PathError)
		if ok && !(errors.Is(pErr, os.ErrPermission) || pErr.Err.Error() == os.ErrPermission.Error()) {
			logger.Debugf("Could not detect the mime-type of '%s': %s", pErr.Path, pErr.Err)
		}
	}

	// According to the documentation this function will always return a valid mime struct, but let's be sure anyway.
	if mime != nil {
		snapshot.Mime = mime.String()
	}

	// Get the shell properties
	snapshot.Properties = w.collectProperties(snapshot.Path, logger)
}

// accessFile detects and returns if a file could be opened with a given flag (eg. readable/writable). If an error
// (other than a permission error) occurred, it is returned.
func accessFile(path string, flag int) (opened bool, err error) {

	// Try to open the file
	file, errOpen := os.OpenFile(path, flag, 0644) // The perm attribute does not matter, since no file is created
	if errOpen != nil {

		// Try to cast to path error
		errPath, isPathError := errOpen.(*os.PathError)

		// Check if it is a permission denied error, if yes return that file could not be opened
		if isPathError && (errors.Is(errPath, os.ErrPermission) || errPath.Err.Error() == os.ErrPermission.Error()) {
			return false, nil
		}

		// Return that file could not be opened, together with the unexpected error
		return false, errOpen
	}

	// Close file handle again
	errClose := file.Close()
	if errClose != nil {
		return true, errClose
	}

	// Return that file could be opened
	return true, nil
}
