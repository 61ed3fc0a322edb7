// Package downloader saves images and other linked files to disk.
//
// A Downloader derives a local file name from each target with the
// filename package, fetches the bytes through a Getter and writes them
// into its directory. Existing files with the same name are overwritten.
//
// Batches can run sequentially with SaveAll, which stops at the first
// failure, or concurrently with SaveConcurrently, which runs every target
// to completion on a bounded number of goroutines and reports all
// failures together.
package downloader
