// Package filesystem mirrors a local folder into the document store.
//
// A Watcher registers for fsnotify events, scans the folder and then follows
// the events: created or written files are (re)ingested and removed or
// renamed files have their document deleted. Hidden files and subdirectories
// are ignored. The file-to-document mapping is saved to a hidden state file
// so a later run skips unchanged files and deletes the documents of files
// removed in the meantime.
package filesystem
