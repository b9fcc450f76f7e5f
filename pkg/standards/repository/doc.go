// Package repository stores and retrieves the standards hierarchy.
//
// A Repository holds the node forest and the standards attached to its
// leaves, enforces structural validity on writes (including rejecting
// parent links that would create a cycle), and answers the central
// read-side query: which standards apply to a design with the given
// dimension values.
//
// Two implementations are provided. MemoryRepository keeps everything
// in process memory and backs tests and directory-loaded deployments;
// SQLiteRepository persists to a local SQLite database for designs
// edited across sessions. LoadDirectory fills a repository from a
// directory of standards YAML files, and FileWatcher reloads it when
// those files change.
package repository
