// Package report presents the outcome of a sync pass: PrintNotifier writes the events
// for a person to read, Archiver keeps a JSON copy of every pass in object storage.
package report
