// Package notes implements the notes browser backend: it fetches the flat
// note path listing from the gateway, strips the fixed storage prefix, and
// builds the folder tree the panel renders.
package notes
