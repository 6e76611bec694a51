// Package batch reads the list of spreadsheet files processed by
// sheettrans --batch.
package batch
