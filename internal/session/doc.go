// Package session holds the state behind the translator front ends: which
// file is loaded, which sheet is selected, and the translate-and-save
// action that runs against it.
package session
