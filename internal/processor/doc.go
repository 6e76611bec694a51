// Package processor contains the headless workflow of sheettrans. It
// builds the translation provider from flags and configuration, loads
// input files into a session, runs the column translation with a
// progress bar and prints a summary. It also launches the GUI.
package processor
