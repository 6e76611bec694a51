// Package sheet loads spreadsheet, delimited and SQLite files into table
// workbooks and writes translated workbooks back in the input's format.
package sheet
