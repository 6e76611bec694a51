// Package table holds the in-memory tabular model (cells, datasets and
// multi-sheet workbooks) and the column translation loop that rewrites
// selected columns through a translation provider.
package table
