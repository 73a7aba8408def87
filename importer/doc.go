// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package importer seeds the terms table from a delimited text file or an
XLSX workbook.

# File Format

The first row is a header. Two columns are read, named by
data_import.category_column (default "Kategorie") and
data_import.term_column (default "Item"). Other columns are ignored. Rows
where either value is blank after trimming are skipped, as are pairs that
already exist.

# Encodings

CSV files are decoded with the configured encoding first, then utf-8,
latin-1, iso-8859-1 and cp1252 in that order. UTF-8 candidates are
rejected on invalid byte sequences; a leading byte order mark is dropped.
Files ending in .xlsx are read with excelize from data_import.sheet or the
first sheet.

# Startup

ImportIfEmpty is run at startup and after a full admin reset. It does
nothing when terms already exist and treats a missing file as a warning.
*/
package importer
