// Package sheets retrieves transfer-portal spreadsheet tabs through the
// Google Sheets API.
//
// Rows come back as ordered cell strings with bounds-checked access, because
// the source sheets represent empty trailing columns by omitting them rather
// than by empty strings. Column semantics belong to the caller; each portal
// source declares its own layout in configuration.
package sheets
