package db

import "database/sql"

// NullIfEmpty helps store optional strings without writing empty values.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// StringOrEmpty unwraps a nullable text column.
func StringOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// Int64Ptr unwraps a nullable integer column into a pointer.
func Int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
