package main

import "database/sql"

func nullString(str *string) sql.NullString {
	if str == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *str, Valid: true}
}

func nullStringPtr(str sql.NullString) *string {
	if !str.Valid {
		return nil
	}
	return &str.String
}
