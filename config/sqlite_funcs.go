package config

import (
	"database/sql/driver"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
)

// unicode_lower is LOWER with full Unicode case folding; SQLite's builtin
// only folds ASCII. It is available on every SQLite connection opened after
// this package loads.
func init() {
	gosqlite.MustRegisterDeterministicScalarFunction("unicode_lower", 1, unicodeLower)
}

func unicodeLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
