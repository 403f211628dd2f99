package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of an existing table.
type ColumnInfo struct {
	Field    string
	Type     string
	Nullable bool
	Primary  bool
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	migrator := db.Migrator()
	if !migrator.HasTable(tableName) {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}

	types, err := migrator.ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(types))
	for _, ct := range types {
		col := ColumnInfo{
			Field: strings.ToLower(ct.Name()),
			Type:  strings.ToLower(ct.DatabaseTypeName()),
		}
		if nullable, ok := ct.Nullable(); ok {
			col.Nullable = nullable
		}
		if pk, ok := ct.PrimaryKey(); ok {
			col.Primary = pk
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// MissingTables returns the tables of models that do not exist yet.
func MissingTables(db *gorm.DB, models ...any) []string {
	var missing []string
	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			continue
		}
		if !db.Migrator().HasTable(stmt.Schema.Table) {
			missing = append(missing, stmt.Schema.Table)
		}
	}
	return missing
}

// MissingColumns returns, per existing table of models, the columns the model declares
// that the table lacks. Tables that do not exist are left to MissingTables.
func MissingColumns(db *gorm.DB, models ...any) (map[string][]string, error) {
	missing := make(map[string][]string)
	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("failed to parse model: %w", err)
		}
		table := stmt.Schema.Table
		if !db.Migrator().HasTable(table) {
			continue
		}

		columns, err := GetTableColumns(db, table)
		if err != nil {
			return nil, err
		}
		have := make(map[string]struct{}, len(columns))
		for _, c := range columns {
			have[c.Field] = struct{}{}
		}
		for _, f := range stmt.Schema.Fields {
			if f.DBName == "" {
				continue
			}
			if _, ok := have[strings.ToLower(f.DBName)]; !ok {
				missing[table] = append(missing[table], f.DBName)
			}
		}
	}
	return missing, nil
}
