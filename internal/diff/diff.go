// Package diff computes per-table change sets between the previously
// snapshotted schema and the freshly extracted one.
package diff

import "github.com/schemaforge/schemaforge/pkg/schema"

// DBColumns returns the columns that materialize in the database:
// everything except ignored columns and the primary key, which is
// declared separately.
func DBColumns(s *schema.Schema) []schema.Column {
	var pkName string
	if s.PrimaryKey != nil {
		pkName = s.PrimaryKey.Name
	}
	var cols []schema.Column
	for _, c := range s.Columns {
		if c.Ignored || c.Name == pkName {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// NewTable builds the change set for a table with no previous
// snapshot: every db column is added, nothing is dropped or modified.
func NewTable(current *schema.Schema) schema.Changes {
	return schema.Changes{
		TableName:    current.TableName,
		AddedColumns: DBColumns(current),
		AddedFKs:     append([]schema.ForeignKey(nil), current.ForeignKeys...),
		AddedIndexes: append([]schema.Index(nil), current.Indexes...),
		IsNewTable:   true,
	}
}

// Diff compares two revisions of one table. Columns are matched by
// name; any attribute delta on a surviving column lands in
// ModifiedColumns, never in added and dropped at once. Foreign keys
// and indexes only ever add or drop: an attribute change on either is
// a drop paired with an add, which downstream alter consumers rely on.
func Diff(previous, current *schema.Schema) schema.Changes {
	prevCols := DBColumns(previous)
	currCols := DBColumns(current)

	prevByName := make(map[string]schema.Column, len(prevCols))
	for _, c := range prevCols {
		prevByName[c.Name] = c
	}
	currByName := make(map[string]schema.Column, len(currCols))
	for _, c := range currCols {
		currByName[c.Name] = c
	}

	ch := schema.Changes{TableName: current.TableName}

	for _, c := range currCols {
		prev, ok := prevByName[c.Name]
		if !ok {
			ch.AddedColumns = append(ch.AddedColumns, c)
			continue
		}
		if prev.Type != c.Type || prev.Nullable != c.Nullable || prev.Unique != c.Unique {
			ch.ModifiedColumns = append(ch.ModifiedColumns, schema.ModifiedColumn{Old: prev, New: c})
		}
	}
	for _, c := range prevCols {
		if _, ok := currByName[c.Name]; !ok {
			ch.DroppedColumns = append(ch.DroppedColumns, c.Name)
		}
	}

	prevFKs := make(map[string]bool, len(previous.ForeignKeys))
	for _, fk := range previous.ForeignKeys {
		prevFKs[fk.Identity()] = true
	}
	currFKs := make(map[string]bool, len(current.ForeignKeys))
	for _, fk := range current.ForeignKeys {
		currFKs[fk.Identity()] = true
	}
	for _, fk := range current.ForeignKeys {
		if !prevFKs[fk.Identity()] {
			ch.AddedFKs = append(ch.AddedFKs, fk)
		}
	}
	for _, fk := range previous.ForeignKeys {
		if !currFKs[fk.Identity()] {
			ch.DroppedFKs = append(ch.DroppedFKs, fk)
		}
	}

	prevIdx := make(map[string]bool, len(previous.Indexes))
	for _, idx := range previous.Indexes {
		prevIdx[idx.Name] = true
	}
	currIdx := make(map[string]bool, len(current.Indexes))
	for _, idx := range current.Indexes {
		currIdx[idx.Name] = true
	}
	for _, idx := range current.Indexes {
		if !prevIdx[idx.Name] {
			ch.AddedIndexes = append(ch.AddedIndexes, idx)
		}
	}
	for _, idx := range previous.Indexes {
		if !currIdx[idx.Name] {
			ch.DroppedIndexes = append(ch.DroppedIndexes, idx)
		}
	}

	return ch
}
