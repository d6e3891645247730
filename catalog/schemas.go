// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package catalog

import (
	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// ColumnsCatalogOID is the table id of the heap file holding one row per user column
const ColumnsCatalogOID = types.TableID(0)

const ColumnsCatalogName = "columns_catalog"

func ColumnsCatalogSchema() *schema.Schema {
	tableOIDColumn := column.NewColumn("table_oid", types.Integer)
	tableNameColumn := column.NewColumn("table_name", types.Varchar)
	colIdxColumn := column.NewColumn("col_idx", types.Integer)
	typeColumn := column.NewColumn("type", types.Integer)
	nameColumn := column.NewColumn("name", types.Varchar)

	return schema.NewSchema([]*column.Column{
		tableOIDColumn,
		tableNameColumn,
		colIdxColumn,
		typeColumn,
		nameColumn})
}
