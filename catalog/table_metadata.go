package catalog

import (
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/types"
)

type TableMetadata struct {
	schema *schema.Schema
	name   string
	table  *access.HeapFile
	oid    types.TableID
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.schema
}

func (t *TableMetadata) OID() types.TableID {
	return t.oid
}

func (t *TableMetadata) Table() *access.HeapFile {
	return t.table
}

func (t *TableMetadata) Name() string {
	return t.name
}
