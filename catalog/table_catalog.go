// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package catalog

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ryogrid/SimpleHeapDB/common"
	"github.com/ryogrid/SimpleHeapDB/errors"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/buffer"
	"github.com/ryogrid/SimpleHeapDB/storage/disk"
	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// DiskManagerFactory opens the backing store of the named table
type DiskManagerFactory func(tableName string) (disk.DiskManager, error)

// Catalog maps table ids and names to schemas and heap files.
// Column definitions are persisted in the columns catalog heap file so a
// catalog over existing files can be rebuilt by BootstrapCatalog.
type Catalog struct {
	bpm            *buffer.BufferPoolManager
	openFile       DiskManagerFactory
	tableIds       map[types.TableID]*TableMetadata
	tableNames     map[string]*TableMetadata
	nextTableId    types.TableID
	columnsCatalog *access.HeapFile
	latch          common.ReaderWriterLatch
}

type tableEntry struct {
	name    string
	columns map[int32]*column.Column
}

// BootstrapCatalog opens the columns catalog and registers every table it lists.
// The catalog becomes the file resolver of bpm.
func BootstrapCatalog(bpm *buffer.BufferPoolManager, openFile DiskManagerFactory) (*Catalog, error) {
	dm, err := openFile(ColumnsCatalogName)
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		bpm:         bpm,
		openFile:    openFile,
		tableIds:    make(map[types.TableID]*TableMetadata),
		tableNames:  make(map[string]*TableMetadata),
		nextTableId: ColumnsCatalogOID + 1,
		latch:       common.NewRWLatch(),
	}
	c.columnsCatalog = access.NewHeapFile(ColumnsCatalogOID, ColumnsCatalogSchema(), dm, bpm)
	bpm.SetResolver(c)

	if err = c.reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) reload() error {
	entries := make(map[types.TableID]*tableEntry)
	catalogSchema := ColumnsCatalogSchema()

	it := c.columnsCatalog.Iterator(nil)
	if err := it.Open(); err != nil {
		return err
	}
	defer it.Close()
	for {
		hasNext, err := it.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			break
		}
		row, err := it.Next()
		if err != nil {
			return err
		}
		oid := types.TableID(row.GetValue(catalogSchema.GetColIndex("table_oid")).ToInteger())
		entry, ok := entries[oid]
		if !ok {
			entry = &tableEntry{row.GetValue(catalogSchema.GetColIndex("table_name")).ToVarchar(), make(map[int32]*column.Column)}
			entries[oid] = entry
		}
		colIdx := row.GetValue(catalogSchema.GetColIndex("col_idx")).ToInteger()
		colType := types.TypeID(row.GetValue(catalogSchema.GetColIndex("type")).ToInteger())
		colName := row.GetValue(catalogSchema.GetColIndex("name")).ToVarchar()
		entry.columns[colIdx] = column.NewColumn(colName, colType)
	}

	for oid, entry := range entries {
		columns := make([]*column.Column, len(entry.columns))
		for idx, col := range entry.columns {
			if int(idx) >= len(columns) {
				return fmt.Errorf("table %s: column index %d: %w", entry.name, idx, errors.ErrCorruptPage)
			}
			columns[idx] = col
		}
		dm, err := c.openFile(entry.name)
		if err != nil {
			return err
		}
		c.register(entry.name, access.NewHeapFile(oid, schema.NewSchema(columns), dm, c.bpm))
		if oid >= c.nextTableId {
			c.nextTableId = oid + 1
		}
		common.ShPrintf(common.INFO, "Catalog: reloaded table %s (oid %d)\n", entry.name, oid)
	}
	return nil
}

func (c *Catalog) register(name string, hf *access.HeapFile) *TableMetadata {
	tableMetadata := &TableMetadata{hf.GetSchema(), name, hf, hf.GetID()}
	if old, ok := c.tableNames[name]; ok {
		delete(c.tableIds, old.oid)
	}
	c.tableIds[hf.GetID()] = tableMetadata
	c.tableNames[name] = tableMetadata
	return tableMetadata
}

// CreateTable creates a new table and return its metadata.
// The column rows are inserted into the columns catalog as part of txn.
func (c *Catalog) CreateTable(name string, schema_ *schema.Schema, txn *access.Transaction) (*TableMetadata, error) {
	c.latch.WLock()
	if _, ok := c.tableNames[name]; ok {
		c.latch.WUnlock()
		return nil, fmt.Errorf("create table %s: %w", name, errors.ErrTableExists)
	}
	dm, err := c.openFile(name)
	if err != nil {
		c.latch.WUnlock()
		return nil, err
	}
	oid := c.nextTableId
	c.nextTableId++
	tableMetadata := c.register(name, access.NewHeapFile(oid, schema_, dm, c.bpm))
	c.latch.WUnlock()

	// outside of the latch: the insert resolves files through the catalog
	if err = c.insertTable(tableMetadata, txn); err != nil {
		return nil, err
	}
	return tableMetadata, nil
}

func (c *Catalog) insertTable(tableMetadata *TableMetadata, txn *access.Transaction) error {
	for i, col := range tableMetadata.schema.GetColumns() {
		row := make([]types.Value, 0)
		row = append(row, types.NewInteger(int32(tableMetadata.oid)))
		row = append(row, types.NewVarchar(tableMetadata.name))
		row = append(row, types.NewInteger(int32(i)))
		row = append(row, types.NewInteger(int32(col.GetType())))
		row = append(row, types.NewVarchar(col.GetColumnName()))
		new_tuple := tuple.NewTupleFromSchema(row, ColumnsCatalogSchema())

		if err := c.bpm.InsertTuple(txn, ColumnsCatalogOID, new_tuple); err != nil {
			return err
		}
	}
	return nil
}

// AddTable registers an existing heap file without persisting it.
// A table already registered under name is replaced.
func (c *Catalog) AddTable(hf *access.HeapFile, name string) *TableMetadata {
	c.latch.WLock()
	defer c.latch.WUnlock()
	if hf.GetID() >= c.nextTableId {
		c.nextTableId = hf.GetID() + 1
	}
	return c.register(name, hf)
}

func (c *Catalog) GetTableByName(table string) *TableMetadata {
	c.latch.RLock()
	defer c.latch.RUnlock()
	if table, ok := c.tableNames[table]; ok {
		return table
	}
	return nil
}

func (c *Catalog) GetTableByOID(oid types.TableID) *TableMetadata {
	c.latch.RLock()
	defer c.latch.RUnlock()
	if table, ok := c.tableIds[oid]; ok {
		return table
	}
	return nil
}

func (c *Catalog) GetTableID(name string) (types.TableID, error) {
	if tableMetadata := c.GetTableByName(name); tableMetadata != nil {
		return tableMetadata.oid, nil
	}
	return 0, fmt.Errorf("table %s: %w", name, errors.ErrTableNotFound)
}

func (c *Catalog) GetTableName(tableID types.TableID) (string, error) {
	if tableMetadata := c.GetTableByOID(tableID); tableMetadata != nil {
		return tableMetadata.name, nil
	}
	return "", fmt.Errorf("table %d: %w", tableID, errors.ErrTableNotFound)
}

// GetSchema returns the schema of the table
func (c *Catalog) GetSchema(tableID types.TableID) (*schema.Schema, error) {
	hf, err := c.GetDatabaseFile(tableID)
	if err != nil {
		return nil, err
	}
	return hf.GetSchema(), nil
}

// GetDatabaseFile returns the heap file backing the table
func (c *Catalog) GetDatabaseFile(tableID types.TableID) (*access.HeapFile, error) {
	if tableID == ColumnsCatalogOID && c.columnsCatalog != nil {
		return c.columnsCatalog, nil
	}
	if tableMetadata := c.GetTableByOID(tableID); tableMetadata != nil {
		return tableMetadata.table, nil
	}
	return nil, fmt.Errorf("table %d: %w", tableID, errors.ErrTableNotFound)
}

// TableIDs returns the ids of the user tables
func (c *Catalog) TableIDs() mapset.Set[types.TableID] {
	c.latch.RLock()
	defer c.latch.RUnlock()
	ret := mapset.NewSet[types.TableID]()
	for oid := range c.tableIds {
		ret.Add(oid)
	}
	return ret
}

// GetAllTables returns the user tables ordered by id
func (c *Catalog) GetAllTables() []*TableMetadata {
	c.latch.RLock()
	defer c.latch.RUnlock()
	ret := make([]*TableMetadata, 0, len(c.tableIds))
	for _, tableMetadata := range c.tableIds {
		ret = append(ret, tableMetadata)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].oid < ret[j].oid })
	return ret
}
