package testing_tbl_gen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ryogrid/SimpleHeapDB/catalog"
	"github.com/ryogrid/SimpleHeapDB/execution/expression"
	"github.com/ryogrid/SimpleHeapDB/storage/access"
	"github.com/ryogrid/SimpleHeapDB/storage/buffer"
	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/storage/tuple"
	"github.com/ryogrid/SimpleHeapDB/types"
)

type ColumnInsertMeta struct {
	/**
	 * Name of the column
	 */
	Name_ string
	/**
	 * Type of the column
	 */
	Type_ types.TypeID
	/**
	 * Distribution of values
	 */
	Dist_ int32
	/**
	 * min value of the column
	 */
	Min_ int32
	/**
	 * max value of the column
	 */
	Max_ int32
	/**
	 * Counter to generate serial data
	 */
	Serial_counter_ int32
}

type TableInsertMeta struct {
	/**
	 * Name of the table
	 */
	Name_ string
	/**
	 * Number of rows
	 */
	Num_rows_ uint32
	/**
	 * Columns
	 */
	Col_meta_ []*ColumnInsertMeta
}

const DistSerial int32 = 0
const DistUniform int32 = 1

const TEST1_SIZE uint32 = 1000
const TEST2_SIZE uint32 = 100

var rnd = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenNumericValues yields Serial_counter_, Serial_counter_+1, ... for DistSerial
// and values drawn uniformly from [Min_, Max_] for DistUniform
func GenNumericValues(col_meta *ColumnInsertMeta, count uint32) []types.Value {
	var values []types.Value
	if col_meta.Dist_ == DistSerial {
		for i := 0; i < int(count); i++ {
			values = append(values, types.NewInteger(col_meta.Serial_counter_))
			col_meta.Serial_counter_ += 1
		}
		return values
	}

	for i := 0; i < int(count); i++ {
		values = append(values, types.NewInteger(col_meta.Min_+rnd.Int31n(col_meta.Max_-col_meta.Min_+1)))
	}
	return values
}

// GenStringValues formats the generated integers as fixed width strings so
// that string order follows integer order
func GenStringValues(col_meta *ColumnInsertMeta, count uint32) []types.Value {
	var values []types.Value
	for _, v := range GenNumericValues(col_meta, count) {
		values = append(values, types.NewVarchar(fmt.Sprintf("s%08d", v.ToInteger())))
	}
	return values
}

func MakeValues(col_meta *ColumnInsertMeta, count uint32) []types.Value {
	switch col_meta.Type_ {
	case types.Integer:
		return GenNumericValues(col_meta, count)
	case types.Varchar:
		return GenStringValues(col_meta, count)
	default:
		panic("Not yet implemented")
	}
}

// FillTable inserts table_meta.Num_rows_ generated rows through the buffer pool as part of txn
func FillTable(bpm *buffer.BufferPoolManager, info *catalog.TableMetadata, table_meta *TableInsertMeta, txn *access.Transaction) error {
	var num_inserted uint32 = 0
	var batch_size uint32 = 128
	for num_inserted < table_meta.Num_rows_ {
		var values [][]types.Value
		num_values := batch_size
		if table_meta.Num_rows_-num_inserted < batch_size {
			num_values = table_meta.Num_rows_ - num_inserted
		}
		for _, col_meta := range table_meta.Col_meta_ {
			values = append(values, MakeValues(col_meta, num_values))
		}

		for i := 0; i < int(num_values); i++ {
			var entry []types.Value
			for idx := range table_meta.Col_meta_ {
				entry = append(entry, values[idx][i])
			}
			tuple_ := tuple.NewTupleFromSchema(entry, info.Schema())
			if err := bpm.InsertTuple(txn, info.OID(), tuple_); err != nil {
				return fmt.Errorf("FillTable %s: %w", table_meta.Name_, err)
			}
			num_inserted++
		}
	}
	return nil
}

func MakeColumnValueExpression(schema_ *schema.Schema, colName string) expression.Expression {
	colIdx := schema_.GetColIndex(colName)
	return expression.NewColumnValue(colIdx, schema_.GetColumn(colIdx).GetType())
}

func MakeComparisonExpression(lhs expression.Expression, rhs expression.Expression,
	comp_type expression.ComparisonType) expression.Expression {
	return expression.NewComparison(lhs, rhs, comp_type)
}

func MakeConstantValueExpression(val *types.Value) expression.Expression {
	return expression.NewConstantValue(*val)
}

// GenerateTestTables creates test_1 (TEST1_SIZE rows) and test_2 (TEST2_SIZE rows).
// colA and col1 are serial from 0, the other columns are uniform.
func GenerateTestTables(c *catalog.Catalog, bpm *buffer.BufferPoolManager,
	txn *access.Transaction) (*catalog.TableMetadata, *catalog.TableMetadata, error) {
	columnA := column.NewColumn("colA", types.Integer)
	columnB := column.NewColumn("colB", types.Integer)
	columnC := column.NewColumn("colC", types.Integer)
	columnD := column.NewColumn("colD", types.Varchar)
	schema_ := schema.NewSchema([]*column.Column{columnA, columnB, columnC, columnD})
	tableMetadata1, err := c.CreateTable("test_1", schema_, txn)
	if err != nil {
		return nil, nil, err
	}

	column1 := column.NewColumn("col1", types.Integer)
	column2 := column.NewColumn("col2", types.Integer)
	schema_ = schema.NewSchema([]*column.Column{column1, column2})
	tableMetadata2, err := c.CreateTable("test_2", schema_, txn)
	if err != nil {
		return nil, nil, err
	}

	tableMeta1 := &TableInsertMeta{"test_1",
		TEST1_SIZE,
		[]*ColumnInsertMeta{
			{"colA", types.Integer, DistSerial, 0, 0, 0},
			{"colB", types.Integer, DistUniform, 0, 9, 0},
			{"colC", types.Integer, DistUniform, 0, 9999, 0},
			{"colD", types.Varchar, DistUniform, 0, 99999, 0},
		}}
	tableMeta2 := &TableInsertMeta{"test_2",
		TEST2_SIZE,
		[]*ColumnInsertMeta{
			{"col1", types.Integer, DistSerial, 0, 0, 0},
			{"col2", types.Integer, DistUniform, 0, 9, 0},
		}}
	if err = FillTable(bpm, tableMetadata1, tableMeta1, txn); err != nil {
		return nil, nil, err
	}
	if err = FillTable(bpm, tableMetadata2, tableMeta2, txn); err != nil {
		return nil, nil, err
	}
	return tableMetadata1, tableMetadata2, nil
}
