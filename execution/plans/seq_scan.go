package plans

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/types"
)

// SeqScanPlanNode reads every tuple of a table. Output column names are
// prefixed with the alias.
type SeqScanPlanNode struct {
	*AbstractPlanNode
	tableOID types.TableID
	alias    string
}

func NewSeqScanPlanNode(tableSchema *schema.Schema, tableOID types.TableID, alias string) Plan {
	return &SeqScanPlanNode{&AbstractPlanNode{tableSchema.WithAlias(alias), nil}, tableOID, alias}
}

func (p *SeqScanPlanNode) GetTableOID() types.TableID {
	return p.tableOID
}

func (p *SeqScanPlanNode) GetAlias() string {
	return p.alias
}

func (p *SeqScanPlanNode) GetType() PlanType {
	return SeqScan
}

func (p *SeqScanPlanNode) GetDebugStr() string {
	return fmt.Sprintf("SeqScanPlanNode [ tableOID: %d alias: %s ]", p.tableOID, p.alias)
}
