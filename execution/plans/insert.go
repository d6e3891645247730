// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package plans

import (
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/types"
)

/**
 * InsertPlanNode identifies a table that should be inserted into.
 * The tuples to be inserted come from the only child of the InsertPlanNode.
 * A ValuesPlanNode child serves a "raw insert".
 */
type InsertPlanNode struct {
	*AbstractPlanNode
	tableOID types.TableID
}

// NewInsertPlanNode creates a new insert plan node, its output is one (Inserted) count tuple
func NewInsertPlanNode(child Plan, oid types.TableID) Plan {
	return &InsertPlanNode{&AbstractPlanNode{makeCountOutputSchema("Inserted"), []Plan{child}}, oid}
}

// GetTableOID returns the identifier of the table that should be inserted into
func (p *InsertPlanNode) GetTableOID() types.TableID {
	return p.tableOID
}

func (p *InsertPlanNode) GetType() PlanType {
	return Insert
}

func (p *InsertPlanNode) GetDebugStr() string {
	return fmt.Sprintf("InsertPlanNode [ tableOID: %d ]", p.tableOID)
}
