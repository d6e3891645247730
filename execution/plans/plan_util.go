package plans

import (
	"strings"

	"github.com/ryogrid/SimpleHeapDB/storage/table/column"
	"github.com/ryogrid/SimpleHeapDB/storage/table/schema"
	"github.com/ryogrid/SimpleHeapDB/types"
)

func makeCountOutputSchema(name string) *schema.Schema {
	return schema.NewSchema([]*column.Column{column.NewColumn(name, types.Integer)})
}

// PlanTreeString renders the plan tree, one node per line, children indented
func PlanTreeString(plan Plan) string {
	var sb strings.Builder
	writePlanTree(&sb, plan, 0)
	return sb.String()
}

func writePlanTree(sb *strings.Builder, plan Plan, indent int) {
	for ii := 0; ii < indent; ii++ {
		sb.WriteString(" ")
	}
	sb.WriteString(plan.GetDebugStr())
	sb.WriteString("\n")

	for _, child := range plan.GetChildren() {
		writePlanTree(sb, child, indent+2)
	}
}
