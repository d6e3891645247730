package expression

import "github.com/ryogrid/SimpleHeapDB/types"

type AbstractExpression struct {
	/** The children of this expression. Note that the order of appearance of children may matter. */
	children [2]Expression
	/** The return type of this expression. */
	ret_type types.TypeID
}

/** @return the child_idx'th child of this expression, nil when absent */
func (e *AbstractExpression) GetChildAt(child_idx uint32) Expression {
	if child_idx >= uint32(len(e.children)) {
		return nil
	}
	return e.children[child_idx]
}

func (e *AbstractExpression) SetChildAt(child_idx uint32, child Expression) {
	e.children[child_idx] = child
}

/** @return the type of this expression if it were to be evaluated */
func (e *AbstractExpression) GetReturnType() types.TypeID { return e.ret_type }
