// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package testing_util

import (
	"github.com/ryogrid/SimpleHeapDB/types"
)

func GetValue(data interface{}) (value types.Value) {
	switch v := data.(type) {
	case int:
		value = types.NewInteger(int32(v))
	case int32:
		value = types.NewInteger(v)
	case string:
		value = types.NewVarchar(v)
	case bool:
		value = types.NewBoolean(v)
	case *types.Value:
		return *v
	case types.Value:
		return v
	}
	return
}

func GetValueType(data interface{}) (value types.TypeID) {
	switch v := data.(type) {
	case int, int32:
		return types.Integer
	case string:
		return types.Varchar
	case bool:
		return types.Boolean
	case *types.Value:
		return v.ValueType()
	case types.Value:
		return v.ValueType()
	}
	panic("not implemented")
}

// GetValues converts a row of go literals to values
func GetValues(row ...interface{}) []types.Value {
	ret := make([]types.Value, 0, len(row))
	for _, data := range row {
		ret = append(ret, GetValue(data))
	}
	return ret
}
