package hash

import (
	"encoding/binary"
	"fmt"

	"github.com/ryogrid/SimpleHeapDB/types"
	"github.com/spaolacci/murmur3"
)

const prime_factor uint32 = 10000019

func hashBytes(bytes []byte, length uint32) uint32 {
	// https://github.com/greenplum-db/gpos/blob/b53c1acd6285de94044ff91fbee91589543feba1/libgpos/src/utils.cpp#L126
	var hash uint32 = length
	for i := 0; i < int(length); i++ {
		hash = ((hash << 5) ^ (hash >> 27)) ^ uint32(bytes[i])
	}
	return hash
}

func CombineHashes(l uint32, r uint32) uint32 {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf, l)
	binary.LittleEndian.PutUint32(buf[4:], r)
	return hashBytes(buf, 4*2)
}

func SumHashes(l uint32, r uint32) uint32 { return (l%prime_factor + r%prime_factor) % prime_factor }

/** @return the hash of the value */
func HashValue(val *types.Value) uint32 {
	switch val.ValueType() {
	case types.Integer, types.Varchar, types.Boolean:
		return GenHashMurMur(val.Serialize())
	default:
		panic(fmt.Sprintf("not supported type! %v", val.ValueType()))
	}
}

// HashValues folds the hashes of several values into one
func HashValues(vals []*types.Value) uint32 {
	var ret uint32
	for i, val := range vals {
		if i == 0 {
			ret = HashValue(val)
			continue
		}
		ret = CombineHashes(ret, HashValue(val))
	}
	return ret
}

func GenHashMurMur(key []byte) uint32 {
	h := murmur3.New128()
	h.Write(key)
	hash := h.Sum(nil)

	return binary.LittleEndian.Uint32(hash)
}
