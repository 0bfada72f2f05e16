package commands

import (
	"github.com/dawnzzz/simple-sets/database/collection"
	"github.com/dawnzzz/simple-sets/database/engine"
	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

// execPowerSet 计算幂集，回复中每个子集占一行
func execPowerSet(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	power, err := db.Sets().OperateUnary(string(args[0]), collection.OpPowerSet)
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	result := make([][]byte, 0, power.Len())
	power.ForEach(func(subset *dataset.DataSet[int64]) bool {
		result = append(result, []byte(subset.String()))
		return true
	})

	return reply.MakeMultiBulkStringReply(result), false
}

// execCartesian 计算笛卡尔积，序对按行优先顺序渲染在一行中
func execCartesian(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	product, err := db.Sets().CartesianProduct(string(args[0]), string(args[1]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	return reply.MakeBulkStringReply([]byte(product.String())), false
}

func init() {
	engine.RegisterCommand("PowerSet", execPowerSet, 2, engine.FlagReadOnly)
	engine.RegisterCommand("Cartesian", execCartesian, 3, engine.FlagReadOnly)
}
