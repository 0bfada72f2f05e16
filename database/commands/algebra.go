package commands

import (
	"github.com/dawnzzz/simple-sets/database/collection"
	"github.com/dawnzzz/simple-sets/database/engine"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

// execOperate 执行一个二元算子，结果不注册，直接渲染后返回
func execOperate(db *engine.DB, op string, args [][]byte) (wire.Reply, bool) {
	result, err := db.Sets().Operate(string(args[0]), op, string(args[1]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	return reply.MakeBulkStringReply([]byte(result.String())), false
}

func execUnion(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	return execOperate(db, collection.OpUnion, args)
}

func execIntersection(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	return execOperate(db, collection.OpIntersection, args)
}

func execDifference(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	return execOperate(db, collection.OpDifference, args)
}

func execSymmetricDifference(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	return execOperate(db, collection.OpSymmetricDifference, args)
}

// execStore 执行一个二元算子，并以给定的名字注册结果
func execStore(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	dest := string(args[0])
	result, err := db.Sets().Operate(string(args[1]), string(args[2]), string(args[3]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	result.SetName(dest)
	db.Sets().AddSet(result)

	return reply.MakeOkReply(), true
}

func execIsSubset(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	a, err := db.Sets().GetSet(string(args[0]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}
	b, err := db.Sets().GetSet(string(args[1]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	if a.IsSubset(b) {
		return reply.MakeIntReply(1), false
	}

	return reply.MakeIntReply(0), false
}

func execIsEqual(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	a, err := db.Sets().GetSet(string(args[0]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}
	b, err := db.Sets().GetSet(string(args[1]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	if a.Equals(b) {
		return reply.MakeIntReply(1), false
	}

	return reply.MakeIntReply(0), false
}

func init() {
	engine.RegisterCommand("Union", execUnion, 3, engine.FlagReadOnly)
	engine.RegisterCommand("Intersection", execIntersection, 3, engine.FlagReadOnly)
	engine.RegisterCommand("Difference", execDifference, 3, engine.FlagReadOnly)
	engine.RegisterCommand("Symmetric_Difference", execSymmetricDifference, 3, engine.FlagReadOnly)
	engine.RegisterCommand("Store", execStore, 5, engine.FlagWrite)
	engine.RegisterCommand("IsSubset", execIsSubset, 3, engine.FlagReadOnly)
	engine.RegisterCommand("IsEqual", execIsEqual, 3, engine.FlagReadOnly)
}
