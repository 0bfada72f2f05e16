package commands

import (
	"strconv"

	"github.com/dawnzzz/simple-sets/database/engine"
	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

func execDefine(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	name := string(args[0])

	// 先解析所有成员，任何一个成员非法都不修改注册表
	members := make([]int64, 0, len(args)-1)
	for _, arg := range args[1:] {
		member, err := strconv.ParseInt(string(arg), 10, 64)
		if err != nil {
			return reply.MakeErrReply("ERR value is not an integer or out of range"), false
		}
		members = append(members, member)
	}

	db.Sets().AddSet(dataset.Make(name, members...))

	return reply.MakeOkReply(), true
}

func execInsert(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	name := string(args[0])
	member, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		return reply.MakeErrReply("ERR value is not an integer or out of range"), false
	}

	if err := db.Sets().InsertInto(name, member); err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	return reply.MakeOkReply(), true
}

func execPrint(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	set, err := db.Sets().GetSet(string(args[0]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	return reply.MakeBulkStringReply([]byte(set.String())), false
}

func execSize(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	set, err := db.Sets().GetSet(string(args[0]))
	if err != nil {
		return reply.MakeErrReply("ERR " + err.Error()), false
	}

	return reply.MakeIntReply(int64(set.Len())), false
}

func execNames(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	names := db.Sets().SetNames()
	if len(names) == 0 {
		return reply.MakeEmptyMultiBulkStringReply(), false
	}

	result := make([][]byte, 0, len(names))
	for _, name := range names {
		result = append(result, []byte(name))
	}

	return reply.MakeMultiBulkStringReply(result), false
}

func execHas(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	if db.Sets().HasSet(string(args[0])) {
		return reply.MakeIntReply(1), false
	}

	return reply.MakeIntReply(0), false
}

func execClear(db *engine.DB, args [][]byte) (wire.Reply, bool) {
	db.Flush()

	return reply.MakeOkReply(), true
}

func init() {
	engine.RegisterCommand("Define", execDefine, -2, engine.FlagWrite)
	engine.RegisterCommand("Insert", execInsert, 3, engine.FlagWrite)
	engine.RegisterCommand("Print", execPrint, 2, engine.FlagReadOnly)
	engine.RegisterCommand("Size", execSize, 2, engine.FlagReadOnly)
	engine.RegisterCommand("Names", execNames, 1, engine.FlagReadOnly)
	engine.RegisterCommand("Has", execHas, 2, engine.FlagReadOnly)
	engine.RegisterCommand("Clear", execClear, 1, engine.FlagWrite)
}
