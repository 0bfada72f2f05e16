package engine

import (
	"strings"
	"testing"

	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/lib/utils"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
)

func init() {
	// 引擎包内注册两条测试命令，正式命令在 database/commands 中注册
	RegisterCommand("echoadd", func(db *DB, args [][]byte) (wire.Reply, bool) {
		db.Sets().AddSet(dataset.Make[int64](string(args[0])))
		return reply.MakeOkReply(), true
	}, 2, FlagWrite)
	RegisterCommand("echolen", func(db *DB, args [][]byte) (wire.Reply, bool) {
		return reply.MakeIntReply(int64(db.Sets().Len())), false
	}, 1, FlagReadOnly)
}

func TestDB_Exec(t *testing.T) {
	db := MakeDB()

	r := db.Exec(nil, utils.StringsToCmdLine("echoadd", "A"))
	if _, ok := r.(*reply.OkReply); !ok {
		t.Error("echoadd error, reply=", string(r.ToBytes()))
	}
	if !db.Sets().HasSet("A") {
		t.Error("echoadd did not register the set")
	}

	r = db.Exec(nil, utils.StringsToCmdLine("echolen"))
	intReply, ok := r.(*reply.IntReply)
	if !ok || intReply.Code != 1 {
		t.Error("echolen error, reply=", string(r.ToBytes()))
	}
}

func TestDB_ExecUnknownCommand(t *testing.T) {
	db := MakeDB()

	r := db.Exec(nil, utils.StringsToCmdLine("frobnicate", "A"))
	if !strings.Contains(string(r.ToBytes()), "ERR unknown command 'frobnicate'") {
		t.Error("unknown command error, reply=", string(r.ToBytes()))
	}
}

func TestDB_ExecArity(t *testing.T) {
	db := MakeDB()

	// echoadd 需要恰好一个参数
	r := db.Exec(nil, utils.StringsToCmdLine("echoadd"))
	if !strings.Contains(string(r.ToBytes()), "wrong number of arguments") {
		t.Error("arity check error, reply=", string(r.ToBytes()))
	}
	r = db.Exec(nil, utils.StringsToCmdLine("echoadd", "A", "B"))
	if !strings.Contains(string(r.ToBytes()), "wrong number of arguments") {
		t.Error("arity check error, reply=", string(r.ToBytes()))
	}
}

func TestValidateArity(t *testing.T) {
	cmdLine := utils.StringsToCmdLine("define", "A", "1", "2")
	if !validateArity(-2, cmdLine) {
		t.Error("variadic arity error")
	}
	if !validateArity(4, cmdLine) {
		t.Error("exact arity error")
	}
	if validateArity(-5, cmdLine) {
		t.Error("variadic arity lower bound error")
	}
	if validateArity(3, cmdLine) {
		t.Error("exact arity mismatch error")
	}
}

func TestDB_Journal(t *testing.T) {
	db := MakeDB()

	var journaled []CmdLine
	db.SetAddJournal(func(line CmdLine) {
		journaled = append(journaled, line)
	})

	// 写命令记录日志
	db.Exec(nil, utils.StringsToCmdLine("echoadd", "A"))
	if len(journaled) != 1 {
		t.Fatal("write command not journaled")
	}
	if got := string(journaled[0][0]); got != "echoadd" {
		t.Error("journaled wrong command:", got)
	}

	// 只读命令不记录日志
	db.Exec(nil, utils.StringsToCmdLine("echolen"))
	if len(journaled) != 1 {
		t.Error("read only command journaled")
	}

	// 失败的命令（未知命令、参数错误）不记录日志
	db.Exec(nil, utils.StringsToCmdLine("frobnicate"))
	db.Exec(nil, utils.StringsToCmdLine("echoadd"))
	if len(journaled) != 1 {
		t.Error("failed command journaled")
	}
}

func TestDB_ForEach(t *testing.T) {
	db := MakeDB()
	for _, name := range []string{"B", "A", "C"} {
		db.Sets().AddSet(dataset.Make[int64](name))
	}

	var names []string
	db.ForEach(func(name string, set *dataset.DataSet[int64]) bool {
		names = append(names, name)
		return true
	})

	if len(names) != 3 || names[0] != "B" || names[1] != "A" || names[2] != "C" {
		t.Error("ForEach order error, names=", names)
	}

	db.Flush()
	if db.Sets().Len() != 0 {
		t.Error("Flush error")
	}
}

func TestIsReadOnlyCommand(t *testing.T) {
	if !IsReadOnlyCommand("echolen") {
		t.Error("echolen should be read only")
	}
	if IsReadOnlyCommand("echoadd") {
		t.Error("echoadd should not be read only")
	}
	if IsReadOnlyCommand("nosuchcmd") {
		t.Error("unknown command should not be read only")
	}
}
