package commands_test

import (
	"testing"

	"github.com/dawnzzz/simple-sets/database/engine"
	"github.com/dawnzzz/simple-sets/interface/wire"
	"github.com/dawnzzz/simple-sets/lib/utils"
	"github.com/dawnzzz/simple-sets/wire/protocol/reply"
	"github.com/stretchr/testify/assert"
)

func exec(db *engine.DB, args ...string) wire.Reply {
	return db.Exec(nil, utils.StringsToCmdLine(args...))
}

func makeTestDB(t *testing.T) *engine.DB {
	db := engine.MakeDB()
	assert.IsType(t, &reply.OkReply{}, exec(db, "define", "A", "1", "2", "3"))
	assert.IsType(t, &reply.OkReply{}, exec(db, "define", "B", "2", "3", "4"))
	return db
}

func TestDefine(t *testing.T) {
	db := makeTestDB(t)

	assert.Equal(t, "A = {1, 2, 3}", exec(db, "print", "A").DataString())

	t.Run("duplicates collapse", func(t *testing.T) {
		exec(db, "define", "D", "1", "1", "2", "1")
		assert.Equal(t, "D = {1, 2}", exec(db, "print", "D").DataString())
	})

	t.Run("empty set", func(t *testing.T) {
		exec(db, "define", "E")
		assert.Equal(t, "E = {}", exec(db, "print", "E").DataString())
	})

	t.Run("redefine replaces members", func(t *testing.T) {
		exec(db, "define", "A", "7")
		assert.Equal(t, "A = {7}", exec(db, "print", "A").DataString())
		exec(db, "define", "A", "1", "2", "3")
	})

	t.Run("rejects non integer members", func(t *testing.T) {
		r := exec(db, "define", "X", "1", "two")
		assert.Equal(t, "(error) ERR value is not an integer or out of range", r.DataString())
		// 整条命令被拒绝，不会注册集合
		assert.Equal(t, "(integer) 0", exec(db, "has", "X").DataString())
	})

	t.Run("command names are case insensitive", func(t *testing.T) {
		assert.IsType(t, &reply.OkReply{}, exec(db, "DEFINE", "U", "5"))
		assert.Equal(t, "U = {5}", exec(db, "Print", "U").DataString())
	})
}

func TestInsert(t *testing.T) {
	db := makeTestDB(t)

	assert.IsType(t, &reply.OkReply{}, exec(db, "insert", "A", "4"))
	assert.Equal(t, "A = {1, 2, 3, 4}", exec(db, "print", "A").DataString())

	// 重复插入是无操作
	exec(db, "insert", "A", "4")
	assert.Equal(t, "A = {1, 2, 3, 4}", exec(db, "print", "A").DataString())

	r := exec(db, "insert", "missing", "1")
	assert.Contains(t, r.DataString(), "set 'missing'")
	assert.Contains(t, r.DataString(), "set not found")

	r = exec(db, "insert", "A", "4.5")
	assert.Equal(t, "(error) ERR value is not an integer or out of range", r.DataString())
}

func TestSizeNamesHas(t *testing.T) {
	db := makeTestDB(t)

	intReply, ok := exec(db, "size", "A").(*reply.IntReply)
	assert.True(t, ok)
	assert.Equal(t, int64(3), intReply.Code)

	assert.Contains(t, exec(db, "size", "missing").DataString(), "set not found")

	assert.Equal(t, "1) A\n2) B", exec(db, "names").DataString())

	assert.Equal(t, "(integer) 1", exec(db, "has", "A").DataString())
	assert.Equal(t, "(integer) 0", exec(db, "has", "C").DataString())
}

func TestAlgebraCommands(t *testing.T) {
	db := makeTestDB(t)

	tests := []struct {
		cmd  string
		want string
	}{
		{"union", "(A union B) = {1, 2, 3, 4}"},
		{"intersection", "(A intersection B) = {2, 3}"},
		{"difference", "(A difference B) = {1}"},
		{"symmetric_difference", "(A symmetric_difference B) = {1, 4}"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			assert.Equal(t, tt.want, exec(db, tt.cmd, "A", "B").DataString())
		})
	}

	t.Run("operands stay unchanged", func(t *testing.T) {
		assert.Equal(t, "A = {1, 2, 3}", exec(db, "print", "A").DataString())
		assert.Equal(t, "B = {2, 3, 4}", exec(db, "print", "B").DataString())
	})

	t.Run("missing operand", func(t *testing.T) {
		r := exec(db, "union", "A", "missing")
		assert.Contains(t, r.DataString(), "set 'missing'")
	})

	t.Run("result is not registered", func(t *testing.T) {
		exec(db, "union", "A", "B")
		assert.Equal(t, "1) A\n2) B", exec(db, "names").DataString())
	})
}

func TestStore(t *testing.T) {
	db := makeTestDB(t)

	assert.IsType(t, &reply.OkReply{}, exec(db, "store", "D", "A", "union", "B"))
	assert.Equal(t, "D = {1, 2, 3, 4}", exec(db, "print", "D").DataString())
	assert.Equal(t, "1) A\n2) B\n3) D", exec(db, "names").DataString())

	t.Run("invalid operation", func(t *testing.T) {
		r := exec(db, "store", "X", "A", "xor", "B")
		assert.Contains(t, r.DataString(), "invalid operation 'xor'")
		assert.Contains(t, r.DataString(), "unsupported operation")
		assert.Equal(t, "(integer) 0", exec(db, "has", "X").DataString())
	})

	t.Run("missing operand registers nothing", func(t *testing.T) {
		r := exec(db, "store", "X", "A", "union", "missing")
		assert.Contains(t, r.DataString(), "set not found")
		assert.Equal(t, "(integer) 0", exec(db, "has", "X").DataString())
	})
}

func TestIsSubsetIsEqual(t *testing.T) {
	db := makeTestDB(t)
	exec(db, "define", "Sub", "2", "3")
	exec(db, "define", "R", "3", "2", "1")
	exec(db, "define", "E")

	assert.Equal(t, "(integer) 1", exec(db, "issubset", "Sub", "A").DataString())
	assert.Equal(t, "(integer) 0", exec(db, "issubset", "A", "Sub").DataString())
	// 空集是任何集合的子集
	assert.Equal(t, "(integer) 1", exec(db, "issubset", "E", "A").DataString())

	// 相等与顺序无关
	assert.Equal(t, "(integer) 1", exec(db, "isequal", "A", "R").DataString())
	assert.Equal(t, "(integer) 0", exec(db, "isequal", "A", "B").DataString())

	assert.Contains(t, exec(db, "issubset", "A", "missing").DataString(), "set not found")
}

func TestPowerSetCommand(t *testing.T) {
	db := makeTestDB(t)

	r, ok := exec(db, "powerset", "A").(*reply.MultiBulkStringReply)
	assert.True(t, ok)
	assert.Len(t, r.Args, 8)
	assert.Equal(t, "{}", string(r.Args[0]))
	assert.Equal(t, "{1, 2, 3}", string(r.Args[7]))

	t.Run("empty set has one subset", func(t *testing.T) {
		exec(db, "define", "E")
		r, ok := exec(db, "powerset", "E").(*reply.MultiBulkStringReply)
		assert.True(t, ok)
		assert.Len(t, r.Args, 1)
		assert.Equal(t, "{}", string(r.Args[0]))
	})

	assert.Contains(t, exec(db, "powerset", "missing").DataString(), "set not found")
}

func TestCartesianCommand(t *testing.T) {
	db := engine.MakeDB()
	exec(db, "define", "A", "1", "2", "3")
	exec(db, "define", "B", "4", "5")

	want := "A × B = {(1, 4), (1, 5), (2, 4), (2, 5), (3, 4), (3, 5)}"
	assert.Equal(t, want, exec(db, "cartesian", "A", "B").DataString())

	assert.Contains(t, exec(db, "cartesian", "A", "missing").DataString(), "set not found")
}

func TestClearCommand(t *testing.T) {
	db := makeTestDB(t)

	assert.IsType(t, &reply.OkReply{}, exec(db, "clear"))
	assert.Equal(t, "(empty list or set)", exec(db, "names").DataString())
	assert.Contains(t, exec(db, "print", "A").DataString(), "set not found")
}

func TestArity(t *testing.T) {
	db := makeTestDB(t)

	assert.Contains(t, exec(db, "print").DataString(), "wrong number of arguments")
	assert.Contains(t, exec(db, "union", "A").DataString(), "wrong number of arguments")
	assert.Contains(t, exec(db, "store", "D", "A", "union").DataString(), "wrong number of arguments")
	assert.Contains(t, exec(db, "define").DataString(), "wrong number of arguments")
}
