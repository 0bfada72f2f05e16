package journal_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/dawnzzz/simple-sets/database"
	"github.com/dawnzzz/simple-sets/database/journal"
	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/lib/utils"
	"github.com/dawnzzz/simple-sets/wire/connection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJournalRestoresSets(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sets.journal")
	lines := "define A 1 2 3\ninsert A 4\ndefine B 2 3\nstore D A union B\n# comment\n\n"
	require.NoError(t, os.WriteFile(filename, []byte(lines), 0666))

	server := database.MakeAuxiliaryServer()
	persister, err := journal.NewPersister(server, filename, true, journal.FsyncNo, database.MakeAuxiliaryServer)
	require.NoError(t, err)
	defer persister.Close()

	var names []string
	server.ForEach(func(name string, set *dataset.DataSet[int64]) bool {
		names = append(names, name)
		return true
	})
	assert.Equal(t, []string{"A", "B", "D"}, names)

	conn := connection.NewFakeConn()
	r := server.Exec(conn, utils.StringsToCmdLine("print", "A"))
	assert.Equal(t, "A = {1, 2, 3, 4}", r.DataString())
	r = server.Exec(conn, utils.StringsToCmdLine("print", "D"))
	assert.Equal(t, "D = {1, 2, 3, 4}", r.DataString())
}

func TestLoadJournalMissingFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sets.journal")

	server := database.MakeAuxiliaryServer()
	persister, err := journal.NewPersister(server, filename, true, journal.FsyncNo, database.MakeAuxiliaryServer)
	require.NoError(t, err)
	defer persister.Close()

	count := 0
	server.ForEach(func(name string, set *dataset.DataSet[int64]) bool {
		count++
		return true
	})
	assert.Equal(t, 0, count)
}

func TestNewPersisterRejectsBadFsync(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sets.journal")

	_, err := journal.NewPersister(database.MakeAuxiliaryServer(), filename, false, 42, database.MakeAuxiliaryServer)
	assert.Error(t, err)
}

func TestSaveCmdLineAppendsPlainText(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sets.journal")

	persister, err := journal.NewPersister(database.MakeAuxiliaryServer(), filename, false, journal.FsyncAlways, database.MakeAuxiliaryServer)
	require.NoError(t, err)

	persister.SaveCmdLine(utils.StringsToCmdLine("define", "A", "1", "2", "3"))
	persister.SaveCmdLine(utils.StringsToCmdLine("insert", "A", "4"))
	persister.Close()

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "define A 1 2 3\ninsert A 4\n", string(data))
}

func TestRewriteCompactsJournal(t *testing.T) {
	// 重写的临时文件建在工作目录下，日志文件也放在这里，保证 rename 在同一文件系统内
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() {
		_ = os.Chdir(wd)
	}()

	filename := "sets.journal"
	lines := "define A 1\ninsert A 2\ninsert A 3\ndefine B 4 5\nstore C A union B\n"
	require.NoError(t, os.WriteFile(filename, []byte(lines), 0666))

	server := database.MakeAuxiliaryServer()
	persister, err := journal.NewPersister(server, filename, true, journal.FsyncNo, database.MakeAuxiliaryServer)
	require.NoError(t, err)
	defer persister.Close()

	var rewriting atomic.Bool
	require.NoError(t, persister.Rewrite(nil, &rewriting))
	assert.False(t, rewriting.Load())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "define A 1 2 3\ndefine B 4 5\ndefine C 1 2 3 4 5\n", string(data))
}

func TestRewriteKeepsCommandsWrittenDuringRewrite(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() {
		_ = os.Chdir(wd)
	}()

	filename := "sets.journal"
	require.NoError(t, os.WriteFile(filename, []byte("define A 1 2\ninsert A 1\n"), 0666))

	server := database.MakeAuxiliaryServer()
	persister, err := journal.NewPersister(server, filename, true, journal.FsyncAlways, database.MakeAuxiliaryServer)
	require.NoError(t, err)
	defer persister.Close()

	// 模拟重写过程中有新的写命令进来
	rewriteCtx, err := persister.StartRewrite()
	require.NoError(t, err)
	persister.SaveCmdLine(utils.StringsToCmdLine("define", "B", "7"))
	require.NoError(t, persister.DoRewrite(rewriteCtx))
	require.NoError(t, persister.FinishRewrite(rewriteCtx))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "define A 1 2\ndefine B 7\n", string(data))
}
