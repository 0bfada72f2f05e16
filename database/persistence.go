package database

import (
	"github.com/dawnzzz/simple-sets/config"
	"github.com/dawnzzz/simple-sets/database/engine"
	"github.com/dawnzzz/simple-sets/database/journal"
	"github.com/dawnzzz/simple-sets/interface/database"
)

// MakeAuxiliaryServer create a Server only with basic capabilities for journal rewrite and other usages
func MakeAuxiliaryServer() database.DBEngine {
	return &Server{
		db:     engine.MakeDB(),
		closed: make(chan struct{}, 1),
	}
}

func (s *Server) bindPersister(journalPersister *journal.Persister) {
	s.JournalPersister = journalPersister
	s.db.SetAddJournal(func(line engine.CmdLine) {
		if config.Properties.Journal {
			journalPersister.SaveCmdLine(line)
		}
	})
}
