// Package store persists conversation history.
//
// Two implementations satisfy [Store]:
//   - [MemoryStore]: process-local, lost on restart
//   - [SQLiteStore]: a SQLite file with conversations and messages tables
//
// Both append messages in write order and stamp them with fixed-width UTC
// timestamps, so ordering by timestamp matches ordering by write.
//
//	s, err := store.OpenSQLite("conversation.db")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	ts, err := s.Append(ctx, conversationID, relay.UserMessage("Hello"))
//	history, err := s.History(ctx, conversationID)
package store
