// Package journal records session operations and their work counters in a
// SQLite database so runs of the different structures and algorithms can be
// compared after the fact.
package journal

// Schema DDL. Tables are created on first open and kept across sessions.
const (
	createSessions = `CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    backend TEXT NOT NULL,
    capacity INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    ended_at TEXT
);`

	createOperations = `CREATE TABLE IF NOT EXISTS operations (
    entry_id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    operation TEXT NOT NULL,
    backend TEXT NOT NULL,
    algorithm TEXT NOT NULL DEFAULT '',
    size INTEGER NOT NULL,
    comparisons INTEGER NOT NULL DEFAULT 0,
    swaps INTEGER NOT NULL DEFAULT 0,
    outcome TEXT NOT NULL,
    recorded_at TEXT NOT NULL,
    FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);`

	createOperationsIndex = `CREATE INDEX IF NOT EXISTS idx_operations_kind
    ON operations (operation, backend, algorithm);`
)

// schemaStatements lists the DDL in execution order.
var schemaStatements = []string{
	createSessions,
	createOperations,
	createOperationsIndex,
}
