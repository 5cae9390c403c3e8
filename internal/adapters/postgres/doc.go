// Package postgres contains Postgres-backed implementations of the outbound ports.
//
// The schema lives in /migrations (task_list, task with ON DELETE CASCADE).
// Repositories resolve their connection per call: inside TxManager.WithinTx they use the
// transaction, otherwise the pool. Every adapter here is covered by the shared contract suite.
package postgres
