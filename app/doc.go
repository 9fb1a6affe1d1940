/*
Package app wires the extensions into a ledger that executes transactions
one at a time.

A transaction is decoded into a Tx, passed through the decorator chain
(logging, recovery, metrics, savepoint, signatures, tagging) and routed by
message path to its handler. Every transaction runs in a savepoint, so a
failed transaction leaves no trace. Ledger serialises execution and seals
the delivered state on Commit.
*/
package app
