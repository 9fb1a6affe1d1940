/*
Package weave defines the interfaces shared by every extension of the escrow
ledger: storage, messages and transactions, handlers and decorators, and the
context values that flow between them.

It also implements the deterministic address derivation (Condition ->
Address) that extensions use to bind accounts to one another without a
lookup table. Any client can recompute these addresses offline.
*/
package weave
