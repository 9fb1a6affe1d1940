/*
Package cash keeps wallets of native coins.

The escrow ledger uses native coins only for storage deposits: creating an
escrow record or a token holding locks a configured amount that is paid back
when the state is closed. The balance of any coin may never go below zero.
*/
package cash
