/*
Package token keeps fungible asset balances.

A Mint describes one asset and the authority allowed to issue it. A Holding
is the balance of one owner in one mint. Holding addresses are derived from
the mint and the owner, so a client can compute the account of any party
without a lookup. Owners may be signing keys or condition addresses, such
as an escrow record owning its vault.

Creating a holding locks the configured native coin deposit in the cash
wallet of the holding address. Closing an empty holding pays the deposit
back to the chosen destination.
*/
package token
