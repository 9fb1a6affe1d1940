/*
Package escrow implements a two party exchange of fungible assets.

The maker locks an amount of asset A in a vault and states how much of
asset B it wants for it. Any taker who delivers that amount of B receives
the whole vault in one transaction. Until then the maker may take the
vault back with a refund.

Both the escrow record and the vault live at addresses derived from the
maker and a seed of its choice:

	record = sha256("escrow/seed/" || maker || little endian seed)[:20]
	vault  = holding of the record in mint A

No key can sign for those addresses, so only this extension moves the
locked asset. A record exists only while the escrow is open. Settling or
cancelling deletes the record and the vault and leaves an outcome behind,
so the same maker and seed can never open a second escrow.
*/
package escrow
