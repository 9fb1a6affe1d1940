/*
Package sigs verifies the ed25519 signatures attached to a transaction and
keeps a sequence per signer for replay protection.

Every signature covers the serialized message, the chain id and the
sequence of its signer. Signers whose signatures verify are added to the
context, where Authenticate exposes them to the handlers.
*/
package sigs
