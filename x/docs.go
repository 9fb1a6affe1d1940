/*
Package x contains the pieces shared by all extensions: the Authenticator
abstraction and the Validater contract. Each extension lives in its own
subpackage.
*/
package x
