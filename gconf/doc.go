/*
Package gconf keeps the configuration of every extension inside the store,
so that all nodes replaying the same genesis agree on it.

Each extension owns one configuration message saved under "_c:<package>".
It is loaded from genesis with InitConfig and read back with Load.
*/
package gconf
