/*
Package utils provides the decorators every transaction passes through
before it reaches an extension handler: panic recovery, logging, metrics,
savepoints and result tagging.
*/
package utils
