// Package cash holds the denomination table and the pure arithmetic of a cash drawer:
// counting a float, sanitizing operator input, and reconciling a session's
// expected cash against a closing count. All amounts are integer cents.
package cash
