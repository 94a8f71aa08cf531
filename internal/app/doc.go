// Package app provides the application service layer.
//
// Orchestrates the register session use cases: open, record transaction, preview close, close, history.
// Sits between the operator tool and the session store. Depends on domain interfaces, not concrete implementations.
package app
