/*
Package tvtest provides mocks and helpers for testing handlers,
decorators and transactions without wiring a full ledger.
*/
package tvtest
