// Package application wires the craft calculator's HTTP service: history
// storage, calculator, handlers, router and the http.Server itself.
package application
