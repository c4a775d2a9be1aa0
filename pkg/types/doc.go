// Package types defines the Inventory interfaces, the Item entity, search and
// sort result types, and the standard errors shared by the satchel inventory
// backends and the session that drives them.
package types
