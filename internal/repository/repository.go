// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres). Lookups that find nothing
// return sql.ErrNoRows so callers can map it to a not-found response.
package repository
