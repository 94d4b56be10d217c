// Package models defines the core domain models for CosmoCash.
//
// # Models
//
//   - Roommate: a member of the household, identified by a UUID
//   - Expense: a bill with per-roommate Contributions (share + paid flag)
//   - WishlistItem: a shared savings goal accumulating WishlistContributions
//   - ChatMessage: an append-only message posted by a roommate
//
// # Design Principles
//
// 1. **JSON is the persisted form**: field tags match the flat key-value layout
// 2. **Weak references**: relationships are roommate ID strings, never pointers;
// an ID may outlive the roommate it names
// 3. **Values, not handles**: collections hold values so snapshots can be copied freely
package models
