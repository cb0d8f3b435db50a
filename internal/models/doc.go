// Package models defines the core domain models for the payroll tool.
//
// # Models
//
//   - Employee: one roster entry loaded from the employee file, carrying the
//     inputs to the payroll engine and the fields derived from it.
//
// Employees are identified by a positive integer ID taken from the input
// file. IDs are not required to be unique; lookups return the first match in
// roster order.
//
// # Lifecycle
//
//  1. Employees are created in one batch when the employee file is loaded
//  2. A calculation pass overwrites the derived fields of every employee
//  3. Re-running a calculation pass recomputes and overwrites them again
//  4. The roster is only replaced as a whole, by loading a new file
package models
