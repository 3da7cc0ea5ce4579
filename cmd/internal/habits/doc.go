// Package habits implements habitd's habit records: CRUD over the habits
// collection plus the completion rules (frequency targets and same-day
// duplicate suppression).
//
// Every operation is scoped to the authenticated owner; requests reach
// this package only after passing the authorization gate.
package habits
