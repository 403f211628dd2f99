// Package notion is the notes provider client. One database page holds one game:
// its title, the library id, a lifecycle state and free-form notes.
//
// Expected properties:
//
//	Name          title
//	Steam ID      rich_text
//	State         select        (required)
//	Tags          multi_select
//	Notes         rich_text
//	Rating        number
//	Created time  created_time  (required)
//
// Pages missing a required property, or holding a property of the wrong type, are
// skipped with a warning.
package notion
