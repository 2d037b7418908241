// Package schema parses yaml2erd schema documents.
//
// A schema document declares tables under models and optional group colors
// under groups:
//
//	models:
//	  users:
//	    columns:
//	      id: {type: integer, options: {primary_key: true}}
//	      name: {type: string, logical_name: Name}
//	    relations:
//	      - has_many: posts
//	    group: accounts
//	    description: Registered users
//	groups:
//	  - {name: accounts, bgcolor: "#eeeeff"}
//
// [Parse] keeps table, column and relation order exactly as declared and
// derives group membership from each table's group attribute. A group used
// by tables but missing from the groups list simply has no color.
package schema
