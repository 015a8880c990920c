/*
Package domain contains the records regula stores and reports.

It is kept free of I/O: adapters persist these types, the registry compiles them.

# Key Entities

  - Pattern: a named expression with optional description and tags.
  - MatchResult: the verdict of one pattern against one input.
*/
package domain
