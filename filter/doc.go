// Package filter implements the accept/deny/neutral predicate chains
// that gate events in front of an appender.
//
// A Chain is not a boolean AND or OR: each filter votes Deny, Accept,
// or Neutral, the first non-Neutral vote wins, and a fully Neutral
// chain accepts. Order therefore matters and is preserved exactly as
// configured. The classic pattern is a selective matcher followed by
// DenyAll, which turns the chain into a whitelist:
//
//	chain.Add(&filter.StringMatch{Substr: "database", AcceptOnMatch: true})
//	chain.Add(filter.DenyAll{})
package filter
