// Package faulty provides a fault-injecting resolver for tests.
//
// Wrap any resolver and add rules keyed by a path substring:
//
//	fr := faulty.New(resolver.NewMemory())
//	fr.AddRule("broken", faulty.Fault{FailAfterBytes: 16})
//	fr.AddRule("flaky", faulty.Fault{FailOnResolve: true})
//
// Streams of matching paths fail reads after FailAfterBytes bytes or fail on
// Close. Paths matching no rule use the Default fault, which injects nothing.
package faulty
