// Package familytree grows a synthetic family tree breadth-first from two
// founders and reports on the resulting population.
//
// # Expansion
//
// Individuals are processed in FIFO order. For each one the engine:
//
//   - stops the whole run once an individual born after the horizon year is
//     dequeued;
//   - skips individuals whose family already has children;
//   - creates a partner with probability equal to the decade's marriage
//     rate, born within ten years of the individual;
//   - draws a child count around the decade's birth rate, keyed on the elder
//     parent's birth year;
//   - spaces the children's birth years evenly between the elder parent's
//     25th and 45th years, dropping any born after the horizon.
//
// Children are appended to the population and queued; partners are appended
// but never queued, since their family is settled through the individual
// they joined.
//
// All randomness comes from the *rand.Rand passed to New, so a fixed seed
// reproduces a tree exactly.
package familytree
