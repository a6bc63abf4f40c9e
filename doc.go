// Package bluetooth tracks nearby Bluetooth LE devices from a continuous
// stream of advertisements and matches them against declarative interest
// matchers.
//
// The package holds the data model and the boundary contracts: the Scanner
// interface a radio backend implements, the FlowCreator interface a discovery
// consumer implements, the Matcher predicate, and the MatchCache contract.
// The orchestration lives in the manager subpackage; an LRU MatchCache
// implementation lives in the cache subpackage; matcher manifests load via
// the matchers subpackage.
package bluetooth
