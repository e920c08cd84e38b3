// Package registry provides the registration bridge between implementor
// catalog producers and the documentation viewer.
//
// Producers and the consumer initialize in no particular order. The Bridge
// absorbs that: a registration arriving while a consumer is bound is
// delivered immediately and exactly once; a registration arriving earlier
// is parked in a single pending slot, where the most recent catalog wins.
// Binding a consumer drains the slot, so a late consumer still observes the
// last registration that happened before it existed.
//
// The bridge is an explicit, injectable object rather than a process-wide
// global, which removes initialization-order ambiguity entirely while
// keeping the "last write observed before first read wins" contract.
package registry
