// Package registry is the glue between renderer modules and the fleet file.
//
// Every module registers one or more renderer factories under a type name.
// At startup the app looks up each `renderer "<type>"` block of the fleet
// file in the registry and asks the factory to build a renderer from the
// block body. An unknown type is a startup error.
package registry
