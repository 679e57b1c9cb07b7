// Package document implements the project configuration data model and
// its validation engine.
//
// A Document is the root aggregate describing one cloud organizational
// unit: billing, buckets, IAM bindings, organization policies, service
// accounts, shared-VPC configuration and service-perimeter controls.
// Every mutation is validated at the point of insertion and either fully
// applies or fully fails; cross-entity consistency is checked once, by
// the save gate, before the document is handed to a serializer.
//
// The package has no I/O. Persistence and the interactive front end live
// in internal/encode and internal/wizard.
package document
