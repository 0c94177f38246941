// package tasks implements long-running course operations.
//
// The core type is Builder, which orchestrates course creation from mixed
// URL input (classification, playlist expansion, persistence) and bulk
// course exports. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks
