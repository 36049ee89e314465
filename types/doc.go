// Package types provides core type definitions and interfaces for the tdma library.
//
// This package contains shared types that are used across multiple packages in
// the library. By keeping these types in a separate package, we avoid import
// cycles between the main tdma package and its internal implementations.
package types
