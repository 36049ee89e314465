// Package validate repairs raw station proposals into well-formed candidate
// slot sets of exactly the entitled size, with heat-aware and random
// fallbacks for malformed or absent input.
package validate
