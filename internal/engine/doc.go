// Package engine turns an input buffer carrying a public iteration count and
// a private 32-byte secret into a public commitment: the secret hashed n times,
// split into eight 32-bit words.
//
// Input layout (at least InputLen bytes, trailing bytes ignored):
//
//	[0, 8)   iteration count, unsigned little-endian
//	[8, 40)  secret
//
// The secret and every intermediate digest stay inside this package. Errors
// and formatted values carry lengths, the iteration count and an error kind,
// never secret-derived bytes; the words returned by Commit are the only
// secret-derived output.
package engine
